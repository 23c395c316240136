package router

import (
	"time"

	"github.com/Ayax911/ClothingStore/internal/config"
	"github.com/Ayax911/ClothingStore/internal/handler"
	"github.com/Ayax911/ClothingStore/internal/middleware"
	"github.com/Ayax911/ClothingStore/internal/repository"
	"github.com/Ayax911/ClothingStore/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMin, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	compraRepo := repository.NewCompraRepository(db)
	detalleRepo := repository.NewDetalleRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	guard := service.NewConsistencyGuard(clienteRepo, productoRepo, compraRepo, detalleRepo)
	precios := service.NewPrecioResolver(productoRepo)

	authSvc := service.NewAuthService(usuarioRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo, compraRepo)
	productoSvc := service.NewProductoService(productoRepo, detalleRepo)
	compraSvc := service.NewCompraService(compraRepo, detalleRepo, guard, precios)
	detalleSvc := service.NewDetalleService(detalleRepo, compraRepo, guard, precios)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	comprasH := handler.NewComprasHandler(compraSvc)
	detallesH := handler.NewDetallesHandler(detalleSvc)
	consultaH := handler.NewConsultaPreciosHandler(productoRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check, no auth required
	r.GET("/v1/precio/:codigo", consultaH.GetPrecioPorCodigo)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles declarados por endpoint
		v1.GET("/clientes", middleware.RequireRole("vendedor", "administrador"), clientesH.Listar)
		v1.POST("/clientes", middleware.RequireRole("vendedor", "administrador"), clientesH.Guardar)
		v1.PUT("/clientes/:id", middleware.RequireRole("vendedor", "administrador"), clientesH.Modificar)
		v1.DELETE("/clientes/:id", middleware.RequireRole("administrador"), clientesH.Borrar)

		v1.GET("/productos", middleware.RequireRole("vendedor", "administrador"), productosH.Listar)
		prods := v1.Group("/productos", middleware.RequireRole("administrador"))
		{
			prods.POST("", productosH.Guardar)
			prods.PUT("/:id", productosH.Modificar)
			prods.DELETE("/:id", productosH.Borrar)
		}

		v1.GET("/compras", middleware.RequireRole("vendedor", "administrador"), comprasH.Listar)
		v1.POST("/compras", middleware.RequireRole("vendedor", "administrador"), comprasH.Guardar)
		v1.PUT("/compras/:id", middleware.RequireRole("vendedor", "administrador"), comprasH.Modificar)
		v1.DELETE("/compras/:id", middleware.RequireRole("administrador"), comprasH.Borrar)

		v1.GET("/detalles", middleware.RequireRole("vendedor", "administrador"), detallesH.Listar)
		v1.POST("/detalles", middleware.RequireRole("vendedor", "administrador"), detallesH.Guardar)
		v1.PUT("/detalles/:id", middleware.RequireRole("vendedor", "administrador"), detallesH.Modificar)
		v1.DELETE("/detalles/:id", middleware.RequireRole("administrador"), detallesH.Borrar)
	}

	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
