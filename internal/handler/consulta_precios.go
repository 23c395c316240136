package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Ayax911/ClothingStore/internal/apierror"
	"github.com/Ayax911/ClothingStore/internal/dto"
	"github.com/Ayax911/ClothingStore/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const precioCacheTTL = 4 * time.Hour

// ConsultaPreciosHandler sirve la consulta publica de precio por codigo de
// producto. Solo lectura, sin autenticacion.
type ConsultaPreciosHandler struct {
	repo repository.ProductoRepository
	rdb  *redis.Client
}

func NewConsultaPreciosHandler(repo repository.ProductoRepository, rdb *redis.Client) *ConsultaPreciosHandler {
	return &ConsultaPreciosHandler{repo: repo, rdb: rdb}
}

// GetPrecioPorCodigo godoc
// @Summary Consulta de precio por codigo de producto (sin autenticacion)
// @Tags precio
// @Produce json
// @Param codigo path string true "Codigo del producto"
// @Success 200 {object} dto.ConsultaPrecioResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/precio/{codigo} [get]
func (h *ConsultaPreciosHandler) GetPrecioPorCodigo(c *gin.Context) {
	codigo := c.Param("codigo")
	ctx := c.Request.Context()
	cacheKey := "precio:" + codigo

	// Cache Redis primero; un precio levemente viejo es aceptable aca porque
	// el snapshot real siempre se toma del catalogo dentro de la transaccion.
	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp dto.ConsultaPrecioResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	producto, err := h.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}

	resp := dto.ConsultaPrecioResponse{
		Nombre:        producto.Nombre,
		Material:      producto.Material,
		ValorUnitario: producto.ValorUnitario,
	}

	// Poblar cache, best effort
	if h.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = h.rdb.Set(context.Background(), cacheKey, b, precioCacheTTL).Err()
		}
	}

	c.JSON(http.StatusOK, resp)
}
