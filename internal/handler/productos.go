package handler

import (
	"net/http"

	"github.com/Ayax911/ClothingStore/internal/dto"
	"github.com/Ayax911/ClothingStore/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar productos
// @Tags         productos
// @Produce      json
// @Security     BearerAuth
// @Param        nombre query string false "Busqueda parcial por nombre"
// @Success      200 {array} dto.ProductoResponse
// @Router       /v1/productos [get]
func (h *ProductosHandler) Listar(c *gin.Context) {
	if nombre := c.Query("nombre"); nombre != "" {
		resp, err := h.svc.PorNombre(c.Request.Context(), nombre)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Guardar godoc
// @Summary      Crear producto
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ProductoInput true "Producto"
// @Success      201 {object} dto.ProductoResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/productos [post]
func (h *ProductosHandler) Guardar(c *gin.Context) {
	var req dto.ProductoInput
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Guardar(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Modificar godoc
// @Summary      Modificar producto
// @Description  Un cambio de precio rige solo hacia adelante: los snapshots de lineas ya guardadas no se alteran.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int               true "ID del producto"
// @Param        body body dto.ProductoInput true "Producto"
// @Success      200 {object} dto.ProductoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{id} [put]
func (h *ProductosHandler) Modificar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ProductoInput
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Modificar(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Borrar godoc
// @Summary      Borrar producto
// @Description  Rechaza el borrado mientras existan detalles de compra que lo referencien.
// @Tags         productos
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID del producto"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /v1/productos/{id} [delete]
func (h *ProductosHandler) Borrar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Borrar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
