package handler

import (
	"net/http"

	"github.com/Ayax911/ClothingStore/internal/dto"
	"github.com/Ayax911/ClothingStore/internal/service"

	"github.com/gin-gonic/gin"
)

type ComprasHandler struct{ svc service.CompraService }

func NewComprasHandler(svc service.CompraService) *ComprasHandler { return &ComprasHandler{svc: svc} }

// Listar godoc
// @Summary      Listar compras
// @Description  Retorna las compras mas recientes primero, con cliente y detalles resueltos.
// @Tags         compras
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}  dto.CompraResponse
// @Failure      500 {object} apierror.APIError
// @Router       /v1/compras [get]
func (h *ComprasHandler) Listar(c *gin.Context) {
	// Con ?codigo= se busca por coincidencia parcial.
	if codigo := c.Query("codigo"); codigo != "" {
		resp, err := h.svc.PorCodigo(c.Request.Context(), codigo)
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
// @Summary      Crear compra
// @Description  Crea una compra con sus detalles como una unidad atomica; el total se deriva de las lineas.
// @Tags         compras
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CompraInput true "Compra con detalles"
// @Success      201 {object} dto.CompraResponse
// @Failure      400 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Failure      422 {object} apierror.APIError
// @Router       /v1/compras [post]
func (h *ComprasHandler) Guardar(c *gin.Context) {
	var req dto.CompraInput
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
// @Summary      Modificar compra
// @Description  Re-cotiza y re-suma las lineas; exige el token de version leido (concurrencia optimista).
// @Tags         compras
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int             true "ID de la compra"
// @Param        body body dto.CompraInput true "Compra con detalles"
// @Success      200 {object} dto.CompraResponse
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /v1/compras/{id} [put]
func (h *ComprasHandler) Modificar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.CompraInput
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
// @Summary      Borrar compra
// @Description  Rechaza el borrado mientras la compra tenga detalles asociados.
// @Tags         compras
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID de la compra"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /v1/compras/{id} [delete]
func (h *ComprasHandler) Borrar(c *gin.Context) {
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
