package handler

import (
	"net/http"
	"strconv"

	"github.com/Ayax911/ClothingStore/internal/apierror"
	"github.com/Ayax911/ClothingStore/internal/dto"
	"github.com/Ayax911/ClothingStore/internal/service"

	"github.com/gin-gonic/gin"
)

type DetallesHandler struct{ svc service.DetalleService }

func NewDetallesHandler(svc service.DetalleService) *DetallesHandler {
	return &DetallesHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar detalles de compra
// @Tags         detalles
// @Produce      json
// @Security     BearerAuth
// @Param        compra_id query int false "Filtrar por compra"
// @Success      200 {array}  dto.DetalleCompraResponse
// @Router       /v1/detalles [get]
func (h *DetallesHandler) Listar(c *gin.Context) {
	if raw := c.Query("compra_id"); raw != "" {
		compraID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("compra_id invalido"))
			return
		}
		resp, err := h.svc.PorCompra(c.Request.Context(), uint(compraID))
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
// @Summary      Crear detalle
// @Description  Agrega una linea a una compra existente; toma el snapshot de precio y recalcula el total de la compra.
// @Tags         detalles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.DetalleInput true "Detalle"
// @Success      201 {object} dto.DetalleCompraResponse
// @Failure      422 {object} apierror.APIError
// @Router       /v1/detalles [post]
func (h *DetallesHandler) Guardar(c *gin.Context) {
	var req dto.DetalleInput
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
// @Summary      Modificar detalle
// @Description  Re-toma el snapshot de precio y recalcula totales; exige el token de version leido.
// @Tags         detalles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int              true "ID del detalle"
// @Param        body body dto.DetalleInput true "Detalle"
// @Success      200 {object} dto.DetalleCompraResponse
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /v1/detalles/{id} [put]
func (h *DetallesHandler) Modificar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.DetalleInput
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
// @Summary      Borrar detalle
// @Description  Elimina la linea y recalcula el total de la compra propietaria.
// @Tags         detalles
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID del detalle"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/detalles/{id} [delete]
func (h *DetallesHandler) Borrar(c *gin.Context) {
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
