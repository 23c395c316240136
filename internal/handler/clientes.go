package handler

import (
	"net/http"

	"github.com/Ayax911/ClothingStore/internal/dto"
	"github.com/Ayax911/ClothingStore/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar clientes
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        cedula query string false "Busqueda exacta por cedula"
// @Success      200 {array} dto.ClienteResponse
// @Router       /v1/clientes [get]
func (h *ClientesHandler) Listar(c *gin.Context) {
	if cedula := c.Query("cedula"); cedula != "" {
		resp, err := h.svc.PorCedula(c.Request.Context(), cedula)
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
// @Summary      Crear cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ClienteInput true "Cliente"
// @Success      201 {object} dto.ClienteResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/clientes [post]
func (h *ClientesHandler) Guardar(c *gin.Context) {
	var req dto.ClienteInput
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
// @Summary      Modificar cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int              true "ID del cliente"
// @Param        body body dto.ClienteInput true "Cliente"
// @Success      200 {object} dto.ClienteResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/clientes/{id} [put]
func (h *ClientesHandler) Modificar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ClienteInput
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
// @Summary      Borrar cliente
// @Description  Rechaza el borrado mientras el cliente tenga compras asociadas.
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID del cliente"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /v1/clientes/{id} [delete]
func (h *ClientesHandler) Borrar(c *gin.Context) {
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
