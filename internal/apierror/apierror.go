// Package apierror define los sobres de error HTTP de la API. Todo 4xx/5xx
// sale por aca; los detalles internos (errores de DB, stack traces) nunca
// llegan al cliente.
package apierror

// APIError es el sobre canonico de error. Code lleva el kind de dominio en
// forma legible por maquina cuando la falla viene de un servicio; queda vacio
// en errores puramente de transporte (JSON invalido, ID mal formado).
type APIError struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// NewWithCode adjunta el codigo de dominio para que los clientes distingan
// fallas recuperables (duplicado, conflicto de version) sin parsear mensajes.
func NewWithCode(msg, code string) *APIError {
	return &APIError{Detail: msg, Code: code}
}

// ValidationError agrupa las fallas de validacion por campo.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
