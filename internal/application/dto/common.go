package dto

// ErrorResponse respuesta de error estructurada: código distinguible por máquina
// y mensaje legible. Nunca expone trazas ni identificadores internos.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}
