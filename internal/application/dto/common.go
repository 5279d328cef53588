package dto

// FieldErrorDTO detalle de un campo inválido en respuestas de validación.
type FieldErrorDTO struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP.
// Fields solo se llena en errores de validación (lista completa de campos).
type ErrorResponse struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Fields  []FieldErrorDTO `json:"fields,omitempty"`
}
