package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas). Se propagan envueltos con %w
// para que el caller distinga el tipo con errors.Is sin conocer la infraestructura.
var (
	ErrNotFound  = errors.New("recurso no encontrado")
	ErrConflict  = errors.New("conflicto: recurso duplicado")
	ErrIntegrity = errors.New("violación de integridad en el almacén de datos")
	ErrInvariant = errors.New("la operación viola un invariante de inventario")
	ErrInternal  = errors.New("error interno del almacén de datos")
)

// FieldError describe un campo inválido de la entrada de una operación.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError acumula todos los campos inválidos de una operación.
// La validación es en lote: el caller recibe la lista completa de campos
// ofensivos, no solo el primero.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "entrada inválida"
	}
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "entrada inválida: " + strings.Join(names, ", ")
}

// Add registra un campo inválido.
func (e *ValidationError) Add(field, rule, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Rule: rule, Message: message})
}

// HasErrors indica si se acumuló al menos un campo inválido.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// AsValidation extrae el *ValidationError de una cadena de errores, si existe.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
