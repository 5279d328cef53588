package inventory

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/Existencias-api/internal/domain"
)

// newValidator construye la instancia compartida de go-playground/validator.
func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// collectStructErrors vuelca los errores del validator en el ValidationError
// de dominio, con nombres de campo en snake_case como los ve el cliente.
// La validación es en lote: se acumulan todos los campos, no solo el primero.
func collectStructErrors(verr *domain.ValidationError, err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Error del propio validator (no de los datos): infraestructura.
		return err
	}
	for _, fe := range fieldErrs {
		verr.Add(snakeCase(fe.Field()), fe.Tag(), validationMessage(fe))
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obligatorio"
	case "min":
		return "debe ser al menos " + fe.Param()
	case "max":
		return "no puede exceder " + fe.Param()
	case "uuid4":
		return "debe ser un UUID válido"
	default:
		return "valor inválido (" + fe.Tag() + ")"
	}
}

// snakeCase convierte el nombre de campo Go (CamelCase) al nombre de API.
func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 && !unicode.IsUpper(rune(s[i-1])) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
