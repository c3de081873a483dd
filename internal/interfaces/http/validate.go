package http

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validationMessage corre las reglas `validate` del struct y devuelve un
// mensaje legible con los campos que fallaron, o "" si todo pasa.
func validationMessage(in any) string {
	err := validate.Struct(in)
	if err == nil {
		return ""
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}
	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
	}
	return "campos inválidos: " + strings.Join(fields, ", ")
}
