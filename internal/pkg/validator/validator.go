package validator

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Details unpacks a gin binding error into field->constraint pairs, or nil
// when the error carries no field-level information (malformed JSON, wrong
// types). Keys are lowercased so they match the JSON wire names of the DTOs.
func Details(err error) map[string]string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}

	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return details
}
