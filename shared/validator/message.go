package validator

import (
	"errors"
	"strings"
	"todoapp/shared/constant"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required": "{field} is required",
	"notblank": "{field} may not be blank",
	"oneof":    "{field} must be one of {param}",
	"max":      "{field} must be at most {param} characters",
	"min":      "{field} must be at least {param} characters",
	"email":    "{field} must be a valid email address",
	"url":      "{field} must be a valid URL",
	"datetime": "{field} has wrong format, use YYYY-MM-DD",
}

func render(valErr val.FieldError) string {
	msg, ok := messages[valErr.Tag()]
	if !ok {
		return valErr.Error()
	}

	return strings.NewReplacer("{field}", valErr.Field(), "{param}", valErr.Param()).Replace(msg)
}

// fields groups every validation error by the json name of the offending field.
func fields(err error) map[string][]string {
	result := map[string][]string{}

	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		result[constant.NonFieldErrors] = []string{err.Error()}

		return result
	}

	for _, valErr := range valErrors {
		field := valErr.Field()
		result[field] = append(result[field], render(valErr))
	}

	return result
}
