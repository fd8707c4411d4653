// Package validator decodes JSON request bodies and checks them against their
// validate tags. Failures are reported per json field name.
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"todoapp/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var (
	ErrEmptyBody = errors.New("request body is empty")

	validate = newValidate()
)

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(err)
	}

	return v
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	if name == "" {
		return field.Name
	}

	return name
}

// notBlank rejects strings made only of whitespace. Other kinds pass.
func notBlank(fl val.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return true
	}

	return strings.TrimSpace(str) != ""
}

// Validate decodes one JSON document from r into data and validates it.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		var typeErr *json.UnmarshalTypeError

		switch {
		case errors.As(err, &typeErr) && typeErr.Field != "":
			return failure.FieldError(typeErr.Field, fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type)) //nolint:wrapcheck
		case errors.Is(err, io.EOF):
			return failure.BadRequest(ErrEmptyBody) //nolint:wrapcheck
		default:
			return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
		}
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.Validation(fields(err)) //nolint:wrapcheck
	}

	return nil
}
