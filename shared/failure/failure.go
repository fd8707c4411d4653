// Package failure carries an HTTP status alongside an error message so the
// transport can answer without inspecting error strings.
package failure

import (
	"errors"
	"maps"
	"net/http"
	"slices"
)

// Failure is an error with the status code it should be answered with.
// Fields is only set for validation failures and maps a field name to its
// messages.
type Failure struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

func (e *Failure) Error() string {
	return e.Message
}

func New(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// BadRequest wraps err as a bad request. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

// Validation returns a bad request carrying field-keyed messages. The message
// of the alphabetically first field becomes the plain error message.
func Validation(fields map[string][]string) error {
	msg := "validation failed"

	for _, field := range slices.Sorted(maps.Keys(fields)) {
		if len(fields[field]) > 0 {
			msg = fields[field][0]

			break
		}
	}

	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
		Fields:  fields,
	}
}

// FieldError is a validation failure on a single field.
func FieldError(field, msg string) error {
	return Validation(map[string][]string{field: {msg}})
}

func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

// GetCode returns the status carried by err, 500 for anything else.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsNotFound reports whether err carries a 404.
func IsNotFound(err error) bool {
	return err != nil && GetCode(err) == http.StatusNotFound
}

// GetFields returns the field-keyed messages of a validation failure, or nil.
func GetFields(err error) map[string][]string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Fields
	}

	return nil
}
