package response

import (
	"encoding/json"
	"net/http"
	"todoapp/shared/constant"
	"todoapp/shared/failure"
	"todoapp/shared/logger"

	"github.com/rs/zerolog/log"
)

// Data is the success envelope for a single record.
type Data[T any] struct {
	Success bool `json:"success" example:"true"`
	Data    T    `json:"data"`
}

// List is the success envelope for a collection.
type List[T any] struct {
	Success bool `json:"success" example:"true"`
	Data    []T  `json:"data"`
	Count   int  `json:"count"   example:"1"`
}

type Message struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Todo deleted successfully"`
}

type Error struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error"   example:"todo not found"`
}

// ValidationError carries field-keyed messages, one or more per field.
type ValidationError struct {
	Success bool                `json:"success" example:"false"`
	Errors  map[string][]string `json:"errors"`
}

// WithMessage sends a success response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Success: true, Message: message})
}

// WithJSON sends a success response containing a single payload
func WithJSON[T any](writer http.ResponseWriter, code int, payload T) {
	response(writer, code, Data[T]{Success: true, Data: payload})
}

// WithList sends a success response containing a collection and its size
func WithList[T any](writer http.ResponseWriter, code int, items []T) {
	if items == nil {
		items = []T{}
	}

	response(writer, code, List[T]{Success: true, Data: items, Count: len(items)})
}

// WithError maps err to its status code. Validation failures keep their field
// messages, server errors never expose their cause.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	if fields := failure.GetFields(err); code == http.StatusBadRequest && len(fields) > 0 {
		response(writer, code, ValidationError{Errors: fields})

		return
	}

	errMsg := err.Error()
	if code >= http.StatusInternalServerError {
		log.Error().Err(err).Int("code", code).Msg("internal error hidden from response")

		errMsg = constant.ResponseErrorInternal
	}

	response(writer, code, Error{Error: errMsg})
}

// WithErrorMessage sends an error envelope with the given status
func WithErrorMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Error{Error: message})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithErrorMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithErrorMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithErrorMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

// WithNotFound sends the envelope for unknown routes
func WithNotFound(writer http.ResponseWriter) {
	WithErrorMessage(writer, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}

// WithMethodNotAllowed sends the envelope for a known route hit with the wrong method
func WithMethodNotAllowed(writer http.ResponseWriter) {
	WithErrorMessage(writer, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
}

func response(writer http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
