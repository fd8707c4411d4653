package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"todoapp/config"
	otelMocks "todoapp/infras/otel/mocks"
	todoMocks "todoapp/internal/domains/todo/mocks"
	"todoapp/internal/domains/todo/model/dto"
	userMocks "todoapp/internal/domains/user/mocks"
	"todoapp/internal/handlers/todo"
	"todoapp/internal/handlers/user"
	cacheMocks "todoapp/shared/cache/mocks"
	transport "todoapp/transport/http"
	"todoapp/transport/http/middleware"
	"todoapp/transport/http/router"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*todoMocks.MockTodoService, *transport.HTTP) {
	t.Helper()

	ctrl := gomock.NewController(t)
	todoService := todoMocks.NewMockTodoService(ctrl)
	otel := otelMocks.NewOtel()

	cfg := &config.Config{}
	cfg.App.Name = "todoapp"

	r := router.New(router.DomainHandlers{
		Todo: todo.New(todoService, otel),
		User: user.New(userMocks.NewMockUserService(ctrl), otel),
	})

	return todoService, transport.New(cfg, r, middleware.NewAppMiddleware(otel, cfg, cacheMocks.NewMockRedisCache(ctrl)))
}

func serve(server http.Handler, method, target string) (*httptest.ResponseRecorder, map[string]any) {
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(method, target, nil))

	decoded := map[string]any{}
	_ = json.Unmarshal(recorder.Body.Bytes(), &decoded)

	return recorder, decoded
}

func TestHTTP_Health(t *testing.T) {
	_, server := setup(t)

	recorder, body := serve(server, http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "all good", body["message"])
	assert.Equal(t, transport.ServerStateReady, server.State())
}

func TestHTTP_Envelopes(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		target    string
		wantCode  int
		wantError string
	}{
		{name: "unknown route", method: http.MethodGet, target: "/v1/projects", wantCode: http.StatusNotFound, wantError: "Not Found"},
		{name: "unsupported method", method: http.MethodPatch, target: "/v1/todos", wantCode: http.StatusMethodNotAllowed, wantError: "Method Not Allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, server := setup(t)

			recorder, body := serve(server, tt.method, tt.target)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}

func TestHTTP_Prefixes(t *testing.T) {
	for _, target := range []string{"/v1/todos", "/api/todos/", "/v1/todos/?completed=false"} {
		t.Run(target, func(t *testing.T) {
			todoService, server := setup(t)
			todoService.EXPECT().GetAll(gomock.Any(), gomock.Any()).Return([]dto.TodoResponse{{ID: "1"}}, nil)

			recorder, body := serve(server, http.MethodGet, target)

			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, float64(1), body["count"])
		})
	}
}
