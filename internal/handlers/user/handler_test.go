package user_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	otelMocks "todoapp/infras/otel/mocks"
	"todoapp/internal/domains/user/mocks"
	"todoapp/internal/domains/user/model/dto"
	"todoapp/internal/handlers/user"
	"todoapp/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func ptr[T any](v T) *T {
	return &v
}

func setup(t *testing.T) (*mocks.MockUserService, http.Handler) {
	t.Helper()

	service := mocks.NewMockUserService(gomock.NewController(t))

	handler := user.New(service, otelMocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return service, router
}

func serve(router http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, target, strings.NewReader(body)))

	decoded := map[string]any{}
	_ = json.Unmarshal(recorder.Body.Bytes(), &decoded)

	return recorder, decoded
}

func TestHandler_GetUsers(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantFilter dto.ListFilter
		wantCode   int
	}{
		{name: "defaults to active users", wantFilter: dto.ListFilter{Active: ptr(true)}, wantCode: http.StatusOK},
		{name: "inactive users", query: "?active=false", wantFilter: dto.ListFilter{Active: ptr(false)}, wantCode: http.StatusOK},
		{name: "everyone matching a search", query: "?active=all&search=test", wantFilter: dto.ListFilter{Search: "test"}, wantCode: http.StatusOK},
		{name: "invalid flag", query: "?active=sometimes", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, router := setup(t)

			if tt.wantCode == http.StatusOK {
				service.EXPECT().GetAll(gomock.Any(), tt.wantFilter).Return([]dto.UserResponse{{ID: "1"}}, nil)
			}

			recorder, body := serve(router, http.MethodGet, "/users"+tt.query, "")

			assert.Equal(t, tt.wantCode, recorder.Code)

			if tt.wantCode == http.StatusOK {
				assert.Equal(t, float64(1), body["count"])
			}
		})
	}
}

func TestHandler_SearchUsers(t *testing.T) {
	t.Run("searches active users", func(t *testing.T) {
		service, router := setup(t)
		service.EXPECT().
			GetAll(gomock.Any(), dto.ListFilter{Active: ptr(true), Search: "Search"}).
			Return([]dto.UserResponse{{ID: "1", Username: "searchuser"}}, nil)

		recorder, body := serve(router, http.MethodGet, "/users/search?q=+Search+", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, float64(1), body["count"])
	})

	t.Run("missing term", func(t *testing.T) {
		_, router := setup(t)

		recorder, body := serve(router, http.MethodGet, "/users/search", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, body["errors"], "q")
	})
}

func TestHandler_CreateUser(t *testing.T) {
	t.Run("missing required names", func(t *testing.T) {
		_, router := setup(t)

		recorder, body := serve(router, http.MethodPost, "/users", `{"username":"testuser","email":"test@example.com"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, body["errors"], "first_name")
		assert.Contains(t, body["errors"], "last_name")
	})

	t.Run("invalid email", func(t *testing.T) {
		_, router := setup(t)

		recorder, body := serve(router, http.MethodPost, "/users",
			`{"username":"testuser","email":"not-an-email","first_name":"Test","last_name":"User"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, body["errors"], "email")
	})

	t.Run("created", func(t *testing.T) {
		service, router := setup(t)
		service.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.UserResponse{ID: "1", Username: "testuser"}, nil)

		recorder, body := serve(router, http.MethodPost, "/users",
			`{"username":"testuser","email":"test@example.com","first_name":"Test","last_name":"User"}`)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.Equal(t, "testuser", body["data"].(map[string]any)["username"])
	})
}

func TestHandler_Statistics(t *testing.T) {
	service, router := setup(t)
	service.EXPECT().Statistics(gomock.Any()).Return(dto.Statistics{TotalUsers: 3, ActiveUsers: 2, InactiveUsers: 1}, nil)

	recorder, body := serve(router, http.MethodGet, "/users/statistics", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, float64(1), body["data"].(map[string]any)["inactive_users"])
}

func TestHandler_Activation(t *testing.T) {
	service, router := setup(t)
	service.EXPECT().SetActive(gomock.Any(), "abc", false).Return(dto.UserResponse{ID: "abc"}, nil)
	service.EXPECT().SetActive(gomock.Any(), "missing", true).Return(dto.UserResponse{}, failure.NotFound("user not found"))

	recorder, _ := serve(router, http.MethodPost, "/users/abc/deactivate", "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder, body := serve(router, http.MethodPost, "/users/missing/activate", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "user not found", body["error"])
}

func TestHandler_DeleteUser(t *testing.T) {
	service, router := setup(t)
	service.EXPECT().Delete(gomock.Any(), "abc").Return(nil)

	recorder, body := serve(router, http.MethodDelete, "/users/abc", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "User deleted successfully", body["message"])
}

func TestHandler_ActivationIsTraced(t *testing.T) {
	service := mocks.NewMockUserService(gomock.NewController(t))
	tracer := otelMocks.NewOtel()

	handler := user.New(service, tracer)
	router := chi.NewRouter()
	handler.Router(router)

	notFound := failure.NotFound("user not found")
	service.EXPECT().SetActive(gomock.Any(), "missing", false).Return(dto.UserResponse{}, notFound)

	serve(router, http.MethodPost, "/users/missing/deactivate", "")

	scope, ok := tracer.Scope("handler.SetActive")
	assert.True(t, ok)
	assert.Equal(t, false, scope.Attribute("is_active"))
	assert.Equal(t, []error{notFound}, scope.Errors())
	assert.True(t, scope.Ended())
}
