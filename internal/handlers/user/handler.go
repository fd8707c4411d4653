package user

import (
	"net/http"
	"strings"
	"todoapp/infras/otel"
	"todoapp/internal/domains/user/model"
	"todoapp/internal/domains/user/model/dto"
	"todoapp/internal/domains/user/service"
	"todoapp/shared"
	"todoapp/shared/constant"
	"todoapp/shared/failure"
	"todoapp/shared/validator"
	"todoapp/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryParamActive = "active"
	queryParamQuery  = "q"
	messageDeleted   = "User deleted successfully"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/users", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateUser)
		routerGroup.Get("/", handler.GetUsers)
		routerGroup.Get("/search", handler.SearchUsers)
		routerGroup.Get("/statistics", handler.GetStatistics)

		routerGroup.Route("/{id}", func(item chi.Router) {
			item.Get("/", handler.GetUserByID)
			item.Put("/", handler.ReplaceUser)
			item.Patch("/", handler.UpdateUser)
			item.Delete("/", handler.DeleteUser)
			item.Post("/activate", handler.ActivateUser)
			item.Post("/deactivate", handler.DeactivateUser)
		})
	})
}

// CreateUser handles the creation of a new user.
// @Summary Create a new user
// @Description Username and email must be unique. A password, when given, must be repeated in confirm_password.
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "Create User Request"
// @Success 201 {object} response.Data[dto.UserResponse]
// @Failure 400 {object} response.ValidationError
// @Failure 500 {object} response.Error
// @Router /v1/users [post]
func (handler *Handler) CreateUser(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateUser")
	defer scope.End()

	req := dto.CreateUserRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	user, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create user")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("User created successfully")

	response.WithJSON(writer, http.StatusCreated, user)
}

// GetUsers retrieves users.
// @Summary Get users
// @Description List users newest first. Without active only active users are returned.
// @Tags User
// @Produce json
// @Param active query string false "true, false or all" Enums(true, false, all) default(true)
// @Param search query string false "Case-insensitive match on username, email or names"
// @Success 200 {object} response.List[dto.UserResponse]
// @Failure 400 {object} response.ValidationError
// @Failure 500 {object} response.Error
// @Router /v1/users [get]
func (handler *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsers")
	defer scope.End()

	filter := dto.ListFilter{Search: strings.TrimSpace(r.URL.Query().Get(constant.RequestParamSearch))}

	switch raw := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(queryParamActive))); raw {
	case "":
		active := true
		filter.Active = &active
	case dto.ActiveAll:
	default:
		filter.Active = shared.ConvertStringToBool(raw)
		if filter.Active == nil {
			response.WithError(w, failure.FieldError(queryParamActive, "active must be one of true false all"))

			return
		}
	}

	users, err := handler.service.GetAll(ctx, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get users")

		response.WithError(w, err)

		return
	}

	response.WithList(w, http.StatusOK, users)
}

// SearchUsers is the short form of GetUsers with a search term.
// @Summary Search users
// @Description Active users whose username, email or names contain q, newest first.
// @Tags User
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} response.List[dto.UserResponse]
// @Failure 400 {object} response.ValidationError
// @Failure 500 {object} response.Error
// @Router /v1/users/search [get]
func (handler *Handler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchUsers")
	defer scope.End()

	query := strings.TrimSpace(r.URL.Query().Get(queryParamQuery))
	if query == "" {
		response.WithError(w, failure.FieldError(queryParamQuery, "q is required"))

		return
	}

	active := true

	users, err := handler.service.GetAll(ctx, dto.ListFilter{Active: &active, Search: query})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search users")

		response.WithError(w, err)

		return
	}

	response.WithList(w, http.StatusOK, users)
}

// GetStatistics reports user counts.
// @Summary User statistics
// @Tags User
// @Produce json
// @Success 200 {object} response.Data[dto.Statistics]
// @Failure 500 {object} response.Error
// @Router /v1/users/statistics [get]
func (handler *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStatistics")
	defer scope.End()

	stats, err := handler.service.Statistics(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user statistics")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, stats)
}

// GetUserByID retrieves a user by their ID.
// @Summary Get a user by ID
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Data[dto.UserResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [get]
func (handler *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUserByID")
	defer scope.End()

	user, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}

// ReplaceUser replaces a user.
// @Summary Replace a user by ID
// @Description Full update. Omitted bio and profile picture are cleared.
// @Tags User
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UserRequest true "User"
// @Success 200 {object} response.Data[dto.UserResponse]
// @Failure 400 {object} response.ValidationError
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [put]
func (handler *Handler) ReplaceUser(w http.ResponseWriter, r *http.Request) {
	req := dto.UserRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	handler.update(w, r, req.ToUpdate())
}

// UpdateUser partially updates a user.
// @Summary Update a user by ID
// @Tags User
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Update User Request"
// @Success 200 {object} response.Data[dto.UserResponse]
// @Failure 400 {object} response.ValidationError
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [patch]
func (handler *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	req := dto.UpdateUserRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	handler.update(w, r, req)
}

// ActivateUser marks a user active.
// @Summary Activate a user
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Data[dto.UserResponse]
// @Failure 404 {object} response.Error
// @Router /v1/users/{id}/activate [post]
func (handler *Handler) ActivateUser(w http.ResponseWriter, r *http.Request) {
	handler.setActive(w, r, true)
}

// DeactivateUser marks a user inactive instead of deleting it.
// @Summary Deactivate a user
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Data[dto.UserResponse]
// @Failure 404 {object} response.Error
// @Router /v1/users/{id}/deactivate [post]
func (handler *Handler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	handler.setActive(w, r, false)
}

// DeleteUser deletes a user by their ID.
// @Summary Delete a user by ID
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [delete]
func (handler *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteUser")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete user")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User deleted successfully")

	response.WithMessage(w, http.StatusOK, messageDeleted)
}

func (handler *Handler) update(w http.ResponseWriter, r *http.Request, req dto.UpdateUserRequest) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateUser")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	user, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update user")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}

func (handler *Handler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetActive")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	scope.SetAttribute(model.FieldIsActive, active)

	user, err := handler.service.SetActive(ctx, id, active)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to change user activity")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}
