package todo

import (
	"context"
	"net/http"
	"strings"
	"todoapp/infras/otel"
	"todoapp/internal/domains/todo/model"
	"todoapp/internal/domains/todo/model/dto"
	"todoapp/internal/domains/todo/service"
	"todoapp/shared"
	"todoapp/shared/constant"
	"todoapp/shared/failure"
	"todoapp/shared/validator"
	"todoapp/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	messageDeleted = "Todo deleted successfully"
)

type Handler struct {
	service service.Todo
	otel    otel.Otel
}

func New(service service.Todo, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/todos", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTodos)
		routerGroup.Post("/", handler.CreateTodo)

		routerGroup.Route("/{id}", func(item chi.Router) {
			item.Get("/", handler.GetTodoByID)
			item.Put("/", handler.ReplaceTodo)
			item.Patch("/", handler.UpdateTodo)
			item.Delete("/", handler.DeleteTodo)
			item.Post("/complete", handler.CompleteTodo)
			item.Post("/incomplete", handler.IncompleteTodo)
		})
	})
}

// CreateTodo handles the creation of a new todo item.
// @Summary Create a new todo item
// @Description Create a todo. Dates are YYYY-MM-DD or null and the end date may not precede the start date.
// @Tags Todo
// @Accept json
// @Produce json
// @Param request body dto.TodoRequest true "Create Todo Request"
// @Success 201 {object} response.Data[dto.TodoResponse]
// @Failure 400 {object} response.ValidationError
// @Failure 500 {object} response.Error
// @Router /v1/todos [post]
func (handler *Handler) CreateTodo(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTodo")
	defer scope.End()

	req := dto.CreateTodoRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	todo, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create todo")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Todo created successfully by user " + shared.Actor(ctx))

	response.WithJSON(writer, http.StatusCreated, todo)
}

// GetTodos retrieves todo items.
// @Summary Get todo items
// @Description List todos in creation order. Without completed only incomplete items are returned.
// @Tags Todo
// @Accept json
// @Produce json
// @Param completed query string false "true, false or all" Enums(true, false, all) default(false)
// @Param search query string false "Case-insensitive match on title or description"
// @Success 200 {object} response.List[dto.TodoResponse]
// @Failure 400 {object} response.ValidationError
// @Failure 500 {object} response.Error
// @Router /v1/todos [get]
func (handler *Handler) GetTodos(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTodos")
	defer scope.End()

	filter, err := listFilter(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	todos, err := handler.service.GetAll(ctx, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get todos")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Todos retrieved successfully")

	response.WithList(w, http.StatusOK, todos)
}

// GetTodoByID retrieves a todo item by its ID.
// @Summary Get a todo item by ID
// @Description Retrieve a todo item by its unique identifier.
// @Tags Todo
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} response.Data[dto.TodoResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/todos/{id} [get]
func (handler *Handler) GetTodoByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTodoByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	todo, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get todo by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Todo retrieved successfully")

	response.WithJSON(w, http.StatusOK, todo)
}

// ReplaceTodo replaces a todo item.
// @Summary Replace a todo item by ID
// @Description Full update. Omitted description and dates are cleared.
// @Tags Todo
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param request body dto.TodoRequest true "Todo"
// @Success 200 {object} response.Data[dto.TodoResponse]
// @Failure 400 {object} response.ValidationError
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/todos/{id} [put]
func (handler *Handler) ReplaceTodo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReplaceTodo")
	defer scope.End()

	req := dto.TodoRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	handler.update(ctx, w, chi.URLParam(r, constant.RequestParamID), req.ToUpdate(), scope)
}

// UpdateTodo partially updates an existing todo item by its ID.
// @Summary Update a todo item by ID
// @Description Partial update. Omitted fields keep their value; the date range is checked on the merged record.
// @Tags Todo
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param request body dto.UpdateTodoRequest true "Update Todo Request"
// @Success 200 {object} response.Data[dto.TodoResponse]
// @Failure 400 {object} response.ValidationError
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/todos/{id} [patch]
func (handler *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTodo")
	defer scope.End()

	req := dto.UpdateTodoRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	handler.update(ctx, w, chi.URLParam(r, constant.RequestParamID), req, scope)
}

// CompleteTodo marks a todo item as completed.
// @Summary Mark a todo item as completed
// @Tags Todo
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} response.Data[dto.TodoResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/todos/{id}/complete [post]
func (handler *Handler) CompleteTodo(w http.ResponseWriter, r *http.Request) {
	handler.setCompleted(w, r, true)
}

// IncompleteTodo marks a todo item as not completed.
// @Summary Mark a todo item as incomplete
// @Tags Todo
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} response.Data[dto.TodoResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/todos/{id}/incomplete [post]
func (handler *Handler) IncompleteTodo(w http.ResponseWriter, r *http.Request) {
	handler.setCompleted(w, r, false)
}

// DeleteTodo deletes a todo item by its ID.
// @Summary Delete a todo item by ID
// @Description Delete a todo item using its unique identifier.
// @Tags Todo
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/todos/{id} [delete]
func (handler *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTodo")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete todo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Todo deleted successfully by user " + shared.Actor(ctx))

	response.WithMessage(w, http.StatusOK, messageDeleted)
}

func (handler *Handler) update(ctx context.Context, w http.ResponseWriter, id string, req dto.UpdateTodoRequest, scope otel.Scope) {
	todo, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update todo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Todo updated successfully by user " + shared.Actor(ctx))

	response.WithJSON(w, http.StatusOK, todo)
}

func (handler *Handler) setCompleted(w http.ResponseWriter, r *http.Request, completed bool) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetCompleted")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	todo, err := handler.service.SetCompleted(ctx, id, completed)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to set todo completion")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, todo)
}

// listFilter reads the list query. An absent completed parameter selects the
// incomplete view, "all" disables the completion filter.
func listFilter(r *http.Request) (dto.ListFilter, error) {
	query := r.URL.Query()
	filter := dto.ListFilter{Search: strings.TrimSpace(query.Get(constant.RequestParamSearch))}

	raw := strings.ToLower(strings.TrimSpace(query.Get(model.FieldCompleted)))

	switch raw {
	case "":
		completed := false
		filter.Completed = &completed
	case dto.CompletedAll:
		filter.Completed = nil
	default:
		completed := shared.ConvertStringToBool(raw)
		if completed == nil {
			return filter, failure.FieldError(model.FieldCompleted, "completed must be one of true false all") //nolint:wrapcheck
		}

		filter.Completed = completed
	}

	return filter, nil
}
