package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Todo=MockTodoService

import (
	"context"
	"fmt"
	"time"
	"todoapp/config"
	"todoapp/infras/otel"
	"todoapp/internal/domains/todo/model"
	"todoapp/internal/domains/todo/model/dto"
	"todoapp/internal/domains/todo/repository"
	"todoapp/internal/events"
	"todoapp/shared"
	"todoapp/shared/cache"
	"todoapp/shared/constant"
	gDto "todoapp/shared/dto"
	"todoapp/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetTodo = "todo:get"
)

type Todo interface {
	Create(ctx context.Context, req dto.CreateTodoRequest) (dto.TodoResponse, error)
	GetAll(ctx context.Context, filter dto.ListFilter) ([]dto.TodoResponse, error)
	Get(ctx context.Context, id string) (dto.TodoResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateTodoRequest) (dto.TodoResponse, error)
	SetCompleted(ctx context.Context, id string, completed bool) (dto.TodoResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Todo
	cfg       *config.Config
	cache     cache.RedisCache
	publisher events.Publisher
	otel      otel.Otel
}

func New(repo repository.Todo, cfg *config.Config, cache cache.RedisCache, publisher events.Publisher, otel otel.Otel) Todo {
	return &serviceImpl{
		repo:      repo,
		cfg:       cfg,
		cache:     cache,
		publisher: publisher,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTodoRequest) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user := shared.Actor(ctx)

	todo, err := req.ToModel(user)
	if err != nil {
		return res, err
	}

	if !todo.ValidDateRange() {
		return res, dto.ErrDateRange()
	}

	if err = s.repo.Insert(ctx, todo); err != nil {
		if isDateRangeViolation(err) {
			return res, dto.ErrDateRange()
		}

		log.Error().Err(err).Msg("failed to create todo")

		return res, fmt.Errorf("failed to create todo: %w", err)
	}

	res.FromModel(todo)

	events.PublishAsync(ctx, s.publisher, events.New(events.TodoCreated, todo.ID, user, res))

	return res, nil
}

// GetAll lists todos in creation order. Lists always come from the store so
// a refresh right after a write observes it.
func (s *serviceImpl) GetAll(ctx context.Context, filter dto.ListFilter) (res []dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.QueryParams{
		SortBy:  model.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}

	models, err := s.repo.GetAll(ctx, params, filter.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to get todos")

		return nil, fmt.Errorf("failed to get todos: %w", err)
	}

	return dto.FromModels(models), nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetTodo, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for todo")

		return res, nil
	}

	todo, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(todo)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save todo to cache")
	}

	return res, nil
}

// Update merges req into the stored record and validates the date range on
// the merged result, so a partial update cannot break the invariant.
func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateTodoRequest) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, failure.FieldError(constant.NonFieldErrors, "update request cannot be empty") // nolint:wrapcheck
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	merged, err := req.Apply(current)
	if err != nil {
		return res, err
	}

	if !merged.ValidDateRange() {
		return res, dto.ErrDateRange()
	}

	user := shared.Actor(ctx)

	return s.save(ctx, merged, dto.Columns(merged, user), user)
}

func (s *serviceImpl) SetCompleted(ctx context.Context, id string, completed bool) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetCompleted")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	todo, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	user := shared.Actor(ctx)
	todo.Completed = completed

	fields := shared.Audit(map[string]any{model.FieldCompleted: completed}, user)

	return s.save(ctx, todo, fields, user)
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	deleted, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete todo")

		return fmt.Errorf("failed to delete todo: %w", err)
	}

	if deleted == 0 {
		return failure.NotFound(model.MessageNotFound) // nolint:wrapcheck
	}

	s.invalidate(ctx, id)
	events.PublishAsync(ctx, s.publisher, events.New(events.TodoDeleted, id, shared.Actor(ctx), nil))

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Todo, error) {
	todo, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get todo")

		return todo, fmt.Errorf("failed to get todo: %w", err)
	}

	if todo.ID == "" {
		return todo, failure.NotFound(model.MessageNotFound) // nolint:wrapcheck
	}

	return todo, nil
}

func (s *serviceImpl) save(ctx context.Context, todo model.Todo, fields map[string]any, user string) (res dto.TodoResponse, err error) {
	updated, err := s.repo.Update(ctx, fields, shared.FilterByID(todo.ID, model.FieldID, model.TableName))
	if err != nil {
		if isDateRangeViolation(err) {
			return res, dto.ErrDateRange()
		}

		log.Error().Err(err).Msg("failed to update todo")

		return res, fmt.Errorf("failed to update todo: %w", err)
	}

	if updated == 0 {
		return res, failure.NotFound(model.MessageNotFound) // nolint:wrapcheck
	}

	todo.ModifiedBy = user
	if modifiedAt, ok := fields[constant.FieldModifiedAt].(time.Time); ok {
		todo.ModifiedAt = modifiedAt
	}

	res.FromModel(todo)

	s.invalidate(ctx, todo.ID)
	events.PublishAsync(ctx, s.publisher, events.New(events.TodoUpdated, todo.ID, user, res))

	return res, nil
}

// invalidate runs before the write returns so the next read observes it.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetTodo, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete todo from cache")
	}
}

// isDateRangeViolation catches a range the database rejected after the
// service check passed, e.g. when two partial updates race.
func isDateRangeViolation(err error) bool {
	constraint, ok := shared.CheckViolation(err)

	return ok && constraint == model.ConstraintDateRange
}
