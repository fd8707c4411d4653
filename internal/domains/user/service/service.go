package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=User=MockUserService

import (
	"context"
	"fmt"
	"time"
	"todoapp/config"
	"todoapp/infras/otel"
	"todoapp/internal/domains/user/model"
	"todoapp/internal/domains/user/model/dto"
	"todoapp/internal/domains/user/repository"
	"todoapp/internal/events"
	"todoapp/shared"
	"todoapp/shared/cache"
	"todoapp/shared/constant"
	gDto "todoapp/shared/dto"
	"todoapp/shared/failure"
	"todoapp/shared/password"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"
	cacheStatsUser  = "user:stats"
)

// unique index name -> request field
var uniqueConstraints = map[string]string{
	model.ConstraintUsername: model.FieldUsername,
	model.ConstraintEmail:    model.FieldEmail,
}

type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error)
	GetAll(ctx context.Context, filter dto.ListFilter) ([]dto.UserResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateUserRequest) (dto.UserResponse, error)
	SetActive(ctx context.Context, id string, active bool) (dto.UserResponse, error)
	Delete(ctx context.Context, id string) error
	Statistics(ctx context.Context) (dto.Statistics, error)
}

type serviceImpl struct {
	repo      repository.User
	cfg       *config.Config
	cache     cache.RedisCache
	publisher events.Publisher
	otel      otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, publisher events.Publisher, otel otel.Otel) User {
	return &serviceImpl{
		repo:      repo,
		cfg:       cfg,
		cache:     cache,
		publisher: publisher,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = req.CheckPassword(); err != nil {
		return res, err
	}

	actor := shared.Actor(ctx)

	hashed, hashErr := password.HashOptional(req.Password)
	if hashErr != nil {
		log.Error().Err(hashErr).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", hashErr)
	}

	user := req.ToModel(actor, hashed)

	if err = s.checkUnique(ctx, user); err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, user); err != nil {
		if uniqueErr := uniqueFailure(err); uniqueErr != nil {
			return res, uniqueErr
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	res.FromModel(user)

	s.invalidate(ctx, "")
	events.PublishAsync(ctx, s.publisher, events.New(events.UserCreated, user.ID, actor, res))

	return res, nil
}

// GetAll lists users newest first.
func (s *serviceImpl) GetAll(ctx context.Context, filter dto.ListFilter) (res []dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.QueryParams{
		SortBy:  model.FieldDateJoined,
		SortDir: gDto.SortDirDesc,
	}
	filterGroup := filter.ToFilterGroup()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUser, params, filterGroup)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for users")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, params, filterGroup)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	res = dto.FromModels(models)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save users to cache")
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for user")

		return res, nil
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save user to cache")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (res dto.UserResponse, err error) {
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

	merged := req.Apply(current)

	if err = s.checkUnique(ctx, merged); err != nil {
		return res, err
	}

	actor := shared.Actor(ctx)

	return s.save(ctx, merged, dto.Columns(merged, actor), actor)
}

func (s *serviceImpl) SetActive(ctx context.Context, id string, active bool) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetActive")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	actor := shared.Actor(ctx)
	user.IsActive = active

	return s.save(ctx, user, shared.Audit(map[string]any{model.FieldIsActive: active}, actor), actor)
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	deleted, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	if deleted == 0 {
		return failure.NotFound(model.MessageNotFound) // nolint:wrapcheck
	}

	s.invalidate(ctx, id)
	events.PublishAsync(ctx, s.publisher, events.New(events.UserDeleted, id, shared.Actor(ctx), nil))

	return nil
}

func (s *serviceImpl) Statistics(ctx context.Context) (res dto.Statistics, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Statistics")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheStatsUser, "all")

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	active := true

	activeCount, err := s.repo.Count(ctx, dto.ListFilter{Active: &active}.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to count active users")

		return res, fmt.Errorf("failed to count active users: %w", err)
	}

	res = dto.Statistics{
		TotalUsers:    total,
		ActiveUsers:   activeCount,
		InactiveUsers: total - activeCount,
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save user statistics to cache")
	}

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.User, error) {
	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return user, failure.NotFound(model.MessageNotFound) // nolint:wrapcheck
	}

	return user, nil
}

// checkUnique collects every taken identifier of user, ignoring user's own row.
func (s *serviceImpl) checkUnique(ctx context.Context, user model.User) error {
	fields := map[string][]string{}

	checks := []struct {
		field   string
		value   string
		message string
	}{
		{field: model.FieldUsername, value: user.Username, message: model.MessageUsernameExists},
		{field: model.FieldEmail, value: user.Email, message: model.MessageEmailExists},
	}

	for _, check := range checks {
		exists, err := s.repo.Exist(ctx, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []gDto.Condition{
				gDto.Filter{Field: check.field, Value: check.value, Operator: gDto.FilterOperatorEq, Table: model.TableName},
				gDto.Filter{Field: model.FieldID, Value: user.ID, Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
			},
		})
		if err != nil {
			log.Error().Err(err).Str("field", check.field).Msg("failed to check user uniqueness")

			return fmt.Errorf("failed to check %s uniqueness: %w", check.field, err)
		}

		if exists {
			fields[check.field] = append(fields[check.field], check.message)
		}
	}

	if len(fields) > 0 {
		return failure.Validation(fields) //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) save(ctx context.Context, user model.User, fields map[string]any, actor string) (res dto.UserResponse, err error) {
	updated, err := s.repo.Update(ctx, fields, shared.FilterByID(user.ID, model.FieldID, model.TableName))
	if err != nil {
		if uniqueErr := uniqueFailure(err); uniqueErr != nil {
			return res, uniqueErr
		}

		log.Error().Err(err).Msg("failed to update user")

		return res, fmt.Errorf("failed to update user: %w", err)
	}

	if updated == 0 {
		return res, failure.NotFound(model.MessageNotFound) // nolint:wrapcheck
	}

	user.ModifiedBy = actor
	if modifiedAt, ok := fields[constant.FieldModifiedAt].(time.Time); ok {
		user.ModifiedAt = modifiedAt
	}

	res.FromModel(user)

	s.invalidate(ctx, user.ID)
	events.PublishAsync(ctx, s.publisher, events.New(events.UserUpdated, user.ID, actor, res))

	return res, nil
}

// invalidate drops the cached record of id (when set) and every cached list
// and aggregate before the write returns.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if id != "" {
		if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetUser, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete user from cache")
		}
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllUser)
	shared.InvalidateCaches(ctx, s.cache, cacheStatsUser)
}

// uniqueFailure turns a unique index violation that slipped past checkUnique
// into the same field error.
func uniqueFailure(err error) error {
	constraint, ok := shared.UniqueViolation(err)
	if !ok {
		return nil
	}

	field, known := uniqueConstraints[constraint]
	if !known {
		return failure.Conflict(model.EntityName + " already exists") //nolint:wrapcheck
	}

	message := model.MessageUsernameExists
	if field == model.FieldEmail {
		message = model.MessageEmailExists
	}

	return failure.FieldError(field, message) //nolint:wrapcheck
}
