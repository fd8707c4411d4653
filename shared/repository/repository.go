// Package repository implements the CRUD statements every table shares on top
// of sqlx named queries. Reads go to the read pool and writes to the write
// pool.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"todoapp/infras/otel"
	"todoapp/infras/postgres"
	"todoapp/shared/constant"
	"todoapp/shared/dto"
	"todoapp/shared/logger"
)

var (
	ErrRequiredFilter = errors.New("required filter")
)

type Repository[T any] struct {
	db     *postgres.Connection
	otel   otel.Otel
	entity string
	sql    statements
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	return Repository[T]{
		db:     dbConnection,
		otel:   otl,
		entity: entityName,
		sql:    newStatements(tableName, primaryColumn, reflect.TypeOf(zero)),
	}
}

func (repo *Repository[T]) scope(ctx context.Context, operation string, query string) (context.Context, otel.Scope) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, operation))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	return ctx, scope
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	query := repo.sql.insert()

	ctx, scope := repo.scope(ctx, "Insert", query)
	defer scope.End()

	if _, err := repo.db.Write.NamedExecContext(ctx, query, model); err != nil {
		return repo.fail(scope, "insert data", err)
	}

	return nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	where, args := whereClause(filter)
	if where == "" {
		return false, ErrRequiredFilter
	}

	query := repo.sql.exist(where)

	ctx, scope := repo.scope(ctx, "Exist", query)
	defer scope.End()

	var exist bool

	if err := repo.getNamed(ctx, query, &exist, args); err != nil {
		return false, repo.fail(scope, "check exist data", err)
	}

	return exist, nil
}

// Get returns the first matching row, or the zero value when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	where, args := whereClause(filter)
	query := repo.sql.get(where, columns...)

	ctx, scope := repo.scope(ctx, "Get", query)
	defer scope.End()

	var model T

	err := repo.getNamed(ctx, query, &model, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		return model, repo.fail(scope, "get data", err)
	}

	return model, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	where, args := whereClause(filter)
	query := repo.sql.list(params, where, columns...)

	ctx, scope := repo.scope(ctx, "GetAll", query)
	defer scope.End()

	models := []T{}

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return models, repo.fail(scope, "prepare statement", err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, &models, args); err != nil {
		return models, repo.fail(scope, "get all data", err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	where, args := whereClause(filter)
	query := repo.sql.count(where)

	ctx, scope := repo.scope(ctx, "Count", query)
	defer scope.End()

	var count int

	if err := repo.getNamed(ctx, query, &count, args); err != nil {
		return 0, repo.fail(scope, "count data", err)
	}

	return count, nil
}

// Update sets changes on every row matching filter and reports how many rows
// were touched.
func (repo *Repository[T]) Update(ctx context.Context, changes map[string]any, filter dto.FilterGroup) (int64, error) {
	where, args := whereClause(filter)
	if where == "" {
		return 0, ErrRequiredFilter
	}

	query := repo.sql.update(changes, where)

	ctx, scope := repo.scope(ctx, "Update", query)
	defer scope.End()

	maps.Copy(args, changes)

	result, err := repo.db.Write.NamedExecContext(ctx, query, args)
	if err != nil {
		return 0, repo.fail(scope, "update data", err)
	}

	return rowsAffected(result), nil
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) (int64, error) {
	where, args := whereClause(filter)
	if where == "" {
		return 0, ErrRequiredFilter
	}

	query := repo.sql.delete(where)

	ctx, scope := repo.scope(ctx, "Delete", query)
	defer scope.End()

	result, err := repo.db.Write.NamedExecContext(ctx, query, args)
	if err != nil {
		return 0, repo.fail(scope, "delete data", err)
	}

	return rowsAffected(result), nil
}

func (repo *Repository[T]) getNamed(ctx context.Context, query string, dest any, args map[string]any) error {
	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return err //nolint:wrapcheck
	}
	defer prepare.Close()

	return prepare.GetContext(ctx, dest, args) //nolint:wrapcheck
}

func rowsAffected(result sql.Result) int64 {
	affected, err := result.RowsAffected()
	if err != nil {
		return 0
	}

	return affected
}
