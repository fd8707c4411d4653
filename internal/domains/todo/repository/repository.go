package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"todoapp/infras/otel"
	"todoapp/infras/postgres"
	"todoapp/internal/domains/todo/model"
	gDto "todoapp/shared/dto"
	gRepo "todoapp/shared/repository"
)

// Todo stores todo rows. The todos_date_range check constraint backs the
// service's date validation.
type Todo interface {
	Insert(ctx context.Context, todo model.Todo) error
	// Get returns a zero Todo when nothing matches.
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Todo, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Todo, error)
	Update(ctx context.Context, changes map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Todo]
}

func New(db *postgres.Connection, otel otel.Otel) Todo {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Todo](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
