package model

import (
	"time"
	"todoapp/shared/model"
)

const (
	TableName  = "todos"
	EntityName = "todo"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCompleted   = "completed"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldCreatedAt   = "created_at"

	ConstraintDateRange = "todos_date_range"
)

const (
	MessageEndBeforeStart = "End date cannot be before start date."
	MessageNotFound       = "todo not found"
	MessageTitleRequired  = "title may not be blank"
)

type Todo struct {
	ID          string     `db:"id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Completed   bool       `db:"completed"`
	StartDate   *time.Time `db:"start_date"`
	EndDate     *time.Time `db:"end_date"`
	model.Metadata
}

// ValidDateRange reports whether end is not before start. A missing bound
// always passes.
func ValidDateRange(start, end *time.Time) bool {
	if start == nil || end == nil {
		return true
	}

	return !end.Before(*start)
}

func (t Todo) ValidDateRange() bool {
	return ValidDateRange(t.StartDate, t.EndDate)
}
