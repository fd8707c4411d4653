package dto

import (
	"strings"
	"time"
	"todoapp/internal/domains/todo/model"
	"todoapp/shared"
	"todoapp/shared/constant"
	gDto "todoapp/shared/dto"
	"todoapp/shared/failure"
	"todoapp/shared/timezone"

	"github.com/google/uuid"
)

// CompletedAll disables the completion filter on list requests.
const CompletedAll = "all"

// TodoRequest is the full representation accepted by create and replace.
// Absent dates and description mean "none".
type TodoRequest struct {
	Title       string  `json:"title"       validate:"required,notblank,max=120"  example:"Write report"`
	Description string  `json:"description" validate:"max=2000"                   example:"Quarterly numbers"`
	Completed   *bool   `json:"completed"`
	StartDate   *string `json:"start_date"  validate:"omitnil,datetime=2006-01-02" example:"2025-01-05"`
	EndDate     *string `json:"end_date"    validate:"omitnil,datetime=2006-01-02" example:"2025-01-10"`
}

type CreateTodoRequest = TodoRequest

func (c *TodoRequest) ToModel(user string) (model.Todo, error) {
	startDate, endDate, err := parseDates(c.StartDate, c.EndDate)
	if err != nil {
		return model.Todo{}, err
	}

	todo := model.Todo{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(c.Title),
		Description: c.Description,
		Completed:   c.Completed != nil && *c.Completed,
		StartDate:   startDate,
		EndDate:     endDate,
	}
	todo.Stamp(timezone.Now(), user)

	return todo, nil
}

// ToUpdate turns a full representation into a replacing update: fields left
// out are reset instead of kept. Completion keeps its value when absent.
func (c *TodoRequest) ToUpdate() UpdateTodoRequest {
	description := c.Description
	title := c.Title

	return UpdateTodoRequest{
		Title:       &title,
		Description: &description,
		Completed:   c.Completed,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		replace:     true,
	}
}

// UpdateTodoRequest is a partial update. Nil fields are left unchanged, so a
// date can only be cleared with a full replace.
type UpdateTodoRequest struct {
	Title       *string `json:"title"       validate:"omitnil,notblank,max=120"`
	Description *string `json:"description" validate:"omitnil,max=2000"`
	Completed   *bool   `json:"completed"`
	StartDate   *string `json:"start_date"  validate:"omitnil,datetime=2006-01-02"`
	EndDate     *string `json:"end_date"    validate:"omitnil,datetime=2006-01-02"`

	replace bool
}

func (u *UpdateTodoRequest) IsReplace() bool {
	return u.replace
}

func (u *UpdateTodoRequest) IsEmpty() bool {
	return !u.replace && u.Title == nil && u.Description == nil && u.Completed == nil &&
		u.StartDate == nil && u.EndDate == nil
}

// Apply merges the update into a copy of todo.
func (u *UpdateTodoRequest) Apply(todo model.Todo) (model.Todo, error) {
	startDate, endDate, err := parseDates(u.StartDate, u.EndDate)
	if err != nil {
		return todo, err
	}

	if u.Title != nil {
		todo.Title = strings.TrimSpace(*u.Title)
	}

	if u.Description != nil {
		todo.Description = *u.Description
	}

	if u.Completed != nil {
		todo.Completed = *u.Completed
	}

	if u.replace || u.StartDate != nil {
		todo.StartDate = startDate
	}

	if u.replace || u.EndDate != nil {
		todo.EndDate = endDate
	}

	return todo, nil
}

// Columns returns every mutable column of todo for an update statement.
func Columns(todo model.Todo, user string) map[string]any {
	return shared.Audit(map[string]any{
		model.FieldTitle:       todo.Title,
		model.FieldDescription: todo.Description,
		model.FieldCompleted:   todo.Completed,
		model.FieldStartDate:   todo.StartDate,
		model.FieldEndDate:     todo.EndDate,
	}, user)
}

// ListFilter narrows the list. A nil Completed returns both partitions.
type ListFilter struct {
	Completed *bool
	Search    string
}

func (f ListFilter) ToFilterGroup() gDto.FilterGroup {
	completed := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	if f.Completed != nil {
		completed.Filters = append(completed.Filters, gDto.Filter{
			Field:    model.FieldCompleted,
			Value:    *f.Completed,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	search := gDto.FilterGroup{}
	if f.Search != "" {
		search = gDto.Search(f.Search, model.TableName, model.FieldTitle, model.FieldDescription)
	}

	return gDto.And(completed, search)
}

type TodoResponse struct {
	ID          string  `json:"id"          example:"5f0c2a4e-7d7b-4a0e-9a55-7c1f5b3b1f10"`
	Title       string  `json:"title"       example:"Write report"`
	Description string  `json:"description" example:"Quarterly numbers"`
	Completed   bool    `json:"completed"   example:"false"`
	StartDate   *string `json:"start_date"  example:"2025-01-05"`
	EndDate     *string `json:"end_date"    example:"2025-01-10"`
	gDto.Metadata
}

func (r *TodoResponse) FromModel(model model.Todo) {
	r.ID = model.ID
	r.Title = model.Title
	r.Description = model.Description
	r.Completed = model.Completed
	r.StartDate = formatDate(model.StartDate)
	r.EndDate = formatDate(model.EndDate)
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Todo) []TodoResponse {
	res := make([]TodoResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

func formatDate(date *time.Time) *string {
	if date == nil {
		return nil
	}

	formatted := timezone.FormatDate(*date)

	return &formatted
}

func parseDate(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil //nolint:nilnil
	}

	date, err := timezone.ParseDate(*value)
	if err != nil {
		return nil, failure.FieldError(field, field+" has wrong format, use YYYY-MM-DD") //nolint:wrapcheck
	}

	return &date, nil
}

func parseDates(start, end *string) (*time.Time, *time.Time, error) {
	startDate, err := parseDate(model.FieldStartDate, start)
	if err != nil {
		return nil, nil, err
	}

	endDate, err := parseDate(model.FieldEndDate, end)
	if err != nil {
		return nil, nil, err
	}

	return startDate, endDate, nil
}

// ErrDateRange is the validation failure for an end date before the start date.
func ErrDateRange() error {
	return failure.FieldError(constant.NonFieldErrors, model.MessageEndBeforeStart) //nolint:wrapcheck
}
