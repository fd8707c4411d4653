package dto_test

import (
	"testing"
	"time"

	"todoapp/internal/domains/todo/model"
	"todoapp/internal/domains/todo/model/dto"
	"todoapp/shared/constant"
	"todoapp/shared/failure"
	gModel "todoapp/shared/model"
	"todoapp/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestTodoRequest_ToModel(t *testing.T) {
	req := dto.TodoRequest{
		Title:       "  Test Todo  ",
		Description: "Test Description",
		StartDate:   ptr("2025-01-05"),
	}

	userID := "test-user-id"
	todo, err := req.ToModel(userID)

	require.NoError(t, err)
	assert.NotEmpty(t, todo.ID, "expected ID to be generated")
	assert.Equal(t, "Test Todo", todo.Title)
	assert.Equal(t, req.Description, todo.Description)
	assert.False(t, todo.Completed)
	require.NotNil(t, todo.StartDate)
	assert.Equal(t, "2025-01-05", todo.StartDate.Format(time.DateOnly))
	assert.Nil(t, todo.EndDate)
	assert.Equal(t, userID, todo.CreatedBy)
	assert.Equal(t, userID, todo.ModifiedBy)
	assert.False(t, todo.CreatedAt.IsZero(), "expected CreatedAt to be set")
}

func TestTodoRequest_ToModel_InvalidDate(t *testing.T) {
	req := dto.TodoRequest{Title: "Test", EndDate: ptr("10/01/2025")}

	_, err := req.ToModel("user")

	require.Error(t, err)
	assert.Contains(t, failure.GetFields(err), model.FieldEndDate)
}

func TestUpdateTodoRequest_Apply(t *testing.T) {
	start := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	current := model.Todo{ID: "id", Title: "Old", Description: "Keep", StartDate: &start, EndDate: &end}

	tests := []struct {
		name      string
		req       dto.UpdateTodoRequest
		wantTitle string
		wantDesc  string
		wantStart *time.Time
		wantEnd   *time.Time
	}{
		{
			name:      "partial keeps absent fields",
			req:       dto.UpdateTodoRequest{Title: ptr("New")},
			wantTitle: "New",
			wantDesc:  "Keep",
			wantStart: &start,
			wantEnd:   &end,
		},
		{
			name:      "partial sets one date",
			req:       dto.UpdateTodoRequest{EndDate: ptr("2025-02-01")},
			wantTitle: "Old",
			wantDesc:  "Keep",
			wantStart: &start,
			wantEnd:   ptr(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)),
		},
		{
			name: "replace resets absent fields",
			req: func() dto.UpdateTodoRequest {
				full := dto.TodoRequest{Title: "New"}

				return full.ToUpdate()
			}(),
			wantTitle: "New",
			wantDesc:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, err := tt.req.Apply(current)

			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, merged.Title)
			assert.Equal(t, tt.wantDesc, merged.Description)
			assert.Equal(t, tt.wantStart, merged.StartDate)
			assert.Equal(t, tt.wantEnd, merged.EndDate)
			assert.Equal(t, "Old", current.Title, "apply must not mutate the stored record")
		})
	}
}

func TestUpdateTodoRequest_IsEmpty(t *testing.T) {
	assert.True(t, (&dto.UpdateTodoRequest{}).IsEmpty())
	assert.False(t, (&dto.UpdateTodoRequest{Completed: ptr(false)}).IsEmpty())

	full := dto.TodoRequest{}
	replace := full.ToUpdate()
	assert.False(t, replace.IsEmpty())
	assert.True(t, replace.IsReplace())
}

func TestValidDateRange(t *testing.T) {
	early := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	assert.True(t, model.ValidDateRange(nil, nil))
	assert.True(t, model.ValidDateRange(&early, nil))
	assert.True(t, model.ValidDateRange(nil, &early))
	assert.True(t, model.ValidDateRange(&early, &early))
	assert.True(t, model.ValidDateRange(&early, &late))
	assert.False(t, model.ValidDateRange(&late, &early))
}

func TestErrDateRange(t *testing.T) {
	err := dto.ErrDateRange()

	assert.Equal(t, "End date cannot be before start date.", err.Error())
	assert.Equal(t, []string{"End date cannot be before start date."}, failure.GetFields(err)[constant.NonFieldErrors])
}

func TestTodoResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	start := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	todoModel := model.Todo{
		ID:          "test-id",
		Title:       "Test Todo",
		Description: "Test Description",
		Completed:   true,
		StartDate:   &start,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}

	var response dto.TodoResponse
	response.FromModel(todoModel)

	assert.Equal(t, todoModel.ID, response.ID)
	assert.Equal(t, todoModel.Title, response.Title)
	assert.Equal(t, todoModel.Description, response.Description)
	assert.Equal(t, todoModel.Completed, response.Completed)
	assert.Equal(t, ptr("2025-01-05"), response.StartDate)
	assert.Nil(t, response.EndDate)
	assert.Equal(t, todoModel.CreatedBy, response.CreatedBy)
}

func TestListFilter_ToFilterGroup(t *testing.T) {
	where, _ := dto.ListFilter{}.ToFilterGroup().GetWhereClause()
	assert.Empty(t, where, "no filter means every todo")

	where, args := dto.ListFilter{Completed: ptr(true), Search: "milk"}.ToFilterGroup().GetWhereClause()
	assert.Contains(t, where, "todos.completed = :completed")
	assert.Contains(t, where, " AND ")
	assert.Equal(t, true, args["completed"])
	assert.Equal(t, "%milk%", args["search_description"])
}
