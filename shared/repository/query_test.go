package repository

import (
	"reflect"
	"testing"
	"time"
	"todoapp/shared/dto"
	"todoapp/shared/model"

	"github.com/stretchr/testify/assert"
)

type row struct {
	ID        string     `db:"id"`
	Title     string     `db:"title"`
	Completed bool       `db:"completed"`
	StartDate *time.Time `db:"start_date"`
	Scratch   string     `db:"-"`
	Untagged  string
	model.Metadata
}

func newRowStatements() statements {
	return newStatements("todos", "id", reflect.TypeOf(row{}))
}

func TestColumnsOf(t *testing.T) {
	assert.Equal(t, []string{
		"id", "title", "completed", "start_date",
		"created_at", "modified_at", "created_by", "modified_by",
	}, newRowStatements().columns)
}

func TestStatements_Insert(t *testing.T) {
	assert.Equal(t,
		"INSERT INTO todos (id, title, completed, start_date, created_at, modified_at, created_by, modified_by) "+
			"VALUES (:id, :title, :completed, :start_date, :created_at, :modified_at, :created_by, :modified_by)",
		newRowStatements().insert())
}

func TestStatements_Get(t *testing.T) {
	s := newRowStatements()

	assert.Equal(t, "SELECT todos.id, todos.title FROM todos WHERE (todos.id = :id)", s.get(" WHERE (todos.id = :id)", "title", "id"))
	assert.Contains(t, s.get(""), "todos.modified_by FROM todos")
}

func TestStatements_List(t *testing.T) {
	tests := []struct {
		name   string
		params dto.QueryParams
		want   string
	}{
		{
			name: "unsorted",
			want: "SELECT todos.id FROM todos",
		},
		{
			name:   "newest first with a stable tie-break",
			params: dto.QueryParams{SortBy: "created_at", SortDir: "DESC"},
			want:   "SELECT todos.id FROM todos ORDER BY todos.created_at DESC, todos.id DESC",
		},
		{
			name:   "ascending",
			params: dto.QueryParams{SortBy: "title", SortDir: "asc"},
			want:   "SELECT todos.id FROM todos ORDER BY todos.title ASC, todos.id ASC",
		},
		{
			name:   "missing direction sorts descending",
			params: dto.QueryParams{SortBy: "title"},
			want:   "SELECT todos.id FROM todos ORDER BY todos.title DESC, todos.id DESC",
		},
		{
			name:   "unknown sort column is ignored",
			params: dto.QueryParams{SortBy: "title; DROP TABLE todos"},
			want:   "SELECT todos.id FROM todos",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newRowStatements().list(tt.params, "", "id"))
		})
	}
}

func TestStatements_Writes(t *testing.T) {
	s := newRowStatements()
	where := " WHERE (todos.id = :id)"

	assert.Equal(t, "UPDATE todos SET completed = :completed, modified_at = :modified_at, title = :title WHERE (todos.id = :id)",
		s.update(map[string]any{"title": "x", "completed": true, "modified_at": time.Now()}, where))
	assert.Equal(t, "DELETE FROM todos WHERE (todos.id = :id)", s.delete(where))
	assert.Equal(t, "SELECT COUNT(todos.id) FROM todos WHERE (todos.id = :id)", s.count(where))
	assert.Equal(t, "SELECT EXISTS(SELECT 1 FROM todos WHERE (todos.id = :id))", s.exist(where))
}

func TestWhereClause(t *testing.T) {
	where, args := whereClause(dto.FilterGroup{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = whereClause(dto.FilterGroup{
		Filters: []dto.Condition{dto.Filter{Field: "id", Value: "1", Operator: dto.FilterOperatorEq, Table: "todos"}},
	})
	assert.Equal(t, " WHERE (todos.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "1"}, args)
}
