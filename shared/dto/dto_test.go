package dto_test

import (
	"testing"
	"time"
	"todoapp/shared/constant"
	"todoapp/shared/dto"
	"todoapp/shared/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := createdAt.Add(26 * time.Hour)

	metadata := dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	})

	assert.Equal(t, "creator", metadata.CreatedBy)
	assert.Equal(t, "modifier", metadata.ModifiedBy)

	parsed, err := time.Parse(constant.DateFormat, metadata.CreatedAt)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(parsed))

	parsed, err = time.Parse(constant.DateFormat, metadata.ModifiedAt)
	require.NoError(t, err)
	assert.True(t, modifiedAt.Equal(parsed))
}

func TestQueryParams_Direction(t *testing.T) {
	tests := []struct {
		sortDir string
		want    string
	}{
		{sortDir: "ASC", want: dto.SortDirAsc},
		{sortDir: " asc ", want: dto.SortDirAsc},
		{sortDir: "DESC", want: dto.SortDirDesc},
		{sortDir: "", want: dto.SortDirDesc},
		{sortDir: "sideways", want: dto.SortDirDesc},
	}

	for _, tt := range tests {
		t.Run(tt.sortDir, func(t *testing.T) {
			assert.Equal(t, tt.want, dto.QueryParams{SortDir: tt.sortDir}.Direction())
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "equals",
			filter:    dto.Filter{Field: "completed", Value: true, Operator: dto.FilterOperatorEq, Table: "todos"},
			wantWhere: "todos.completed = :completed",
			wantArgs:  map[string]any{"completed": true},
		},
		{
			name:      "not equals with a custom argument",
			filter:    dto.Filter{ArgName: "skip_id", Field: "id", Value: "abc", Operator: dto.FilterOperatorNotEq},
			wantWhere: "id != :skip_id",
			wantArgs:  map[string]any{"skip_id": "abc"},
		},
		{
			name:      "like escapes wildcards",
			filter:    dto.Filter{Field: "title", Value: `50%_off\`, Operator: dto.FilterOperatorLike},
			wantWhere: "title ILIKE :title",
			wantArgs:  map[string]any{"title": `%50\%\_off\\%`},
		},
		{
			name:     "unknown operator renders nothing",
			filter:   dto.Filter{Field: "title", Value: "x", Operator: "between"},
			wantArgs: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	t.Run("defaults to AND", func(t *testing.T) {
		where, args := dto.FilterGroup{Filters: []dto.Condition{
			dto.Filter{Field: "completed", Value: false, Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "title", Value: "x", Operator: "between"},
			dto.Filter{Field: "owner", Value: "alice", Operator: dto.FilterOperatorEq},
		}}.GetWhereClause()

		assert.Equal(t, "(completed = :completed AND owner = :owner)", where)
		assert.Equal(t, map[string]any{"completed": false, "owner": "alice"}, args)
	})

	t.Run("empty group", func(t *testing.T) {
		where, args := dto.FilterGroup{Operator: dto.FilterGroupOperatorOr}.GetWhereClause()

		assert.Empty(t, where)
		assert.Empty(t, args)
	})
}

func TestSearch(t *testing.T) {
	where, args := dto.Search("Milk", "todos", "title", "description").GetWhereClause()

	assert.Equal(t, "(todos.title ILIKE :search_title OR todos.description ILIKE :search_description)", where)
	assert.Equal(t, map[string]any{"search_title": "%Milk%", "search_description": "%Milk%"}, args)
}

func TestAnd(t *testing.T) {
	completed := dto.FilterGroup{Filters: []dto.Condition{
		dto.Filter{Field: "completed", Value: false, Operator: dto.FilterOperatorEq},
	}}

	t.Run("skips empty groups", func(t *testing.T) {
		where, args := dto.And(completed, dto.FilterGroup{}).GetWhereClause()

		assert.Equal(t, "((completed = :completed))", where)
		assert.Equal(t, map[string]any{"completed": false}, args)
	})

	t.Run("joins with AND", func(t *testing.T) {
		where, _ := dto.And(completed, dto.Search("x", "", "title")).GetWhereClause()

		assert.Equal(t, "((completed = :completed) AND (title ILIKE :search_title))", where)
	})

	t.Run("nothing to filter", func(t *testing.T) {
		where, args := dto.And().GetWhereClause()

		assert.Empty(t, where)
		assert.Empty(t, args)
	})
}
