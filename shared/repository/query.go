package repository

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"todoapp/shared/dto"
)

// statements renders the SQL for one table. Columns come from the db tags of
// the row type, embedded structs included, in declaration order.
type statements struct {
	table   string
	primary string
	columns []string
}

func newStatements(table, primary string, row reflect.Type) statements {
	return statements{
		table:   table,
		primary: primary,
		columns: columnsOf(row),
	}
}

func columnsOf(row reflect.Type) []string {
	columns := []string{}

	for i := range row.NumField() {
		field := row.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, columnsOf(field.Type)...)

			continue
		}

		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			columns = append(columns, tag)
		}
	}

	return columns
}

func (s statements) insert() string {
	placeholders := make([]string, len(s.columns))

	for i, col := range s.columns {
		placeholders[i] = ":" + col
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", s.table, strings.Join(s.columns, ", "), strings.Join(placeholders, ", "))
}

// selection lists the qualified columns to read, limited to only when given.
func (s statements) selection(only ...string) string {
	columns := []string{}

	for _, col := range s.columns {
		if len(only) > 0 && !slices.Contains(only, col) {
			continue
		}

		columns = append(columns, s.table+"."+col)
	}

	return strings.Join(columns, ", ")
}

func (s statements) get(where string, only ...string) string {
	return fmt.Sprintf("SELECT %s FROM %s%s", s.selection(only...), s.table, where)
}

// list orders a select. A sort column the table does not have is ignored.
func (s statements) list(params dto.QueryParams, where string, only ...string) string {
	query := s.get(where, only...)

	if params.SortBy == "" || !slices.Contains(s.columns, params.SortBy) {
		return query
	}

	dir := params.Direction()

	// Tie-break on the primary column so equal sort keys keep a stable order.
	return fmt.Sprintf("%s ORDER BY %s.%s %s, %s.%s %s", query, s.table, params.SortBy, dir, s.table, s.primary, dir)
}

func (s statements) count(where string) string {
	return fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s%s", s.table, s.primary, s.table, where)
}

func (s statements) exist(where string) string {
	return fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s%s)", s.table, where)
}

// update writes columns in sorted order so identical changes produce
// identical statements.
func (s statements) update(changes map[string]any, where string) string {
	assignments := []string{}

	for _, col := range slices.Sorted(maps.Keys(changes)) {
		assignments = append(assignments, col+" = :"+col)
	}

	return fmt.Sprintf("UPDATE %s SET %s%s", s.table, strings.Join(assignments, ", "), where)
}

func (s statements) delete(where string) string {
	return fmt.Sprintf("DELETE FROM %s%s", s.table, where)
}

// whereClause renders filter with a leading space, or nothing for an empty
// filter.
func whereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return " WHERE " + where, args
}
