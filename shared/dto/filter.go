package dto

import (
	"fmt"
	"maps"
	"strings"
)

const (
	FilterOperatorEq    = "eq"
	FilterOperatorNotEq = "not_eq"
	// FilterOperatorLike matches Value as a case-insensitive substring.
	FilterOperatorLike = "like"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Condition renders a boolean SQL expression with named parameters.
type Condition interface {
	GetWhereClause() (string, map[string]any)
}

type Filter struct {
	// ArgName names the bound parameter. Defaults to Field.
	ArgName  string
	Field    string
	Value    any
	Operator string
	Table    string
}

func (f Filter) GetWhereClause() (string, map[string]any) {
	column := f.Field
	if f.Table != "" {
		column = f.Table + "." + f.Field
	}

	argName := f.ArgName
	if argName == "" {
		argName = f.Field
	}

	switch f.Operator {
	case FilterOperatorEq:
		return fmt.Sprintf("%s = :%s", column, argName), map[string]any{argName: f.Value}
	case FilterOperatorNotEq:
		return fmt.Sprintf("%s != :%s", column, argName), map[string]any{argName: f.Value}
	case FilterOperatorLike:
		pattern := "%" + likeEscaper.Replace(fmt.Sprint(f.Value)) + "%"

		return fmt.Sprintf("%s ILIKE :%s", column, argName), map[string]any{argName: pattern}
	default:
		return "", map[string]any{}
	}
}

// FilterGroup joins its conditions with Operator. Conditions that render
// nothing are skipped.
type FilterGroup struct {
	Filters  []Condition
	Operator string
}

func (f FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := []string{}

	for _, filter := range f.Filters {
		where, arg := filter.GetWhereClause()
		if where == "" {
			continue
		}

		clauses = append(clauses, where)
		maps.Copy(args, arg)
	}

	if len(clauses) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return "(" + strings.Join(clauses, " "+operator+" ") + ")", args
}

// Search builds an OR group matching term as a case-insensitive substring of
// any of the given columns.
func Search(term, table string, fields ...string) FilterGroup {
	group := FilterGroup{Operator: FilterGroupOperatorOr}

	for _, field := range fields {
		group.Filters = append(group.Filters, Filter{
			ArgName:  "search_" + field,
			Field:    field,
			Value:    term,
			Operator: FilterOperatorLike,
			Table:    table,
		})
	}

	return group
}

// And joins the non-empty groups with AND.
func And(groups ...FilterGroup) FilterGroup {
	result := FilterGroup{Operator: FilterGroupOperatorAnd}

	for _, group := range groups {
		if len(group.Filters) == 0 {
			continue
		}

		result.Filters = append(result.Filters, group)
	}

	return result
}
