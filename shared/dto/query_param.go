package dto

import "strings"

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams orders a list query. Lists are returned whole.
type QueryParams struct {
	SortBy  string `json:"sort_by"`
	SortDir string `json:"sort_dir"`
}

// Direction normalises SortDir. Anything but a case-insensitive "asc" sorts
// descending.
func (q QueryParams) Direction() string {
	if strings.EqualFold(strings.TrimSpace(q.SortDir), SortDirAsc) {
		return SortDirAsc
	}

	return SortDirDesc
}
