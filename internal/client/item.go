// Package client keeps the presentation-side working set of todos in sync
// with the todo API.
package client

import "todoapp/shared/timezone"

// Item is a todo as the API sends and receives it. Absent dates are null.
type Item struct {
	ID          string  `json:"id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Completed   bool    `json:"completed"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// Draft is a todo as an editor holds it. An empty date string means no date,
// an empty ID means the todo has not been created yet.
type Draft struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	StartDate   string
	EndDate     string
}

// IsNew reports whether saving the draft creates a todo.
func (d Draft) IsNew() bool {
	return d.ID == ""
}

// ToWire converts a draft for sending. Empty dates become null.
func ToWire(draft Draft) Item {
	return Item{
		ID:          draft.ID,
		Title:       draft.Title,
		Description: draft.Description,
		Completed:   draft.Completed,
		StartDate:   wireDate(draft.StartDate),
		EndDate:     wireDate(draft.EndDate),
	}
}

// FromWire converts a received item for editing. Null dates become empty.
func FromWire(item Item) Draft {
	return Draft{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Completed:   item.Completed,
		StartDate:   editDate(item.StartDate),
		EndDate:     editDate(item.EndDate),
	}
}

// CheckDateRange reports whether end comes on or after start. Missing or
// unparsable dates never violate the range, the server rejects bad formats.
func CheckDateRange(start, end string) bool {
	if start == "" || end == "" {
		return true
	}

	startDate, err := timezone.ParseDate(start)
	if err != nil {
		return true
	}

	endDate, err := timezone.ParseDate(end)
	if err != nil {
		return true
	}

	return !endDate.Before(startDate)
}

func wireDate(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}

func editDate(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}
