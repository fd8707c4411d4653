package client_test

import (
	"testing"
	"todoapp/internal/client"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T {
	return &v
}

func TestToWire(t *testing.T) {
	tests := []struct {
		name  string
		draft client.Draft
		want  client.Item
	}{
		{
			name:  "empty dates become null",
			draft: client.Draft{Title: "Buy milk"},
			want:  client.Item{Title: "Buy milk"},
		},
		{
			name:  "dates are kept",
			draft: client.Draft{ID: "abc", Title: "Write report", StartDate: "2025-01-05", EndDate: "2025-01-10", Completed: true},
			want:  client.Item{ID: "abc", Title: "Write report", StartDate: ptr("2025-01-05"), EndDate: ptr("2025-01-10"), Completed: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, client.ToWire(tt.draft))
		})
	}
}

func TestFromWire(t *testing.T) {
	t.Run("null dates become empty", func(t *testing.T) {
		draft := client.FromWire(client.Item{ID: "abc", Title: "Buy milk"})

		assert.Equal(t, client.Draft{ID: "abc", Title: "Buy milk"}, draft)
		assert.False(t, draft.IsNew())
	})

	t.Run("round trip keeps values", func(t *testing.T) {
		drafts := []client.Draft{
			{Title: "No dates"},
			{Title: "Only start", StartDate: "2025-01-05"},
			{Title: "Range", Description: "Quarterly numbers", StartDate: "2025-01-05", EndDate: "2025-01-10"},
		}

		for _, draft := range drafts {
			assert.Equal(t, draft, client.FromWire(client.ToWire(draft)))
			assert.True(t, draft.IsNew())
		}
	})
}

func TestCheckDateRange(t *testing.T) {
	tests := []struct {
		start, end string
		want       bool
	}{
		{start: "", end: "", want: true},
		{start: "2025-01-05", end: "", want: true},
		{start: "", end: "2025-01-05", want: true},
		{start: "2025-01-05", end: "2025-01-10", want: true},
		{start: "2025-01-05", end: "2025-01-05", want: true},
		{start: "2025-01-10", end: "2025-01-05", want: false},
		{start: "not a date", end: "2025-01-05", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.start+"_"+tt.end, func(t *testing.T) {
			assert.Equal(t, tt.want, client.CheckDateRange(tt.start, tt.end))
		})
	}
}
