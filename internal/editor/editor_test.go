package editor_test

import (
	"errors"
	"net/http"
	"strconv"
	"testing"
	"todoapp/internal/client"
	"todoapp/internal/editor"
	"todoapp/shared/constant"
	"todoapp/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditor_Lifecycle(t *testing.T) {
	e := editor.New()

	assert.Equal(t, editor.Closed, e.State())

	e.SetTitle("ignored while closed")
	assert.Empty(t, e.Draft().Title)
	assert.ErrorIs(t, e.Save(func(client.Draft) error { return nil }), editor.ErrNotOpen)

	e.OpenBlank()
	assert.True(t, e.IsOpen())
	assert.True(t, e.Draft().IsNew())

	e.Cancel()
	assert.Equal(t, editor.Closed, e.State())
}

func TestEditor_SaveRejectsDateRange(t *testing.T) {
	e := editor.New()
	e.OpenBlank()
	e.SetTitle("Buy milk")
	e.SetStartDate("2025-01-10")
	e.SetEndDate("2025-01-05")

	called := false
	err := e.Save(func(client.Draft) error {
		called = true

		return nil
	})

	require.Error(t, err)
	assert.False(t, called)
	assert.True(t, e.IsOpen())
	assert.Equal(t, "End date cannot be before start date.", e.Error())
	assert.Equal(t, []string{"End date cannot be before start date."}, failure.GetFields(err)[constant.NonFieldErrors])

	t.Run("field change clears the message", func(t *testing.T) {
		e.SetEndDate("2025-01-12")

		assert.Empty(t, e.Error())
	})
}

func TestEditor_SaveRejectsBlankTitle(t *testing.T) {
	for _, title := range []string{"", "   "} {
		t.Run("title "+strconv.Quote(title), func(t *testing.T) {
			e := editor.New()
			e.OpenBlank()
			e.SetTitle(title)

			called := false
			err := e.Save(func(client.Draft) error {
				called = true

				return nil
			})

			require.Error(t, err)
			assert.False(t, called)
			assert.True(t, e.IsOpen())
			assert.Equal(t, "title may not be blank", e.Error())
			assert.Equal(t, []string{"title may not be blank"}, failure.GetFields(err)["title"])
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestEditor_SaveHandsOverWorkingCopy(t *testing.T) {
	e := editor.New()
	e.OpenItem(client.Item{ID: "abc", Title: "Write report", StartDate: ptr("2025-01-05")})
	e.SetEndDate("2025-01-10")
	e.SetDescription("Quarterly numbers")
	e.SetCompleted(true)

	var saved client.Draft
	require.NoError(t, e.Save(func(draft client.Draft) error {
		saved = draft

		return nil
	}))

	assert.Equal(t, client.Draft{
		ID:          "abc",
		Title:       "Write report",
		Description: "Quarterly numbers",
		Completed:   true,
		StartDate:   "2025-01-05",
		EndDate:     "2025-01-10",
	}, saved)
	assert.Equal(t, editor.Closed, e.State())
	assert.Equal(t, client.Draft{}, e.Draft())
}

func TestEditor_ReopenKeepsEmptyDates(t *testing.T) {
	e := editor.New()
	e.OpenItem(client.ToWire(client.Draft{ID: "abc", Title: "Buy milk", StartDate: "", EndDate: ""}))

	assert.Empty(t, e.Draft().StartDate)
	assert.Empty(t, e.Draft().EndDate)
}

func TestEditor_FailedSaveStaysOpen(t *testing.T) {
	e := editor.New()
	e.OpenBlank()
	e.SetTitle("Buy milk")

	err := e.Save(func(client.Draft) error { return errors.New("connection refused") })

	assert.ErrorContains(t, err, "connection refused")
	assert.True(t, e.IsOpen())
	assert.Equal(t, "connection refused", e.Error())
	assert.Equal(t, "Buy milk", e.Draft().Title)
}

func ptr[T any](v T) *T {
	return &v
}
