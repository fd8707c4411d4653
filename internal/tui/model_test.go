package tui_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"todoapp/internal/client"
	"todoapp/internal/client/mocks"
	"todoapp/internal/client/theme"
	"todoapp/internal/editor"
	"todoapp/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

type harness struct {
	t     *testing.T
	api   *mocks.MockAPI
	model tea.Model
	path  string
}

func newHarness(t *testing.T, items []client.Item) *harness {
	t.Helper()

	api := mocks.NewMockAPI(gomock.NewController(t))
	path := filepath.Join(t.TempDir(), "prefs.toml")
	store := theme.NewStore(path, func() bool { return true })

	h := &harness{
		t:     t,
		api:   api,
		model: tui.New(context.Background(), client.NewListClient(api), editor.New(), store),
		path:  path,
	}

	api.EXPECT().List(gomock.Any()).Return(items, nil)
	h.exec(h.model.Init())

	return h
}

// send delivers msgs and returns the command of the last one.
func (h *harness) send(msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	for _, msg := range msgs {
		h.model, cmd = h.model.Update(msg)
	}

	return cmd
}

// exec runs cmd synchronously and feeds its message back.
func (h *harness) exec(cmd tea.Cmd) {
	h.t.Helper()

	require.NotNil(h.t, cmd)
	h.model, _ = h.model.Update(cmd())
}

func (h *harness) status() (string, bool) {
	return h.model.(tui.Model).Status()
}

func TestModel_ListsIncompleteFirst(t *testing.T) {
	h := newHarness(t, []client.Item{
		{ID: "1", Title: "Buy milk"},
		{ID: "2", Title: "Write report", Completed: true, StartDate: ptr("2025-01-05"), EndDate: ptr("2025-01-10")},
	})

	view := h.model.View()
	assert.Contains(t, view, "Buy milk")
	assert.NotContains(t, view, "Write report")
	assert.Contains(t, view, "Incomplete (1)")

	h.send(keyTab)

	view = h.model.View()
	assert.Contains(t, view, "Write report")
	assert.Contains(t, view, "2025-01-05 → 2025-01-10")
	assert.NotContains(t, view, "Buy milk")
}

func TestModel_RejectsDateRangeWithoutNetwork(t *testing.T) {
	h := newHarness(t, nil)

	h.send(runes("a"), runes("Buy milk"), keyTab, keyTab, runes("2025-01-10"), keyTab, runes("2025-01-05"))
	cmd := h.send(keyEnter)

	assert.Nil(t, cmd)
	assert.Contains(t, h.model.View(), "End date cannot be before start date.")

	h.send(keyEsc)
	assert.NotContains(t, h.model.View(), "End date cannot be before start date.")
}

func TestModel_RejectsBlankTitleWithoutNetwork(t *testing.T) {
	h := newHarness(t, nil)

	h.send(runes("a"), runes("   "))
	cmd := h.send(keyEnter)

	assert.Nil(t, cmd)
	assert.Contains(t, h.model.View(), "title may not be blank")
	assert.Contains(t, h.model.View(), "New todo")
}

func TestModel_CreatesTodo(t *testing.T) {
	h := newHarness(t, nil)
	created := client.Item{ID: "9", Title: "Write report", StartDate: ptr("2025-01-05"), EndDate: ptr("2025-01-10")}

	gomock.InOrder(
		h.api.EXPECT().Create(gomock.Any(), client.Item{Title: "Write report", StartDate: ptr("2025-01-05"), EndDate: ptr("2025-01-10")}).Return(created, nil),
		h.api.EXPECT().List(gomock.Any()).Return([]client.Item{created}, nil),
	)

	h.send(runes("a"), runes("Write report"), keyTab, keyTab, runes("2025-01-05"), keyTab, runes("2025-01-10"))
	h.exec(h.send(keyEnter))

	status, failed := h.status()
	assert.False(t, failed)
	assert.Equal(t, `Saved "Write report"`, status)
	assert.Contains(t, h.model.View(), "Write report")
}

func TestModel_FailedSaveReopensForm(t *testing.T) {
	h := newHarness(t, nil)

	h.api.EXPECT().Create(gomock.Any(), gomock.Any()).Return(client.Item{}, errors.New("connection refused"))

	h.send(runes("a"), runes("Buy milk"))
	h.exec(h.send(keyEnter))

	status, failed := h.status()
	assert.True(t, failed)
	assert.Contains(t, status, "connection refused")
	assert.Contains(t, h.model.View(), "New todo")
}

func TestModel_ToggleAndDelete(t *testing.T) {
	item := client.Item{ID: "1", Title: "Buy milk"}
	h := newHarness(t, []client.Item{item})

	gomock.InOrder(
		h.api.EXPECT().SetCompleted(gomock.Any(), "1", true).Return(client.Item{ID: "1", Completed: true}, nil),
		h.api.EXPECT().List(gomock.Any()).Return([]client.Item{item}, nil),
		h.api.EXPECT().Delete(gomock.Any(), "1").Return(errors.New("todo not found")),
	)

	h.exec(h.send(keySpace))

	status, failed := h.status()
	assert.False(t, failed)
	assert.Equal(t, "Todo updated", status)

	h.exec(h.send(runes("d")))

	status, failed = h.status()
	assert.True(t, failed)
	assert.Equal(t, "Could not delete: failed to delete todo: todo not found", status)
}

func TestModel_ThemeToggleIsStored(t *testing.T) {
	h := newHarness(t, nil)

	assert.Equal(t, theme.Dark, h.model.(tui.Model).Theme())

	h.send(runes("t"))

	assert.Equal(t, theme.Light, h.model.(tui.Model).Theme())

	raw, err := os.ReadFile(h.path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `theme = "light"`)
}

func ptr[T any](v T) *T {
	return &v
}
