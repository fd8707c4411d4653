// Package editor holds the single todo being edited and checks it before it
// is handed to a save callback.
package editor

import (
	"errors"
	"fmt"
	"strings"
	"todoapp/internal/client"
	todoModel "todoapp/internal/domains/todo/model"
	"todoapp/shared/constant"
	"todoapp/shared/failure"
)

type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	default:
		return "closed"
	}
}

var ErrNotOpen = errors.New("editor is not open")

// SaveFunc persists the working copy. Returning an error keeps the editor open.
type SaveFunc func(draft client.Draft) error

// Editor is a two state machine: Closed, or Open with a working copy and an
// optional validation message. Any field change clears the message.
type Editor struct {
	state State
	draft client.Draft
	err   string
}

func New() *Editor {
	return &Editor{}
}

// Open starts editing draft, replacing any working copy.
func (e *Editor) Open(draft client.Draft) {
	e.state = Open
	e.draft = draft
	e.err = ""
}

// OpenItem starts editing a stored todo.
func (e *Editor) OpenItem(item client.Item) {
	e.Open(client.FromWire(item))
}

// OpenBlank starts a new todo.
func (e *Editor) OpenBlank() {
	e.Open(client.Draft{})
}

func (e *Editor) State() State {
	return e.state
}

func (e *Editor) IsOpen() bool {
	return e.state == Open
}

// Draft returns the working copy. It is the zero draft while closed.
func (e *Editor) Draft() client.Draft {
	return e.draft
}

// Error returns the pending validation message, empty when there is none.
func (e *Editor) Error() string {
	return e.err
}

func (e *Editor) SetTitle(value string) {
	e.change(func(d *client.Draft) { d.Title = value })
}

func (e *Editor) SetDescription(value string) {
	e.change(func(d *client.Draft) { d.Description = value })
}

func (e *Editor) SetStartDate(value string) {
	e.change(func(d *client.Draft) { d.StartDate = value })
}

func (e *Editor) SetEndDate(value string) {
	e.change(func(d *client.Draft) { d.EndDate = value })
}

func (e *Editor) SetCompleted(value bool) {
	e.change(func(d *client.Draft) { d.Completed = value })
}

// ValidateDates checks the date range of the working copy and records the
// message on violation.
func (e *Editor) ValidateDates() bool {
	if client.CheckDateRange(e.draft.StartDate, e.draft.EndDate) {
		return true
	}

	e.err = todoModel.MessageEndBeforeStart

	return false
}

// Save validates the working copy and hands it to save. The editor closes
// only when save succeeds. A blank title or a date range violation never
// reaches save.
func (e *Editor) Save(save SaveFunc) error {
	if e.state != Open {
		return ErrNotOpen
	}

	if strings.TrimSpace(e.draft.Title) == "" {
		e.err = todoModel.MessageTitleRequired

		return failure.FieldError(todoModel.FieldTitle, e.err) //nolint:wrapcheck
	}

	if !e.ValidateDates() {
		return failure.FieldError(constant.NonFieldErrors, e.err) //nolint:wrapcheck
	}

	if err := save(e.draft); err != nil {
		e.err = err.Error()

		return fmt.Errorf("failed to save draft: %w", err)
	}

	e.close()

	return nil
}

// Cancel drops the working copy.
func (e *Editor) Cancel() {
	e.close()
}

func (e *Editor) change(apply func(d *client.Draft)) {
	if e.state != Open {
		return
	}

	apply(&e.draft)
	e.err = ""
}

func (e *Editor) close() {
	e.state = Closed
	e.draft = client.Draft{}
	e.err = ""
}
