package client

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
)

// ListClient owns the in-memory copy of the todo list. Writes go to the API
// first and are only visible after the following refresh succeeds.
//
// Failed calls are logged and leave the copy untouched. The error is still
// returned so a front end can show it; ignoring it is safe.
type ListClient struct {
	api API

	mu    sync.RWMutex
	items []Item
}

func NewListClient(api API) *ListClient {
	return &ListClient{api: api}
}

// Refresh replaces the local copy with the server list. The last successful
// fetch wins.
func (c *ListClient) Refresh(ctx context.Context) error {
	items, err := c.api.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to refresh todos")

		return fmt.Errorf("failed to refresh todos: %w", err)
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()

	return nil
}

// Items returns a copy of the local list in store order.
func (c *ListClient) Items() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.items)
}

// Visible yields the items whose completion matches completed. Every range
// over the sequence reads the list as it is at that moment.
func (c *ListClient) Visible(completed bool) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for _, item := range c.Items() {
			if item.Completed != completed {
				continue
			}

			if !yield(item) {
				return
			}
		}
	}
}

// Submit creates the draft when it has no id and replaces the stored todo
// otherwise, then refreshes.
func (c *ListClient) Submit(ctx context.Context, draft Draft) error {
	item := ToWire(draft)

	var err error
	if draft.IsNew() {
		_, err = c.api.Create(ctx, item)
	} else {
		_, err = c.api.Replace(ctx, item)
	}

	if err != nil {
		log.Error().Err(err).Str("id", draft.ID).Msg("failed to save todo")

		return fmt.Errorf("failed to save todo: %w", err)
	}

	return c.Refresh(ctx)
}

// Remove deletes the item then refreshes.
func (c *ListClient) Remove(ctx context.Context, item Item) error {
	if err := c.api.Delete(ctx, item.ID); err != nil {
		log.Error().Err(err).Str("id", item.ID).Msg("failed to delete todo")

		return fmt.Errorf("failed to delete todo: %w", err)
	}

	return c.Refresh(ctx)
}

// Toggle flips the completion flag of item then refreshes.
func (c *ListClient) Toggle(ctx context.Context, item Item) error {
	if _, err := c.api.SetCompleted(ctx, item.ID, !item.Completed); err != nil {
		log.Error().Err(err).Str("id", item.ID).Msg("failed to change todo completion")

		return fmt.Errorf("failed to change todo completion: %w", err)
	}

	return c.Refresh(ctx)
}
