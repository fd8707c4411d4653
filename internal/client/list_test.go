package client_test

import (
	"context"
	"errors"
	"slices"
	"testing"
	"todoapp/internal/client"
	"todoapp/internal/client/mocks"
	"todoapp/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var stored = []client.Item{
	{ID: "1", Title: "Buy milk"},
	{ID: "2", Title: "Write report", Completed: true, StartDate: ptr("2025-01-05"), EndDate: ptr("2025-01-10")},
	{ID: "3", Title: "Call mom"},
}

func newList(t *testing.T) (*client.ListClient, *mocks.MockAPI) {
	t.Helper()

	api := mocks.NewMockAPI(gomock.NewController(t))

	return client.NewListClient(api), api
}

func TestListClient_Refresh(t *testing.T) {
	list, api := newList(t)
	ctx := context.Background()

	api.EXPECT().List(ctx).Return(stored, nil).Times(2)

	require.NoError(t, list.Refresh(ctx))
	first := slices.Collect(list.Visible(false))

	require.NoError(t, list.Refresh(ctx))
	assert.Equal(t, first, slices.Collect(list.Visible(false)))

	t.Run("failure keeps the previous list", func(t *testing.T) {
		api.EXPECT().List(ctx).Return(nil, errors.New("connection refused"))

		assert.Error(t, list.Refresh(ctx))
		assert.Equal(t, stored, list.Items())
	})
}

func TestListClient_Visible(t *testing.T) {
	list, api := newList(t)
	api.EXPECT().List(gomock.Any()).Return(stored, nil)
	require.NoError(t, list.Refresh(context.Background()))

	incomplete := slices.Collect(list.Visible(false))
	complete := slices.Collect(list.Visible(true))

	assert.Equal(t, []client.Item{stored[0], stored[2]}, incomplete)
	assert.Equal(t, []client.Item{stored[1]}, complete)
	assert.ElementsMatch(t, stored, append(incomplete, complete...))

	t.Run("restartable and stops early", func(t *testing.T) {
		seq := list.Visible(false)

		for item := range seq {
			assert.Equal(t, "1", item.ID)

			break
		}

		assert.Len(t, slices.Collect(seq), 2)
	})
}

func TestListClient_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("new draft is created then refreshed", func(t *testing.T) {
		list, api := newList(t)

		gomock.InOrder(
			api.EXPECT().Create(ctx, client.Item{Title: "Buy milk"}).Return(client.Item{ID: "9", Title: "Buy milk"}, nil),
			api.EXPECT().List(ctx).Return([]client.Item{{ID: "9", Title: "Buy milk"}}, nil),
		)

		require.NoError(t, list.Submit(ctx, client.Draft{Title: "Buy milk", StartDate: "", EndDate: ""}))
		assert.Len(t, list.Items(), 1)
	})

	t.Run("existing draft is replaced", func(t *testing.T) {
		list, api := newList(t)
		want := client.Item{ID: "2", Title: "Write report", StartDate: ptr("2025-01-05")}

		gomock.InOrder(
			api.EXPECT().Replace(ctx, want).Return(want, nil),
			api.EXPECT().List(ctx).Return([]client.Item{want}, nil),
		)

		require.NoError(t, list.Submit(ctx, client.Draft{ID: "2", Title: "Write report", StartDate: "2025-01-05"}))
	})

	t.Run("rejected save does not refresh", func(t *testing.T) {
		list, api := newList(t)

		api.EXPECT().Create(ctx, gomock.Any()).Return(client.Item{}, failure.FieldError("title", "title is required"))

		err := list.Submit(ctx, client.Draft{})

		assert.Equal(t, []string{"title is required"}, failure.GetFields(err)["title"])
		assert.Empty(t, list.Items())
	})
}

func TestListClient_RemoveAndToggle(t *testing.T) {
	ctx := context.Background()
	list, api := newList(t)

	api.EXPECT().List(ctx).Return(stored, nil)
	require.NoError(t, list.Refresh(ctx))

	t.Run("absent todo", func(t *testing.T) {
		api.EXPECT().Delete(ctx, "999").Return(failure.NotFound("todo not found"))

		err := list.Remove(ctx, client.Item{ID: "999"})

		assert.True(t, failure.IsNotFound(err))
		assert.Equal(t, stored, list.Items())
	})

	t.Run("remove refreshes", func(t *testing.T) {
		gomock.InOrder(
			api.EXPECT().Delete(ctx, "3").Return(nil),
			api.EXPECT().List(ctx).Return(stored[:2], nil),
		)

		require.NoError(t, list.Remove(ctx, stored[2]))
		assert.Len(t, list.Items(), 2)
	})

	t.Run("toggle flips completion", func(t *testing.T) {
		gomock.InOrder(
			api.EXPECT().SetCompleted(ctx, "2", false).Return(client.Item{ID: "2"}, nil),
			api.EXPECT().List(ctx).Return(stored[:2], nil),
		)

		require.NoError(t, list.Toggle(ctx, stored[1]))
	})
}
