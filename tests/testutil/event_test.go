package testutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEventHandler(t *testing.T) {
	h := NewMockEventHandler("DealCreated")
	assert.Equal(t, []string{"DealCreated"}, h.EventTypes())

	ws, other := uuid.New(), uuid.New()
	require.NoError(t, h.Handle(context.Background(), NewTestEvent("DealCreated", ws)))
	require.NoError(t, h.Handle(context.Background(), NewTestEvent("DealCreated", other)))
	require.NoError(t, h.Handle(context.Background(), NewTestEvent("TaskCompleted", ws)))

	assert.Equal(t, 3, h.HandledCount())
	assert.Len(t, h.OfType("DealCreated", ws), 1)
	assert.Empty(t, h.OfType("DealDeleted", ws))

	h.SetError(errors.New("boom"))
	assert.Error(t, h.Handle(context.Background(), NewTestEvent("DealCreated", ws)))

	h.Reset()
	assert.Zero(t, h.HandledCount())
	assert.NoError(t, h.Handle(context.Background(), NewTestEvent("DealCreated", ws)))
}

func TestNewTestEventWithID(t *testing.T) {
	id, ws := uuid.New(), uuid.New()
	e := NewTestEventWithID(id, "NoteCreated", ws)

	assert.Equal(t, id, e.EventID())
	assert.Equal(t, "NoteCreated", e.EventType())
	assert.Equal(t, ws, e.WorkspaceID())
	assert.Equal(t, "TestAggregate", e.AggregateType())
	assert.NotEqual(t, uuid.Nil, e.AggregateID())
}

func TestWaitForEventCount(t *testing.T) {
	h := NewMockEventHandler()
	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = h.Handle(context.Background(), NewTestEvent("DealWon", uuid.New()))
	}()

	assert.True(t, WaitForEventCount(t, h, 1, time.Second))
	assert.False(t, WaitForEventCount(t, h, 2, 30*time.Millisecond))
}
