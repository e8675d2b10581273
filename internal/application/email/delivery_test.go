package email

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/email"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/salescrm/backend/internal/infrastructure/cache"
	"github.com/salescrm/backend/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type deliveryFixture struct {
	logs   *MockLogRepository
	sender *MockSender
	store  *MockIdempotencyStore
	events *MockPublisher
	d      *Deliverer
	entry  *email.Log
	job    DeliveryJob
}

func newDeliveryFixture(t *testing.T) *deliveryFixture {
	ws := uuid.New()
	entry, err := email.NewLog(ws, "ada@example.com", "Hello", "Body")
	require.NoError(t, err)
	f := &deliveryFixture{
		logs:   new(MockLogRepository),
		sender: new(MockSender),
		store:  new(MockIdempotencyStore),
		events: new(MockPublisher),
		entry:  entry,
		job:    DeliveryJob{EmailLogID: entry.ID, WorkspaceID: ws},
	}
	f.d = NewDeliverer(f.logs, f.sender, f.store, f.events, zap.NewNop())
	return f
}

func wsCtx(ws uuid.UUID) interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool {
		return logger.GetWorkspaceID(ctx) == ws.String()
	})
}

func TestDeliverer_Sends(t *testing.T) {
	f := newDeliveryFixture(t)
	ctx := context.Background()

	f.store.On("MarkProcessed", wsCtx(f.job.WorkspaceID), "email:"+f.entry.ID.String(), shared.DefaultIdempotencyTTL).Return(true, nil)
	f.logs.On("FindByIDForWorkspace", wsCtx(f.job.WorkspaceID), f.job.WorkspaceID, f.entry.ID).Return(f.entry, nil)
	f.sender.On("Send", mock.Anything, mock.MatchedBy(func(msg OutboundMessage) bool {
		return msg.To == "ada@example.com" && msg.Tags["email_log_id"] == f.entry.ID.String()
	})).Return("prov-1", nil)
	f.logs.On("Save", mock.Anything, f.entry).Return(nil)
	f.events.On("Publish", mock.Anything, mock.MatchedBy(func(evs []shared.DomainEvent) bool {
		return len(evs) == 1 && evs[0].EventType() == email.EventTypeEmailSent
	})).Return(nil)

	require.NoError(t, f.d.Deliver(ctx, f.job))
	assert.Equal(t, email.LogStatusSent, f.entry.Status)
	assert.Equal(t, "prov-1", f.entry.ProviderMessageID)
	assert.Empty(t, f.entry.GetDomainEvents())
	f.events.AssertExpectations(t)
}

func TestDeliverer_ProviderFailure(t *testing.T) {
	f := newDeliveryFixture(t)
	f.store.On("MarkProcessed", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	f.logs.On("FindByIDForWorkspace", mock.Anything, f.job.WorkspaceID, f.entry.ID).Return(f.entry, nil)
	f.sender.On("Send", mock.Anything, mock.Anything).Return("", errors.New("422 invalid from address"))
	f.logs.On("Save", mock.Anything, f.entry).Return(nil)

	require.NoError(t, f.d.Deliver(context.Background(), f.job))
	assert.Equal(t, email.LogStatusFailed, f.entry.Status)
	assert.Equal(t, "422 invalid from address", f.entry.Error)
	f.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestDeliverer_Duplicate(t *testing.T) {
	f := newDeliveryFixture(t)
	f.store.On("MarkProcessed", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	require.NoError(t, f.d.Deliver(context.Background(), f.job))
	f.logs.AssertNotCalled(t, "FindByIDForWorkspace", mock.Anything, mock.Anything, mock.Anything)
	f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestDeliverer_AlreadySent(t *testing.T) {
	f := newDeliveryFixture(t)
	require.NoError(t, f.entry.MarkSent("earlier"))
	f.store.On("MarkProcessed", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	f.logs.On("FindByIDForWorkspace", mock.Anything, f.job.WorkspaceID, f.entry.ID).Return(f.entry, nil)

	require.NoError(t, f.d.Deliver(context.Background(), f.job))
	f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestDeliverer_SaveErrorIsReturned(t *testing.T) {
	f := newDeliveryFixture(t)
	f.store.On("MarkProcessed", mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("redis down"))
	f.logs.On("FindByIDForWorkspace", mock.Anything, f.job.WorkspaceID, f.entry.ID).Return(f.entry, nil)
	f.sender.On("Send", mock.Anything, mock.Anything).Return("prov-2", nil)
	f.logs.On("Save", mock.Anything, f.entry).Return(errors.New("db down"))

	assert.Error(t, f.d.Deliver(context.Background(), f.job))
}

func TestDeliverer_MissingLog(t *testing.T) {
	f := newDeliveryFixture(t)
	f.store.On("MarkProcessed", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	f.logs.On("FindByIDForWorkspace", mock.Anything, f.job.WorkspaceID, f.entry.ID).Return(nil, shared.ErrNotFound)

	assert.NoError(t, f.d.Deliver(context.Background(), f.job))
}

func TestDeliverer_RedeliveryAfterTransientError(t *testing.T) {
	f := newDeliveryFixture(t)
	store := cache.NewMemoryIdempotencyStore()
	defer store.Close()
	f.d = NewDeliverer(f.logs, f.sender, store, nil, zap.NewNop())
	ctx := context.Background()

	f.logs.On("FindByIDForWorkspace", mock.Anything, f.job.WorkspaceID, f.entry.ID).Return(nil, errors.New("db timeout")).Once()
	f.logs.On("FindByIDForWorkspace", mock.Anything, f.job.WorkspaceID, f.entry.ID).Return(f.entry, nil).Once()
	f.sender.On("Send", mock.Anything, mock.Anything).Return("prov-3", nil).Once()
	f.logs.On("Save", mock.Anything, f.entry).Return(nil).Once()

	require.Error(t, f.d.Deliver(ctx, f.job))
	require.NoError(t, f.d.Deliver(ctx, f.job))

	assert.Equal(t, email.LogStatusSent, f.entry.Status)
	f.sender.AssertNumberOfCalls(t, "Send", 1)

	// a third delivery of the same job is a duplicate
	require.NoError(t, f.d.Deliver(ctx, f.job))
	f.sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestDeliverer_ReleasesKeyWhenSaveFails(t *testing.T) {
	f := newDeliveryFixture(t)
	key := "email:" + f.entry.ID.String()
	f.store.On("MarkProcessed", mock.Anything, key, mock.Anything).Return(true, nil)
	f.store.On("Release", mock.Anything, key).Return(nil)
	f.logs.On("FindByIDForWorkspace", mock.Anything, f.job.WorkspaceID, f.entry.ID).Return(f.entry, nil)
	f.sender.On("Send", mock.Anything, mock.Anything).Return("prov-4", nil)
	f.logs.On("Save", mock.Anything, f.entry).Return(errors.New("db down"))

	assert.Error(t, f.d.Deliver(context.Background(), f.job))
	f.store.AssertCalled(t, "Release", mock.Anything, key)
}

func TestDeliverer_MissingLogKeepsKey(t *testing.T) {
	f := newDeliveryFixture(t)
	f.store.On("MarkProcessed", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	f.logs.On("FindByIDForWorkspace", mock.Anything, f.job.WorkspaceID, f.entry.ID).Return(nil, shared.ErrNotFound)

	require.NoError(t, f.d.Deliver(context.Background(), f.job))
	f.store.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
}
