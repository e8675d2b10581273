package engagement

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/engagement"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_LogActivity(t *testing.T) {
	activities := new(MockActivityRepository)
	svc := NewActivityService(activities)
	ctx := context.Background()
	ws, user, deal := uuid.New(), uuid.New(), uuid.New()
	at := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

	activities.On("Save", ctx, mock.AnythingOfType("*engagement.Activity")).Return(nil)

	resp, err := svc.LogActivity(ctx, ws, LogActivityRequest{
		Type:        "call",
		Subject:     "Discovery call",
		Description: "30 min",
		OccurredAt:  &at,
		LinkInput:   LinkInput{DealID: &deal},
		UserID:      &user,
	})

	require.NoError(t, err)
	assert.Equal(t, "call", resp.Type)
	assert.Equal(t, at, resp.OccurredAt)
	assert.Equal(t, &deal, resp.DealID)
	assert.Equal(t, &user, resp.UserID)
}

func TestActivityService_LogActivity_DefaultsToNow(t *testing.T) {
	activities := new(MockActivityRepository)
	svc := NewActivityService(activities)
	ctx := context.Background()

	activities.On("Save", ctx, mock.Anything).Return(nil)

	before := time.Now()
	resp, err := svc.LogActivity(ctx, uuid.New(), LogActivityRequest{Type: "meeting", Subject: "Demo"})

	require.NoError(t, err)
	assert.False(t, resp.OccurredAt.Before(before))
}

func TestActivityService_LogActivity_InvalidType(t *testing.T) {
	activities := new(MockActivityRepository)
	svc := NewActivityService(activities)

	_, err := svc.LogActivity(context.Background(), uuid.New(), LogActivityRequest{Type: "fax", Subject: "x"})

	require.Error(t, err)
	activities.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestActivityService_ListActivities(t *testing.T) {
	activities := new(MockActivityRepository)
	svc := NewActivityService(activities)
	ctx := context.Background()
	ws := uuid.New()
	a, err := engagement.NewActivity(ws, engagement.ActivityEmail, "Intro", time.Time{})
	require.NoError(t, err)

	byType := mock.MatchedBy(func(f shared.Filter) bool { return f.Filters["type"] == "email" })
	activities.On("FindAllForWorkspace", ctx, ws, byType).Return([]engagement.Activity{*a}, nil)
	activities.On("CountForWorkspace", ctx, ws, byType).Return(int64(7), nil)

	page, err := svc.ListActivities(ctx, ws, ActivityListFilter{Type: "email", PageSize: 5})

	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(7), page.Total)
	assert.Equal(t, 2, page.TotalPages)
}
