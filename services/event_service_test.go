package services

import (
	"context"
	"testing"
	"time"

	"gather.link/models"
	"gather.link/pkg/queryparams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventFixture() (*fakeEventRepo, IEventService) {
	users := newFakeUserRepo(
		models.User{BaseModel: models.BaseModel{ID: testHostID}, Name: "Host", Email: "host@example.com", IsActive: true},
		models.User{BaseModel: models.BaseModel{ID: 2}, Name: "Other", Email: "other@example.com", IsActive: true},
		models.User{BaseModel: models.BaseModel{ID: 3}, Name: "System", Email: "system@example.com", IsActive: true, IsSystem: true},
	)
	events := newFakeEventRepo()
	return events, NewEventServiceWith(events, NewUserServiceWith(users))
}

func TestCreateEventValidatesAndStamps(t *testing.T) {
	_, svc := newEventFixture()

	_, err := svc.CreateEvent(context.Background(), testHostID, models.Event{Title: "No time"})
	require.ErrorIs(t, err, ErrEventInvalidInput)

	created, err := svc.CreateEvent(context.Background(), testHostID, models.Event{
		Title:         "Garden Party",
		StartDateTime: time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, testHostID, created.CreatorUserID)
	assert.Equal(t, "UTC", created.Timezone)
	assert.True(t, created.IsEnabled)
}

func TestGetEventByIDAuthorization(t *testing.T) {
	events, svc := newEventFixture()
	require.NoError(t, events.Create(context.Background(), &models.Event{
		BaseModel:     models.BaseModel{ID: testEventID},
		CreatorUserID: testHostID,
		Title:         "Garden Party",
		StartDateTime: time.Now(),
		IsEnabled:     true,
	}))

	_, err := svc.GetEventByID(context.Background(), testEventID, testHostID)
	assert.NoError(t, err)

	_, err = svc.GetEventByID(context.Background(), testEventID, 2)
	assert.ErrorIs(t, err, ErrEventForbidden)

	// System accounts may manage any event.
	_, err = svc.GetEventByID(context.Background(), testEventID, 3)
	assert.NoError(t, err)

	_, err = svc.GetEventByID(context.Background(), 999, testHostID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestGetPublicEventByIDHidesDisabled(t *testing.T) {
	events, svc := newEventFixture()
	require.NoError(t, events.Create(context.Background(), &models.Event{
		BaseModel:     models.BaseModel{ID: testEventID},
		CreatorUserID: testHostID,
		Title:         "Garden Party",
		StartDateTime: time.Now(),
		IsEnabled:     false,
	}))

	_, err := svc.GetPublicEventByID(context.Background(), testEventID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestGetEventsForUserScopesByOwnership(t *testing.T) {
	events, svc := newEventFixture()
	for i, creator := range []uint{testHostID, testHostID, 2} {
		require.NoError(t, events.Create(context.Background(), &models.Event{
			BaseModel:     models.BaseModel{ID: uint(i + 1)},
			CreatorUserID: creator,
			Title:         "Event",
			StartDateTime: time.Now(),
		}))
	}

	result, err := svc.GetEventsForUser(context.Background(), testHostID, queryparams.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Meta.TotalItems)

	result, err = svc.GetEventsForUser(context.Background(), 3, queryparams.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Meta.TotalItems)
}

func TestUpdateEventKeepsImageKeyWhenOmitted(t *testing.T) {
	events, svc := newEventFixture()
	require.NoError(t, events.Create(context.Background(), &models.Event{
		BaseModel:     models.BaseModel{ID: testEventID},
		CreatorUserID: testHostID,
		Title:         "Garden Party",
		StartDateTime: time.Now(),
		ImageKey:      "event-images/abc.jpg",
		IsEnabled:     true,
	}))

	updated, err := svc.UpdateEvent(context.Background(), testEventID, testHostID, models.Event{
		Title:         "Garden Party v2",
		StartDateTime: time.Date(2026, 7, 1, 18, 0, 0, 0, time.UTC),
		IsEnabled:     true,
	})

	require.NoError(t, err)
	assert.Equal(t, "Garden Party v2", updated.Title)
	assert.Equal(t, "event-images/abc.jpg", updated.ImageKey)
}
