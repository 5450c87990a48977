package services

import (
	"context"
	"testing"
	"time"

	"gather.link/models"
	"gather.link/repositories"
	"gather.link/services/delivery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testHostID  = uint(1)
	testEventID = uint(10)
)

var testSentAt = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newDispatchFixture() (*fakeGuestRepo, *fakeProvider, IDispatchService) {
	users := newFakeUserRepo(
		models.User{BaseModel: models.BaseModel{ID: testHostID}, Name: "Host", Email: "host@example.com", IsActive: true},
		models.User{BaseModel: models.BaseModel{ID: 2}, Name: "Other", Email: "other@example.com", IsActive: true},
	)
	events := newFakeEventRepo(models.Event{
		BaseModel:     models.BaseModel{ID: testEventID},
		CreatorUserID: testHostID,
		Title:         "Garden Party",
		StartDateTime: time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC),
		Timezone:      "UTC",
		IsEnabled:     true,
	})
	guests := newFakeGuestRepo()
	provider := &fakeProvider{}
	eventService := NewEventServiceWith(events, NewUserServiceWith(users))
	svc := NewDispatchServiceWith(eventService, guests, provider, "https://gather.link/", func() time.Time { return testSentAt })
	return guests, provider, svc
}

func seedGuest(repo *fakeGuestRepo, id uint, name string, status models.GuestStatus) *models.Guest {
	return repo.add(models.Guest{
		BaseModel: models.BaseModel{ID: id},
		EventID:   testEventID,
		Name:      name,
		Email:     name + "@example.com",
		Status:    status,
	})
}

func TestSendInvitationsRejectsUnknownType(t *testing.T) {
	guests, provider, svc := newDispatchFixture()
	seedGuest(guests, 1, "ana", models.GuestStatusPending)

	_, err := svc.SendInvitations(context.Background(), testHostID, DispatchRequest{
		EventID: testEventID,
		Type:    "blast",
	})

	require.ErrorIs(t, err, ErrDispatchInvalidParams)
	assert.Empty(t, provider.calls)
}

func TestSendInvitationsRejectsUnknownChannel(t *testing.T) {
	guests, provider, svc := newDispatchFixture()
	seedGuest(guests, 1, "ana", models.GuestStatusPending)

	_, err := svc.SendInvitations(context.Background(), testHostID, DispatchRequest{
		EventID:  testEventID,
		Type:     "invitation",
		Channels: []string{"fax"},
	})

	require.ErrorIs(t, err, ErrDispatchInvalidParams)
	assert.Empty(t, provider.calls)
}

func TestSendInvitationsExplicitIDsWinOverType(t *testing.T) {
	guests, _, svc := newDispatchFixture()
	seedGuest(guests, 1, "ana", models.GuestStatusPending)
	seedGuest(guests, 2, "ben", models.GuestStatusConfirmed)

	// The type is garbage, but an explicit list makes it irrelevant.
	outcome, err := svc.SendInvitations(context.Background(), testHostID, DispatchRequest{
		EventID:  testEventID,
		Type:     "blast",
		GuestIDs: []uint{2},
	})

	require.NoError(t, err)
	require.Len(t, outcome.Results, 1)
	assert.Equal(t, uint(2), outcome.Results[0].GuestID)
	assert.Equal(t, []uint{2}, guests.lastSelection.GuestIDs)
}

func TestSendInvitationsSelectionByType(t *testing.T) {
	guests, _, svc := newDispatchFixture()
	seedGuest(guests, 1, "ana", models.GuestStatusPending)
	seedGuest(guests, 2, "ben", "")
	seedGuest(guests, 3, "cem", models.GuestStatusInvited)
	seedGuest(guests, 4, "dara", models.GuestStatusConfirmed)

	outcome, err := svc.SendInvitations(context.Background(), testHostID, DispatchRequest{
		EventID: testEventID,
		Type:    "invitation",
	})
	require.NoError(t, err)
	require.Equal(t, 2, outcome.Summary.Total)
	assert.Equal(t, uint(1), outcome.Results[0].GuestID)
	assert.Equal(t, uint(2), outcome.Results[1].GuestID)

	// Reset so the first round's status flips do not leak into the second.
	guests, _, svc = newDispatchFixture()
	seedGuest(guests, 1, "ana", models.GuestStatusPending)
	seedGuest(guests, 2, "ben", "")
	seedGuest(guests, 3, "cem", models.GuestStatusInvited)
	seedGuest(guests, 4, "dara", models.GuestStatusConfirmed)

	outcome, err = svc.SendInvitations(context.Background(), testHostID, DispatchRequest{
		EventID: testEventID,
		Type:    "reminder",
	})
	require.NoError(t, err)
	require.Equal(t, 3, outcome.Summary.Total)
	assert.Equal(t, uint(1), outcome.Results[0].GuestID)
	assert.Equal(t, uint(2), outcome.Results[1].GuestID)
	assert.Equal(t, uint(3), outcome.Results[2].GuestID)
}

func TestSendInvitationsEmptySelectionShortCircuits(t *testing.T) {
	guests, provider, svc := newDispatchFixture()
	seedGuest(guests, 1, "ana", models.GuestStatusConfirmed)
	seedGuest(guests, 2, "ben", models.GuestStatusDeclined)

	outcome, err := svc.SendInvitations(context.Background(), testHostID, DispatchRequest{
		EventID: testEventID,
		Type:    "invitation",
	})

	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Empty(t, outcome.Results)
	assert.Equal(t, DispatchSummary{}, outcome.Summary)
	assert.Empty(t, provider.calls, "provider must not be touched for an empty selection")
}

func TestSendInvitationsFirstSendFlipsStatus(t *testing.T) {
	guests, _, svc := newDispatchFixture()
	seedGuest(guests, 1, "ana", models.GuestStatusPending)

	outcome, err := svc.SendInvitations(context.Background(), testHostID, DispatchRequest{
		EventID: testEventID,
		Type:    "invitation",
	})

	require.NoError(t, err)
	require.Equal(t, 1, outcome.Summary.Successful)
	assert.Equal(t, "https://gather.link/invite/10/1", outcome.Results[0].InvitationURL)

	g := guests.find(1)
	assert.Equal(t, models.GuestStatusInvited, g.Status)
	require.NotNil(t, g.InvitedAt)
	assert.Equal(t, testSentAt, *g.InvitedAt)
}

func TestSendInvitationsReminderOnlyRefreshesInvitedAt(t *testing.T) {
	guests, _, svc := newDispatchFixture()
	earlier := testSentAt.Add(-48 * time.Hour)
	invited := seedGuest(guests, 1, "ana", models.GuestStatusInvited)
	invited.InvitedAt = &earlier
	confirmed := seedGuest(guests, 2, "ben", models.GuestStatusConfirmed)
	confirmed.InvitedAt = &earlier

	_, err := svc.SendInvitations(context.Background(), testHostID, DispatchRequest{
		EventID:  testEventID,
		GuestIDs: []uint{1, 2},
	})
	require.NoError(t, err)

	// Non-PENDING statuses survive the send; only the timestamp moves.
	assert.Equal(t, models.GuestStatusInvited, guests.find(1).Status)
	assert.Equal(t, testSentAt, *guests.find(1).InvitedAt)
	assert.Equal(t, models.GuestStatusConfirmed, guests.find(2).Status)
	assert.Equal(t, testSentAt, *guests.find(2).InvitedAt)
}

func TestSendInvitationsPanicInOneIterationIsIsolated(t *testing.T) {
	guests, provider, svc := newDispatchFixture()
	seedGuest(guests, 1, "ana", models.GuestStatusPending)
	seedGuest(guests, 2, "ben", models.GuestStatusPending)
	seedGuest(guests, 3, "cem", models.GuestStatusPending)
	provider.SendFn = func(msg delivery.Message, _ []models.Channel) delivery.Result {
		if msg.GuestName == "ben" {
			panic("corrupt guest record")
		}
		return delivery.Result{Success: true, Email: &delivery.ChannelResult{Sent: true}}
	}

	outcome, err := svc.SendInvitations(context.Background(), testHostID, DispatchRequest{
		EventID: testEventID,
		Type:    "invitation",
	})

	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, DispatchSummary{Total: 3, Successful: 2, Failed: 1}, outcome.Summary)
	assert.False(t, outcome.Results[1].Success)
	assert.Contains(t, outcome.Results[1].Error, "corrupt guest record")

	assert.Equal(t, models.GuestStatusInvited, guests.find(1).Status)
	assert.Equal(t, models.GuestStatusPending, guests.find(2).Status)
	assert.Equal(t, models.GuestStatusInvited, guests.find(3).Status)
}

func TestSendInvitationsFailedSendLeavesGuestEligible(t *testing.T) {
	guests, provider, svc := newDispatchFixture()
	seedGuest(guests, 1, "ana", models.GuestStatusPending)
	provider.SendFn = func(delivery.Message, []models.Channel) delivery.Result {
		return delivery.Result{Success: false, Email: &delivery.ChannelResult{Sent: false, Error: "mailbox full"}}
	}

	outcome, err := svc.SendInvitations(context.Background(), testHostID, DispatchRequest{
		EventID: testEventID,
		Type:    "invitation",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Summary.Failed)
	assert.Equal(t, models.GuestStatusPending, guests.find(1).Status)
	assert.Nil(t, guests.find(1).InvitedAt)

	// The failed guest is picked up again on the next run.
	provider.SendFn = nil
	outcome, err = svc.SendInvitations(context.Background(), testHostID, DispatchRequest{
		EventID: testEventID,
		Type:    "invitation",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Summary.Successful)
	assert.Equal(t, models.GuestStatusInvited, guests.find(1).Status)
}

func TestSendInvitationsDeliveredButUpdateFailed(t *testing.T) {
	guests, _, svc := newDispatchFixture()
	seedGuest(guests, 1, "ana", models.GuestStatusPending)
	guests.afterSendErr = repositories.ErrNotFound

	outcome, err := svc.SendInvitations(context.Background(), testHostID, DispatchRequest{
		EventID: testEventID,
		Type:    "invitation",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Summary.Failed)
	assert.Contains(t, outcome.Results[0].Error, "delivered but status update failed")
}

func TestSendInvitationsAuthorization(t *testing.T) {
	guests, provider, svc := newDispatchFixture()
	seedGuest(guests, 1, "ana", models.GuestStatusPending)

	_, err := svc.SendInvitations(context.Background(), 2, DispatchRequest{
		EventID: testEventID,
		Type:    "invitation",
	})
	require.ErrorIs(t, err, ErrEventForbidden)

	_, err = svc.SendInvitations(context.Background(), testHostID, DispatchRequest{
		EventID: 999,
		Type:    "invitation",
	})
	require.ErrorIs(t, err, ErrEventNotFound)
	assert.Empty(t, provider.calls)
}

func TestSendInvitationsDisabledEvent(t *testing.T) {
	users := newFakeUserRepo(models.User{BaseModel: models.BaseModel{ID: testHostID}, Name: "Host", Email: "host@example.com", IsActive: true})
	events := newFakeEventRepo(models.Event{
		BaseModel:     models.BaseModel{ID: testEventID},
		CreatorUserID: testHostID,
		Title:         "Cancelled Party",
		StartDateTime: time.Now(),
		IsEnabled:     false,
	})
	guests := newFakeGuestRepo()
	provider := &fakeProvider{}
	svc := NewDispatchServiceWith(NewEventServiceWith(events, NewUserServiceWith(users)), guests, provider, "https://gather.link", nil)
	seedGuest(guests, 1, "ana", models.GuestStatusPending)

	_, err := svc.SendInvitations(context.Background(), testHostID, DispatchRequest{
		EventID: testEventID,
		Type:    "invitation",
	})
	require.ErrorIs(t, err, ErrEventNotFound)
	assert.Empty(t, provider.calls)
}
