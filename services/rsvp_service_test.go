package services

import (
	"context"
	"testing"
	"time"

	"gather.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type denyAllTransitions struct{}

func (denyAllTransitions) Allow(_, _ models.GuestStatus) bool { return false }

func newRSVPFixture(guard TransitionGuard) (*fakeGuestRepo, IRSVPService) {
	events := newFakeEventRepo(models.Event{
		BaseModel:     models.BaseModel{ID: testEventID},
		CreatorUserID: testHostID,
		Title:         "Garden Party",
		StartDateTime: time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC),
		Timezone:      "UTC",
		IsEnabled:     true,
	})
	guests := newFakeGuestRepo()
	return guests, NewRSVPServiceWith(guests, events, guard)
}

func TestSubmitRSVPByGuestID(t *testing.T) {
	guests, svc := newRSVPFixture(nil)
	seedGuest(guests, 1, "ana", models.GuestStatusInvited)

	note := "bringing dessert"
	result, err := svc.SubmitRSVP(context.Background(), RSVPRequest{
		GuestID:  1,
		Status:   "confirmed",
		Response: &note,
	})

	require.NoError(t, err)
	assert.Equal(t, models.GuestStatusConfirmed, result.Guest.Status)
	assert.Equal(t, note, result.Guest.Response)
	assert.Equal(t, "Garden Party", result.Event.Title)
	assert.Equal(t, models.GuestStatusConfirmed, guests.find(1).Status)
	assert.Equal(t, note, guests.find(1).Response)
}

func TestSubmitRSVPEmailTakesPriorityOverGuestID(t *testing.T) {
	guests, svc := newRSVPFixture(nil)
	seedGuest(guests, 1, "ana", models.GuestStatusInvited)
	seedGuest(guests, 2, "ben", models.GuestStatusInvited)

	// The supplied guest ID points at ana, but the email identifies ben.
	result, err := svc.SubmitRSVP(context.Background(), RSVPRequest{
		GuestID: 1,
		EventID: testEventID,
		Email:   "BEN@example.com",
		Status:  "DECLINED",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(2), result.Guest.ID)
	assert.Equal(t, models.GuestStatusDeclined, guests.find(2).Status)
	assert.Equal(t, models.GuestStatusInvited, guests.find(1).Status)
}

func TestSubmitRSVPFallsBackToGuestIDOnEmailMiss(t *testing.T) {
	guests, svc := newRSVPFixture(nil)
	seedGuest(guests, 1, "ana", models.GuestStatusInvited)

	result, err := svc.SubmitRSVP(context.Background(), RSVPRequest{
		GuestID: 1,
		EventID: testEventID,
		Email:   "nobody@example.com",
		Status:  "MAYBE",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(1), result.Guest.ID)
	assert.Equal(t, models.GuestStatusMaybe, result.Guest.Status)
}

func TestSubmitRSVPRejectsInvitedAndUnknownStatuses(t *testing.T) {
	guests, svc := newRSVPFixture(nil)
	seedGuest(guests, 1, "ana", models.GuestStatusPending)

	_, err := svc.SubmitRSVP(context.Background(), RSVPRequest{GuestID: 1, Status: "INVITED"})
	require.ErrorIs(t, err, ErrRSVPInvalidStatus)

	_, err = svc.SubmitRSVP(context.Background(), RSVPRequest{GuestID: 1, Status: "attending"})
	require.ErrorIs(t, err, ErrRSVPInvalidStatus)

	assert.Equal(t, models.GuestStatusPending, guests.find(1).Status)
}

func TestSubmitRSVPGuestEventMismatch(t *testing.T) {
	guests, svc := newRSVPFixture(nil)
	g := guests.add(models.Guest{BaseModel: models.BaseModel{ID: 1}, EventID: 77, Name: "ana", Status: models.GuestStatusInvited})

	_, err := svc.SubmitRSVP(context.Background(), RSVPRequest{
		GuestID: g.ID,
		EventID: testEventID,
		Status:  "CONFIRMED",
	})
	require.ErrorIs(t, err, ErrRSVPGuestNotFound)
}

func TestSubmitRSVPNilResponseKeepsStoredResponse(t *testing.T) {
	guests, svc := newRSVPFixture(nil)
	g := seedGuest(guests, 1, "ana", models.GuestStatusConfirmed)
	g.Response = "plus one"

	result, err := svc.SubmitRSVP(context.Background(), RSVPRequest{GuestID: 1, Status: "DECLINED"})

	require.NoError(t, err)
	assert.Equal(t, "plus one", result.Guest.Response)
	assert.Equal(t, "plus one", guests.find(1).Response)
}

func TestSubmitRSVPTransitionGuardDenies(t *testing.T) {
	guests, svc := newRSVPFixture(denyAllTransitions{})
	seedGuest(guests, 1, "ana", models.GuestStatusInvited)

	_, err := svc.SubmitRSVP(context.Background(), RSVPRequest{GuestID: 1, Status: "CONFIRMED"})
	require.ErrorIs(t, err, ErrRSVPTransitionDenied)
	assert.Equal(t, models.GuestStatusInvited, guests.find(1).Status)
}

func TestLookupGuest(t *testing.T) {
	guests, svc := newRSVPFixture(nil)
	seedGuest(guests, 1, "ana", models.GuestStatusInvited)

	result, err := svc.LookupGuest(context.Background(), testEventID, 0, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, uint(1), result.Guest.ID)
	assert.Equal(t, uint(testEventID), result.Event.ID)

	_, err = svc.LookupGuest(context.Background(), testEventID, 0, "stranger@example.com")
	require.ErrorIs(t, err, ErrRSVPGuestNotFound)
}

func TestCollectEmail(t *testing.T) {
	guests, svc := newRSVPFixture(nil)
	guests.add(models.Guest{BaseModel: models.BaseModel{ID: 1}, EventID: testEventID, Name: "ana", Phone: "+15550001111", Status: models.GuestStatusInvited})

	updated, err := svc.CollectEmail(context.Background(), 1, "  Ana@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", updated.Email)
	assert.Equal(t, "ana@example.com", guests.find(1).Email)

	// An address already on file is never overwritten.
	_, err = svc.CollectEmail(context.Background(), 1, "second@example.com")
	require.ErrorIs(t, err, ErrRSVPEmailAlreadySet)
	assert.Equal(t, "ana@example.com", guests.find(1).Email)
}

func TestCollectEmailRejectsBlank(t *testing.T) {
	guests, svc := newRSVPFixture(nil)
	guests.add(models.Guest{BaseModel: models.BaseModel{ID: 1}, EventID: testEventID, Name: "ana", Phone: "+15550001111"})

	_, err := svc.CollectEmail(context.Background(), 1, "   ")
	require.ErrorIs(t, err, ErrRSVPInvalidInput)
	assert.Empty(t, guests.find(1).Email)
}
