package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGuestStatus(t *testing.T) {
	status, err := ParseGuestStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, GuestStatusConfirmed, status)

	status, err = ParseGuestStatus("  Maybe ")
	require.NoError(t, err)
	assert.Equal(t, GuestStatusMaybe, status)

	_, err = ParseGuestStatus("WAITLISTED")
	assert.Error(t, err)

	_, err = ParseGuestStatus("")
	assert.Error(t, err)
}

func TestParseRSVPStatusExcludesInvited(t *testing.T) {
	status, err := ParseRSVPStatus("declined")
	require.NoError(t, err)
	assert.Equal(t, GuestStatusDeclined, status)

	_, err = ParseRSVPStatus("invited")
	assert.Error(t, err)
}

func TestGuestContact(t *testing.T) {
	g := Guest{Email: "a@b.com", Phone: "+15550001111"}
	assert.Equal(t, "a@b.com / +15550001111", g.Contact())

	g = Guest{Phone: "+15550001111"}
	assert.Equal(t, "+15550001111", g.Contact())

	g = Guest{}
	assert.Equal(t, "", g.Contact())
}

func TestAwaitingFirstInvite(t *testing.T) {
	assert.True(t, (&Guest{Status: ""}).AwaitingFirstInvite())
	assert.True(t, (&Guest{Status: GuestStatusPending}).AwaitingFirstInvite())
	assert.False(t, (&Guest{Status: GuestStatusInvited}).AwaitingFirstInvite())
	assert.False(t, (&Guest{Status: GuestStatusConfirmed}).AwaitingFirstInvite())
}
