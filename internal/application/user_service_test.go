package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/rentify/pkg/apperror"
)

func TestTripsReservationsProperties(t *testing.T) {
	f := newFixture(t)
	host := f.register(t, "host@example.com")
	guest := f.register(t, "guest@example.com")
	l := f.createListing(t, host.ID, sampleListing())
	ctx := context.Background()

	_, err := f.booking.CreateBooking(ctx, BookingInput{ListingID: l.ID, GuestID: guest.ID, StartDate: "2024-01-01", EndDate: "2024-01-03"})
	require.NoError(t, err)

	trips, err := f.user.Trips(ctx, guest.ID, guest.ID)
	require.NoError(t, err)
	assert.Len(t, trips, 1)

	res, err := f.user.Reservations(ctx, host.ID, host.ID)
	require.NoError(t, err)
	assert.Len(t, res, 1)

	none, err := f.user.Trips(ctx, host.ID, host.ID)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.user.Trips(ctx, host.ID, guest.ID)
	assert.ErrorIs(t, err, apperror.ErrAuthorization)

	props, err := f.user.Properties(ctx, host.ID)
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, l.ID, props[0].ID)

	_, err = f.user.Properties(ctx, "64b7f0c2a1b2c3d4e5f60718")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestToggleWishlist(t *testing.T) {
	f := newFixture(t)
	host := f.register(t, "host@example.com")
	guest := f.register(t, "guest@example.com")
	l := f.createListing(t, host.ID, sampleListing())
	ctx := context.Background()

	wl, added, err := f.user.ToggleWishlist(ctx, guest.ID, guest.ID, l.ID)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{l.ID}, wl)

	wl, added, err = f.user.ToggleWishlist(ctx, guest.ID, guest.ID, l.ID)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Empty(t, wl)

	_, _, err = f.user.ToggleWishlist(ctx, host.ID, guest.ID, l.ID)
	assert.ErrorIs(t, err, apperror.ErrAuthorization)

	_, _, err = f.user.ToggleWishlist(ctx, guest.ID, guest.ID, "64b7f0c2a1b2c3d4e5f60718")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	u, err := f.user.GetProfile(ctx, guest.ID)
	require.NoError(t, err)
	assert.Empty(t, u.WishList)
}
