package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/rentify/internal/domain/entity"
	"github.com/oksasatya/rentify/internal/infrastructure/memory"
	"github.com/oksasatya/rentify/internal/infrastructure/redisstore"
	"github.com/oksasatya/rentify/pkg/apperror"
)

func TestCreateBookingOverlapRules(t *testing.T) {
	f := newFixture(t)
	host := f.register(t, "host@example.com")
	guest := f.register(t, "guest@example.com")
	l := f.createListing(t, host.ID, sampleListing())
	ctx := context.Background()

	book := func(start, end string) (*entity.Booking, error) {
		return f.booking.CreateBooking(ctx, BookingInput{ListingID: l.ID, GuestID: guest.ID, StartDate: start, EndDate: end})
	}

	b, err := book("2024-01-01", "2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, host.ID, b.HostID)
	assert.Equal(t, guest.ID, b.CustomerID)
	assert.Equal(t, entity.BookingActive, b.Status)
	assert.Equal(t, 400.0, b.TotalPrice)
	assert.Equal(t, time.UTC, b.StartDate.Location())

	_, err = book("2024-01-03", "2024-01-06")
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, err = book("2024-01-05", "2024-01-07")
	assert.NoError(t, err, "touching ranges do not overlap")

	_, err = book("2023-12-30T00:00:00Z", "2024-01-01T00:00:00Z")
	assert.NoError(t, err)

	assert.Contains(t, f.notifier.Templates(), "booking_confirmed")
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t)
	host := f.register(t, "host@example.com")
	l := f.createListing(t, host.ID, sampleListing())
	ctx := context.Background()

	cases := []struct {
		name string
		in   BookingInput
		want error
	}{
		{"start equals end", BookingInput{ListingID: l.ID, GuestID: host.ID, StartDate: "2024-01-05", EndDate: "2024-01-05"}, apperror.ErrValidation},
		{"end before start", BookingInput{ListingID: l.ID, GuestID: host.ID, StartDate: "2024-01-05", EndDate: "2024-01-01"}, apperror.ErrValidation},
		{"bad date", BookingInput{ListingID: l.ID, GuestID: host.ID, StartDate: "Jan 5", EndDate: "2024-01-07"}, apperror.ErrValidation},
		{"unknown listing", BookingInput{ListingID: "64b7f0c2a1b2c3d4e5f60718", GuestID: host.ID, StartDate: "2024-01-01", EndDate: "2024-01-02"}, apperror.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.booking.CreateBooking(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreateBookingConcurrentSameRange(t *testing.T) {
	f := newFixture(t)
	host := f.register(t, "host@example.com")
	l := f.createListing(t, host.ID, sampleListing())

	const n = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.booking.CreateBooking(context.Background(), BookingInput{
				ListingID: l.ID, GuestID: host.ID, StartDate: "2024-02-01", EndDate: "2024-02-03",
			})
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, apperror.ErrConflict)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
	all, err := f.bookings.ListByListing(context.Background(), l.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetBookingVisibleToParties(t *testing.T) {
	f := newFixture(t)
	host := f.register(t, "host@example.com")
	guest := f.register(t, "guest@example.com")
	stranger := f.register(t, "stranger@example.com")
	l := f.createListing(t, host.ID, sampleListing())
	ctx := context.Background()

	b, err := f.booking.CreateBooking(ctx, BookingInput{ListingID: l.ID, GuestID: guest.ID, StartDate: "2024-03-01", EndDate: "2024-03-02"})
	require.NoError(t, err)

	for _, caller := range []string{host.ID, guest.ID} {
		got, err := f.booking.Get(ctx, caller, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	}
	_, err = f.booking.Get(ctx, stranger.ID, b.ID)
	assert.ErrorIs(t, err, apperror.ErrAuthorization)
	_, err = f.booking.Get(ctx, host.ID, "64b7f0c2a1b2c3d4e5f60718")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

// Register twice, log in, then book three ranges on the same listing.
func TestMarketplaceFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.auth.Register(ctx, registerInput("a@example.com"), ClientInfo{})
	require.NoError(t, err)
	_, err = f.auth.Register(ctx, registerInput("a@example.com"), ClientInfo{})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, err = f.auth.Login(ctx, "a@example.com", "nope", ClientInfo{})
	assert.ErrorIs(t, err, apperror.ErrAuthentication)
	res, err := f.auth.Login(ctx, "a@example.com", "analytical", ClientInfo{})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	l := f.createListing(t, a.ID, sampleListing())
	in := BookingInput{ListingID: l.ID, GuestID: a.ID}

	in.StartDate, in.EndDate = "2024-01-01", "2024-01-05"
	_, err = f.booking.CreateBooking(ctx, in)
	require.NoError(t, err)

	in.StartDate, in.EndDate = "2024-01-03", "2024-01-06"
	_, err = f.booking.CreateBooking(ctx, in)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	in.StartDate, in.EndDate = "2024-01-05", "2024-01-07"
	_, err = f.booking.CreateBooking(ctx, in)
	assert.NoError(t, err)
}

func TestOverlapsDelegates(t *testing.T) {
	d := func(n int) time.Time { return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC) }
	assert.True(t, Overlaps(d(1), d(5), d(3), d(6)))
	assert.False(t, Overlaps(d(1), d(5), d(5), d(7)))
}

// slowBookings stalls ListByListing until ctx ends.
type slowBookings struct {
	*memory.BookingRepository
}

func (s slowBookings) ListByListing(ctx context.Context, listingID string) ([]entity.Booking, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestCreateBookingStopsWhenLockExpires(t *testing.T) {
	f := newFixture(t)
	host := f.register(t, "host@example.com")
	l := f.createListing(t, host.ID, sampleListing())

	store := slowBookings{f.bookings}
	svc := NewBookingService(store, f.listings, f.users, redisstore.NewLocalLocker(), nil, nil, 30*time.Millisecond)

	start := time.Now()
	_, err := svc.CreateBooking(context.Background(), BookingInput{
		ListingID: l.ID, GuestID: host.ID, StartDate: "2024-04-01", EndDate: "2024-04-02",
	})
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 0, f.bookings.Len())
}
