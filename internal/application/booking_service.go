package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rentify/internal/domain/entity"
	repo "github.com/oksasatya/rentify/internal/domain/repository"
	"github.com/oksasatya/rentify/internal/metrics"
	"github.com/oksasatya/rentify/pkg/apperror"
	"github.com/oksasatya/rentify/pkg/helpers"
	mailtpl "github.com/oksasatya/rentify/pkg/mailer/templates"
)

const (
	defaultLockTTL  = 5 * time.Second
	defaultLockWait = 3 * time.Second
)

type BookingService struct {
	Bookings repo.BookingRepository
	Listings repo.ListingRepository
	Users    repo.UserRepository // optional, used for confirmation emails
	Locker   repo.Locker
	Notify   repo.Notifier
	Logger   *logrus.Logger

	// LockTTL bounds how long a crashed holder keeps the listing locked.
	LockTTL time.Duration
	// LockWait bounds how long a request waits for the listing lock.
	LockWait time.Duration

	now func() time.Time
}

func NewBookingService(bookings repo.BookingRepository, listings repo.ListingRepository, users repo.UserRepository, locker repo.Locker, notifier repo.Notifier, logger *logrus.Logger, lockTTL time.Duration) *BookingService {
	if lockTTL <= 0 {
		lockTTL = defaultLockTTL
	}
	return &BookingService{
		Bookings: bookings,
		Listings: listings,
		Users:    users,
		Locker:   locker,
		Notify:   notifier,
		Logger:   loggerOrNop(logger),
		LockTTL:  lockTTL,
		LockWait: defaultLockWait,
		now:      time.Now,
	}
}

// BookingInput dates are calendar dates (YYYY-MM-DD) or RFC 3339 timestamps.
type BookingInput struct {
	ListingID string
	GuestID   string
	StartDate string
	EndDate   string
}

// Overlaps is the half-open interval test used for conflict detection.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return entity.Overlaps(aStart, aEnd, bStart, bEnd)
}

func parseRange(in BookingInput) (time.Time, time.Time, error) {
	start, err := helpers.ParseDate(in.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.Validation("invalid startDate").
			WithDetails(map[string]string{"startDate": "must be YYYY-MM-DD or RFC 3339"})
	}
	end, err := helpers.ParseDate(in.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.Validation("invalid endDate").
			WithDetails(map[string]string{"endDate": "must be YYYY-MM-DD or RFC 3339"})
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, apperror.Validation("startDate must be before endDate")
	}
	return start, end, nil
}

func lockKey(listingID string) string { return "booking:listing:" + listingID }

// CreateBooking reserves [start, end) on a listing unless it overlaps an existing booking.
// The per-listing lock makes the overlap check and the insert atomic across instances.
func (s *BookingService) CreateBooking(ctx context.Context, in BookingInput) (*entity.Booking, error) {
	start, end, err := parseRange(in)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.GuestID) == "" {
		return nil, apperror.Authentication("missing guest")
	}

	listing, err := s.Listings.GetByID(ctx, in.ListingID)
	if err != nil {
		return nil, storeErr(err, "Listing not found")
	}

	b, err := s.reserve(ctx, listing, in.GuestID, start, end)
	if err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()
	s.Logger.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"listing_id": b.ListingID,
		"guest_id":   b.CustomerID,
	}).Info("booking created")
	s.confirm(ctx, b, listing)
	return b, nil
}

// reserve runs the overlap check and the insert while holding the listing lock.
func (s *BookingService) reserve(ctx context.Context, listing *entity.Listing, guestID string, start, end time.Time) (*entity.Booking, error) {
	lockCtx, cancel := context.WithTimeout(ctx, s.LockWait)
	release, err := s.Locker.Acquire(lockCtx, lockKey(listing.ID), s.LockTTL)
	cancel()
	if err != nil {
		metrics.IncBookingConflict()
		s.Logger.WithError(err).WithField("listing_id", listing.ID).Warn("booking lock not acquired")
		return nil, apperror.Conflict("listing is being booked, retry")
	}
	defer release()

	// the lock expires after LockTTL; work must not outlive it
	work, stop := context.WithTimeout(ctx, s.LockTTL)
	defer stop()

	existing, err := s.Bookings.ListByListing(work, listing.ID)
	if err != nil {
		return nil, s.heldErr(work, err)
	}
	for i := range existing {
		if existing[i].OverlapsRange(start, end) {
			metrics.IncBookingConflict()
			return nil, apperror.Conflict("Listing is already booked for the selected dates").
				WithDetails(map[string]string{"conflictingBookingId": existing[i].ID})
		}
	}

	b := &entity.Booking{
		ListingID:  listing.ID,
		CustomerID: guestID,
		HostID:     listing.Creator,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: float64(helpers.Nights(start, end)) * listing.Price,
		Status:     entity.BookingActive,
		CreatedAt:  s.now().UTC(),
	}
	if err := work.Err(); err != nil {
		return nil, s.heldErr(work, err)
	}
	if err := s.Bookings.Create(work, b); err != nil {
		return nil, s.heldErr(work, err)
	}
	return b, nil
}

// heldErr maps a failure under the lock; running out of lock time is retryable.
func (s *BookingService) heldErr(work context.Context, err error) error {
	if errors.Is(work.Err(), context.DeadlineExceeded) {
		metrics.IncBookingConflict()
		s.Logger.WithError(err).Warn("booking lock expired before insert")
		return apperror.Conflict("listing is being booked, retry")
	}
	return apperror.Internal("Fail to create a new Booking!", err)
}

func (s *BookingService) confirm(ctx context.Context, b *entity.Booking, l *entity.Listing) {
	if s.Notify == nil || s.Users == nil {
		return
	}
	guest, err := s.Users.GetByID(ctx, b.CustomerID)
	if err != nil {
		s.Logger.WithError(err).WithField("guest_id", b.CustomerID).Warn("load guest for confirmation failed")
		return
	}
	notify(ctx, s.Notify, s.Logger, guest.Email, mailtpl.BookingConfirmed, mailtpl.ToMap(mailtpl.EmailData{
		Name:         guest.FirstName,
		Email:        guest.Email,
		BookingID:    b.ID,
		ListingID:    l.ID,
		ListingTitle: l.Title,
		StartDate:    b.StartDate.Format("2006-01-02"),
		EndDate:      b.EndDate.Format("2006-01-02"),
		Nights:       helpers.Nights(b.StartDate, b.EndDate),
		TotalPrice:   b.TotalPrice,
	}))
}

// Get returns a booking visible to its guest or host.
func (s *BookingService) Get(ctx context.Context, callerID, id string) (*entity.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Booking not found")
	}
	if callerID != b.CustomerID && callerID != b.HostID {
		return nil, apperror.Authorization("Only the guest or host can view this booking")
	}
	return b, nil
}
