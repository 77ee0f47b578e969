package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/rentify/internal/domain/entity"
	"github.com/oksasatya/rentify/internal/domain/repository"
)

type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]entity.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{bookings: map[string]entity.Booking{}}
}

func (r *BookingRepository) Create(_ context.Context, b *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == "" {
		b.ID = newID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	r.bookings[b.ID] = *b
	return nil
}

func (r *BookingRepository) GetByID(_ context.Context, id string) (*entity.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *BookingRepository) filter(keep func(entity.Booking) bool) []entity.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Booking, 0)
	for _, b := range r.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out
}

func (r *BookingRepository) ListByListing(_ context.Context, listingID string) ([]entity.Booking, error) {
	return r.filter(func(b entity.Booking) bool { return b.ListingID == listingID }), nil
}

func (r *BookingRepository) ListByCustomer(_ context.Context, customerID string) ([]entity.Booking, error) {
	return r.filter(func(b entity.Booking) bool { return b.CustomerID == customerID }), nil
}

func (r *BookingRepository) ListByHost(_ context.Context, hostID string) ([]entity.Booking, error) {
	return r.filter(func(b entity.Booking) bool { return b.HostID == hostID }), nil
}

var _ repository.BookingRepository = (*BookingRepository)(nil)

func (r *BookingRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bookings)
}
