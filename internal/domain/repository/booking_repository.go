package repository

import (
	"context"
	"time"

	"github.com/oksasatya/rentify/internal/domain/entity"
)

type BookingRepository interface {
	Create(ctx context.Context, b *entity.Booking) error
	GetByID(ctx context.Context, id string) (*entity.Booking, error)
	ListByListing(ctx context.Context, listingID string) ([]entity.Booking, error)
	ListByCustomer(ctx context.Context, customerID string) ([]entity.Booking, error)
	ListByHost(ctx context.Context, hostID string) ([]entity.Booking, error)
}

// Locker serialises critical sections keyed by name across API instances.
type Locker interface {
	// Acquire blocks until the lock is held or ctx is done. The returned
	// release func must be called exactly once.
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}
