package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/rentify/internal/domain/entity"
	"github.com/oksasatya/rentify/internal/infrastructure/memory"
	"github.com/oksasatya/rentify/internal/infrastructure/redisstore"
	"github.com/oksasatya/rentify/pkg/helpers"
)

type fixture struct {
	users    *memory.UserRepository
	listings *memory.ListingRepository
	bookings *memory.BookingRepository
	files    *memory.FileStore
	index    *memory.ListingIndex
	notifier *memory.Notifier
	audit    *memory.AuditLog

	auth    *AuthService
	listing *ListingService
	booking *BookingService
	user    *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:    memory.NewUserRepository(),
		listings: memory.NewListingRepository(),
		bookings: memory.NewBookingRepository(),
		files:    memory.NewFileStore(),
		index:    memory.NewListingIndex(),
		notifier: &memory.Notifier{},
		audit:    &memory.AuditLog{},
	}
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	f.auth = NewAuthService(f.users, f.files, jwt, redisstore.NewLocalRevocationList(), f.audit, f.notifier, nil)
	f.listing = NewListingService(f.listings, f.users, f.files, f.index, nil)
	f.booking = NewBookingService(f.bookings, f.listings, f.users, redisstore.NewLocalLocker(), f.notifier, nil, time.Second)
	f.user = NewUserService(f.users, f.listings, f.bookings, nil)
	return f
}

func image(name string) *Upload {
	return &Upload{Filename: name, ContentType: "image/png", Reader: strings.NewReader("png-bytes")}
}

func registerInput(email string) RegisterInput {
	return RegisterInput{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        email,
		Password:     "analytical",
		PhoneNumber:  "1234567890",
		ProfileImage: image("avatar.png"),
	}
}

func (f *fixture) register(t *testing.T, email string) *entity.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), registerInput(email), ClientInfo{})
	require.NoError(t, err)
	return u
}

func (f *fixture) createListing(t *testing.T, ownerID string, in ListingInput) *entity.Listing {
	t.Helper()
	l, err := f.listing.Create(context.Background(), ownerID, in, []Upload{*image("front.jpg")})
	require.NoError(t, err)
	return l
}

func sampleListing() ListingInput {
	return ListingInput{
		Category:     "Beach",
		Type:         "An entire place",
		City:         "Lisbon",
		Country:      "Portugal",
		GuestCount:   4,
		BedroomCount: 2,
		BedCount:     2,
		Amenities:    []string{"Wifi"},
		Title:        "Seaside loft",
		Price:        100,
	}
}
