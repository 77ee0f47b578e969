package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rentify/internal/domain/entity"
	repo "github.com/oksasatya/rentify/internal/domain/repository"
	"github.com/oksasatya/rentify/pkg/apperror"
)

type UserService struct {
	Users    repo.UserRepository
	Listings repo.ListingRepository
	Bookings repo.BookingRepository
	Logger   *logrus.Logger
}

func NewUserService(users repo.UserRepository, listings repo.ListingRepository, bookings repo.BookingRepository, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Listings: listings, Bookings: bookings, Logger: loggerOrNop(logger)}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "User not found")
	}
	return u, nil
}

// self checks that callerID may read userID's private data and that the user exists.
func (s *UserService) self(ctx context.Context, callerID, userID string) error {
	if callerID != userID {
		return apperror.Authorization("Access denied")
	}
	_, err := s.GetProfile(ctx, userID)
	return err
}

// Trips lists bookings made by userID as a guest.
func (s *UserService) Trips(ctx context.Context, callerID, userID string) ([]entity.Booking, error) {
	if err := s.self(ctx, callerID, userID); err != nil {
		return nil, err
	}
	out, err := s.Bookings.ListByCustomer(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("Fail to find trips", err)
	}
	return out, nil
}

// Reservations lists bookings made on listings hosted by userID.
func (s *UserService) Reservations(ctx context.Context, callerID, userID string) ([]entity.Booking, error) {
	if err := s.self(ctx, callerID, userID); err != nil {
		return nil, err
	}
	out, err := s.Bookings.ListByHost(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("Fail to find reservations", err)
	}
	return out, nil
}

// Properties lists listings created by userID.
func (s *UserService) Properties(ctx context.Context, userID string) ([]entity.Listing, error) {
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return nil, err
	}
	out, err := s.Listings.List(ctx, repo.ListingFilter{CreatorID: userID})
	if err != nil {
		return nil, apperror.Internal("Fail to find properties", err)
	}
	return out, nil
}

// ToggleWishlist adds listingID to the wishlist, or removes it when already present.
func (s *UserService) ToggleWishlist(ctx context.Context, callerID, userID, listingID string) ([]string, bool, error) {
	if callerID != userID {
		return nil, false, apperror.Authorization("Access denied")
	}
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if _, err := s.Listings.GetByID(ctx, listingID); err != nil {
		return nil, false, storeErr(err, "Listing not found")
	}

	added := !u.InWishList(listingID)
	next := make([]string, 0, len(u.WishList)+1)
	for _, id := range u.WishList {
		if id != listingID {
			next = append(next, id)
		}
	}
	if added {
		next = append(next, listingID)
	}
	if err := s.Users.SetWishList(ctx, userID, next); err != nil {
		return nil, false, storeErr(err, "User not found")
	}
	s.Logger.WithFields(logrus.Fields{"user_id": userID, "listing_id": listingID, "added": added}).Debug("wishlist updated")
	return next, added, nil
}
