package entity

import (
	"time"
)

// User is the aggregate root for the credential store.
// Passwords are stored as bcrypt hashes in Password field; never serialise User directly.
type User struct {
	ID               string
	FirstName        string
	LastName         string
	Email            string
	Password         string
	PhoneNumber      string
	ProfileImagePath string
	WishList         []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// UserView is the public projection of a User returned at every response boundary.
type UserView struct {
	ID               string    `json:"_id"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Email            string    `json:"email"`
	PhoneNumber      string    `json:"phoneNumber"`
	ProfileImagePath string    `json:"profileImagePath"`
	WishList         []string  `json:"wishList"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (u *User) View() UserView {
	wl := u.WishList
	if wl == nil {
		wl = []string{}
	}
	return UserView{
		ID:               u.ID,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Email:            u.Email,
		PhoneNumber:      u.PhoneNumber,
		ProfileImagePath: u.ProfileImagePath,
		WishList:         wl,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

// InWishList reports whether listingID is in the user's wishlist.
func (u *User) InWishList(listingID string) bool {
	for _, id := range u.WishList {
		if id == listingID {
			return true
		}
	}
	return false
}
