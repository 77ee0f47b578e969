package entity

import "time"

// Listing is a rentable property owned by its Creator.
type Listing struct {
	ID                string    `json:"_id"`
	Creator           string    `json:"creator"`
	Category          string    `json:"category"`
	Type              string    `json:"type"`
	StreetAddress     string    `json:"streetAddress"`
	AptSuite          string    `json:"aptSuite"`
	City              string    `json:"city"`
	Province          string    `json:"province"`
	Country           string    `json:"country"`
	GuestCount        int       `json:"guestCount"`
	BedroomCount      int       `json:"bedroomCount"`
	BedCount          int       `json:"bedCount"`
	BathroomCount     int       `json:"bathroomCount"`
	Amenities         []string  `json:"amenities"`
	ListingPhotoPaths []string  `json:"listingPhotoPaths"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Highlight         string    `json:"highlight"`
	HighlightDesc     string    `json:"highlightDesc"`
	Price             float64   `json:"price"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// OwnedBy reports whether userID is the listing's creator.
func (l *Listing) OwnedBy(userID string) bool {
	return userID != "" && l.Creator == userID
}
