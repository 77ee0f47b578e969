package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/rentify/config"
	"github.com/oksasatya/rentify/internal/domain/entity"
	"github.com/oksasatya/rentify/internal/domain/repository"
	mongoinfra "github.com/oksasatya/rentify/internal/infrastructure/mongodb"
	"github.com/oksasatya/rentify/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	client, err := mongoinfra.Connect(ctx, cfg.MongoURL, cfg.MongoTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	db := client.Database(cfg.MongoDB)
	if err := mongoinfra.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}
	users := mongoinfra.NewUserRepository(db)
	listings := mongoinfra.NewListingRepository(db)

	email := "host@rentify.test"
	password := "password123"

	host, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		fmt.Printf("user exists: id=%s email=%s\n", host.ID, host.Email)
		return
	case !errors.Is(err, repository.ErrNotFound):
		log.Fatalf("failed to look up user: %v", err)
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	host = &entity.User{
		FirstName:   "Demo",
		LastName:    "Host",
		Email:       email,
		Password:    hash,
		PhoneNumber: "5550100100",
		WishList:    []string{},
	}
	if err := users.Create(ctx, host); err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", host.ID, email, password)

	listing := demoListing(host.ID, cfg.PublicBaseURL)
	if err := listings.Create(ctx, listing); err != nil {
		log.Fatalf("failed to seed listing: %v", err)
	}
	fmt.Printf("seeded listing: id=%s title=%q\n", listing.ID, listing.Title)
}

// demoListing is a complete listing owned by hostID.
func demoListing(hostID, baseURL string) *entity.Listing {
	return &entity.Listing{
		Creator:       hostID,
		Category:      "Beachfront",
		Type:          "An entire place",
		StreetAddress: "1 Ocean Drive",
		City:          "Miami",
		Province:      "Florida",
		Country:       "United States",
		GuestCount:    4,
		BedroomCount:  2,
		BedCount:      2,
		BathroomCount: 1,
		Amenities:     []string{"Wifi", "Kitchen", "Beach access"},
		Title:         "Seaside cottage",
		Description:   "Two bedrooms a short walk from the sand.",
		Highlight:     "Great location",
		HighlightDesc: "Steps from the beach.",
		Price:         180,

		// placeholder; listings always carry at least one photo
		ListingPhotoPaths: []string{baseURL + "/uploads/seed-seaside-cottage.jpg"},
	}
}
