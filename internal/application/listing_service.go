package application

import (
	"context"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rentify/internal/domain/entity"
	repo "github.com/oksasatya/rentify/internal/domain/repository"
	"github.com/oksasatya/rentify/pkg/apperror"
	"github.com/oksasatya/rentify/pkg/helpers"
)

const (
	categoryAll = "All"
	searchAll   = "all"

	searchSize = 50
)

type ListingService struct {
	Listings repo.ListingRepository
	Users    repo.UserRepository
	Files    repo.FileStore
	Index    repo.ListingIndex // optional
	Logger   *logrus.Logger

	now func() time.Time
}

func NewListingService(listings repo.ListingRepository, users repo.UserRepository, files repo.FileStore, index repo.ListingIndex, logger *logrus.Logger) *ListingService {
	return &ListingService{
		Listings: listings,
		Users:    users,
		Files:    files,
		Index:    index,
		Logger:   loggerOrNop(logger),
		now:      time.Now,
	}
}

// ListingInput carries the editable listing fields.
type ListingInput struct {
	Category      string
	Type          string
	StreetAddress string
	AptSuite      string
	City          string
	Province      string
	Country       string
	GuestCount    int
	BedroomCount  int
	BedCount      int
	BathroomCount int
	Amenities     []string
	Title         string
	Description   string
	Highlight     string
	HighlightDesc string
	Price         float64
}

func (in ListingInput) validate() error {
	details := map[string]string{}
	if strings.TrimSpace(in.Title) == "" {
		details["title"] = "is required"
	}
	if in.Price <= 0 {
		details["price"] = "must be greater than 0"
	}
	counts := map[string]int{
		"guestCount":    in.GuestCount,
		"bedroomCount":  in.BedroomCount,
		"bedCount":      in.BedCount,
		"bathroomCount": in.BathroomCount,
	}
	for k, v := range counts {
		if v < 0 {
			details[k] = "must be 0 or greater"
		}
	}
	if len(details) > 0 {
		return apperror.Validation("invalid listing").WithDetails(details)
	}
	return nil
}

func (in ListingInput) apply(l *entity.Listing) {
	l.Category = strings.TrimSpace(in.Category)
	l.Type = strings.TrimSpace(in.Type)
	l.StreetAddress = in.StreetAddress
	l.AptSuite = in.AptSuite
	l.City = in.City
	l.Province = in.Province
	l.Country = in.Country
	l.GuestCount = in.GuestCount
	l.BedroomCount = in.BedroomCount
	l.BedCount = in.BedCount
	l.BathroomCount = in.BathroomCount
	l.Amenities = append([]string{}, in.Amenities...)
	l.Title = strings.TrimSpace(in.Title)
	l.Description = in.Description
	l.Highlight = in.Highlight
	l.HighlightDesc = in.HighlightDesc
	l.Price = in.Price
}

// Create stores the photos and persists a listing owned by ownerID.
func (s *ListingService) Create(ctx context.Context, ownerID string, in ListingInput, photos []Upload) (*entity.Listing, error) {
	if _, err := s.Users.GetByID(ctx, ownerID); err != nil {
		return nil, storeErr(err, "User not found")
	}
	if len(photos) == 0 {
		return nil, apperror.Validation("At least one listing photo is required")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	stored := make([]repo.StoredFile, 0, len(photos))
	seen := make(map[string]bool, len(photos))
	now := s.now()
	for i, p := range photos {
		name := helpers.UploadName(now, p.Filename)
		if seen[name] {
			name = helpers.UploadName(now, strconv.Itoa(i)+"-"+p.Filename)
		}
		seen[name] = true
		f, err := s.Files.Save(ctx, name, p.ContentType, p.Reader)
		if err != nil {
			s.discardFiles(ctx, stored)
			return nil, apperror.Internal("Fail to create Listing", err)
		}
		stored = append(stored, f)
	}

	l := &entity.Listing{Creator: ownerID}
	in.apply(l)
	l.ListingPhotoPaths = make([]string, 0, len(stored))
	for _, f := range stored {
		l.ListingPhotoPaths = append(l.ListingPhotoPaths, f.Path)
	}

	if err := s.Listings.Create(ctx, l); err != nil {
		s.discardFiles(ctx, stored)
		return nil, apperror.Internal("Fail to create Listing", err)
	}
	s.Logger.WithFields(logrus.Fields{"listing_id": l.ID, "creator": ownerID}).Info("listing created")
	s.index(ctx, l)
	return l, nil
}

// List returns listings newest first. Category "All" or empty disables the category filter.
func (s *ListingService) List(ctx context.Context, f repo.ListingFilter) ([]entity.Listing, error) {
	if strings.EqualFold(f.Category, categoryAll) {
		f.Category = ""
	}
	out, err := s.Listings.List(ctx, f)
	if err != nil {
		return nil, apperror.Internal("Fail to fetch listings", err)
	}
	return out, nil
}

// Search matches term against category or title; "all" returns every listing.
func (s *ListingService) Search(ctx context.Context, term string) ([]entity.Listing, error) {
	term = strings.TrimSpace(term)
	if term == "" || strings.EqualFold(term, searchAll) {
		return s.List(ctx, repo.ListingFilter{})
	}

	if s.Index != nil {
		ids, err := s.searchIndex(ctx, term)
		if err == nil {
			return s.byIDs(ctx, ids)
		}
		s.Logger.WithError(err).WithField("term", term).Warn("search index failed, falling back to database")
	}

	out, err := s.Listings.List(ctx, repo.ListingFilter{Search: term})
	if err != nil {
		return nil, apperror.Internal("Fail to search listings", err)
	}
	return out, nil
}

func (s *ListingService) searchIndex(ctx context.Context, term string) ([]string, error) {
	c, cancel := context.WithTimeout(ctx, sideEffectTimeout)
	defer cancel()
	return s.Index.Search(c, term, searchSize)
}

// byIDs loads listings and keeps the index ranking.
func (s *ListingService) byIDs(ctx context.Context, ids []string) ([]entity.Listing, error) {
	if len(ids) == 0 {
		return []entity.Listing{}, nil
	}
	found, err := s.Listings.List(ctx, repo.ListingFilter{IDs: ids})
	if err != nil {
		return nil, apperror.Internal("Fail to search listings", err)
	}
	byID := make(map[string]entity.Listing, len(found))
	for _, l := range found {
		byID[l.ID] = l
	}
	out := make([]entity.Listing, 0, len(found))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *ListingService) Get(ctx context.Context, id string) (*entity.Listing, error) {
	l, err := s.Listings.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Listing not found")
	}
	return l, nil
}

// owned loads a listing and checks that callerID created it.
func (s *ListingService) owned(ctx context.Context, callerID, id string) (*entity.Listing, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !l.OwnedBy(callerID) {
		return nil, apperror.Authorization("Only the owner can modify this listing")
	}
	return l, nil
}

// Update replaces the editable fields; photos and creator are kept.
func (s *ListingService) Update(ctx context.Context, callerID, id string, in ListingInput) (*entity.Listing, error) {
	l, err := s.owned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	in.apply(l)
	if err := s.Listings.Update(ctx, l); err != nil {
		return nil, storeErr(err, "Listing not found")
	}
	s.index(ctx, l)
	return l, nil
}

// Delete removes the listing, its index entry and its photos.
func (s *ListingService) Delete(ctx context.Context, callerID, id string) error {
	l, err := s.owned(ctx, callerID, id)
	if err != nil {
		return err
	}
	if err := s.Listings.Delete(ctx, l.ID); err != nil {
		return storeErr(err, "Listing not found")
	}
	s.Logger.WithField("listing_id", l.ID).Info("listing deleted")

	if s.Index != nil {
		c, cancel := detached(ctx)
		if err := s.Index.Remove(c, l.ID); err != nil {
			s.Logger.WithError(err).WithField("listing_id", l.ID).Warn("search index remove failed")
		}
		cancel()
	}
	files := make([]repo.StoredFile, 0, len(l.ListingPhotoPaths))
	for _, p := range l.ListingPhotoPaths {
		files = append(files, repo.StoredFile{Name: path.Base(p), Path: p})
	}
	s.discardFiles(ctx, files)
	return nil
}

func (s *ListingService) index(ctx context.Context, l *entity.Listing) {
	if s.Index == nil {
		return
	}
	c, cancel := detached(ctx)
	defer cancel()
	if err := s.Index.Index(c, l); err != nil {
		s.Logger.WithError(err).WithField("listing_id", l.ID).Warn("search index failed")
	}
}

func (s *ListingService) discardFiles(ctx context.Context, files []repo.StoredFile) {
	if len(files) == 0 {
		return
	}
	c, cancel := detached(ctx)
	defer cancel()
	for _, f := range files {
		if err := s.Files.Delete(c, f.Name); err != nil {
			s.Logger.WithError(err).WithField("file", f.Name).Warn("remove upload failed")
		}
	}
}
