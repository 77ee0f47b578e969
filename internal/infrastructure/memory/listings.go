package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oksasatya/rentify/internal/domain/entity"
	"github.com/oksasatya/rentify/internal/domain/repository"
)

type ListingRepository struct {
	mu       sync.RWMutex
	listings map[string]entity.Listing
}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{listings: map[string]entity.Listing{}}
}

func cloneListing(l entity.Listing) *entity.Listing {
	l.Amenities = append([]string(nil), l.Amenities...)
	l.ListingPhotoPaths = append([]string(nil), l.ListingPhotoPaths...)
	return &l
}

func (r *ListingRepository) Create(_ context.Context, l *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l.ID == "" {
		l.ID = newID()
	}
	now := time.Now().UTC()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now
	r.listings[l.ID] = *cloneListing(*l)
	return nil
}

func (r *ListingRepository) GetByID(_ context.Context, id string) (*entity.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.listings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneListing(l), nil
}

func (r *ListingRepository) List(_ context.Context, f repository.ListingFilter) ([]entity.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids map[string]bool
	if f.IDs != nil {
		ids = make(map[string]bool, len(f.IDs))
		for _, id := range f.IDs {
			ids[id] = true
		}
	}
	search := strings.ToLower(f.Search)

	out := make([]entity.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		if f.Category != "" && l.Category != f.Category {
			continue
		}
		if f.CreatorID != "" && l.Creator != f.CreatorID {
			continue
		}
		if ids != nil && !ids[l.ID] {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(l.Category), search) &&
			!strings.Contains(strings.ToLower(l.Title), search) {
			continue
		}
		out = append(out, *cloneListing(l))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []entity.Listing{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *ListingRepository) Update(_ context.Context, l *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[l.ID]; !ok {
		return repository.ErrNotFound
	}
	l.UpdatedAt = time.Now().UTC()
	r.listings[l.ID] = *cloneListing(*l)
	return nil
}

func (r *ListingRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.listings, id)
	return nil
}

var _ repository.ListingRepository = (*ListingRepository)(nil)
