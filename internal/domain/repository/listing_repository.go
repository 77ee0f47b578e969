package repository

import (
	"context"

	"github.com/oksasatya/rentify/internal/domain/entity"
)

// ListingFilter narrows List results. Zero values mean "no filter".
type ListingFilter struct {
	Category  string
	CreatorID string
	Search    string // case-insensitive match on category or title
	IDs       []string
	Limit     int
	Offset    int
}

type ListingRepository interface {
	Create(ctx context.Context, l *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	List(ctx context.Context, f ListingFilter) ([]entity.Listing, error)
	Update(ctx context.Context, l *entity.Listing) error
	Delete(ctx context.Context, id string) error
}

// ListingIndex is a full-text index over listings. Implementations are optional.
type ListingIndex interface {
	Index(ctx context.Context, l *entity.Listing) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, term string, size int) ([]string, error)
}
