package mongodb

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/rentify/internal/domain/entity"
	"github.com/oksasatya/rentify/internal/domain/repository"
)

type listingDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Creator           string             `bson:"creator"`
	Category          string             `bson:"category"`
	Type              string             `bson:"type"`
	StreetAddress     string             `bson:"streetAddress"`
	AptSuite          string             `bson:"aptSuite"`
	City              string             `bson:"city"`
	Province          string             `bson:"province"`
	Country           string             `bson:"country"`
	GuestCount        int                `bson:"guestCount"`
	BedroomCount      int                `bson:"bedroomCount"`
	BedCount          int                `bson:"bedCount"`
	BathroomCount     int                `bson:"bathroomCount"`
	Amenities         []string           `bson:"amenities"`
	ListingPhotoPaths []string           `bson:"listingPhotoPaths"`
	Title             string             `bson:"title"`
	Description       string             `bson:"description"`
	Highlight         string             `bson:"highlight"`
	HighlightDesc     string             `bson:"highlightDesc"`
	Price             float64            `bson:"price"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}

func listingToDoc(l *entity.Listing, id primitive.ObjectID) listingDoc {
	return listingDoc{
		ID:                id,
		Creator:           l.Creator,
		Category:          l.Category,
		Type:              l.Type,
		StreetAddress:     l.StreetAddress,
		AptSuite:          l.AptSuite,
		City:              l.City,
		Province:          l.Province,
		Country:           l.Country,
		GuestCount:        l.GuestCount,
		BedroomCount:      l.BedroomCount,
		BedCount:          l.BedCount,
		BathroomCount:     l.BathroomCount,
		Amenities:         l.Amenities,
		ListingPhotoPaths: l.ListingPhotoPaths,
		Title:             l.Title,
		Description:       l.Description,
		Highlight:         l.Highlight,
		HighlightDesc:     l.HighlightDesc,
		Price:             l.Price,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

func (d *listingDoc) toEntity() entity.Listing {
	return entity.Listing{
		ID:                d.ID.Hex(),
		Creator:           d.Creator,
		Category:          d.Category,
		Type:              d.Type,
		StreetAddress:     d.StreetAddress,
		AptSuite:          d.AptSuite,
		City:              d.City,
		Province:          d.Province,
		Country:           d.Country,
		GuestCount:        d.GuestCount,
		BedroomCount:      d.BedroomCount,
		BedCount:          d.BedCount,
		BathroomCount:     d.BathroomCount,
		Amenities:         d.Amenities,
		ListingPhotoPaths: d.ListingPhotoPaths,
		Title:             d.Title,
		Description:       d.Description,
		Highlight:         d.Highlight,
		HighlightDesc:     d.HighlightDesc,
		Price:             d.Price,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection(listingsCollection)}
}

func (r *ListingRepository) Create(ctx context.Context, l *entity.Listing) error {
	now := time.Now().UTC()
	l.CreatedAt, l.UpdatedAt = now, now
	doc := listingToDoc(l, primitive.NewObjectID())
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	l.ID = doc.ID.Hex()
	return nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc listingDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapErr(err)
	}
	l := doc.toEntity()
	return &l, nil
}

// List returns listings newest first.
func (r *ListingRepository) List(ctx context.Context, f repository.ListingFilter) ([]entity.Listing, error) {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.CreatorID != "" {
		filter["creator"] = f.CreatorID
	}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"category": re},
			bson.M{"title": re},
		}
	}
	if f.IDs != nil {
		oids := make([]primitive.ObjectID, 0, len(f.IDs))
		for _, id := range f.IDs {
			if oid, err := primitive.ObjectIDFromHex(id); err == nil {
				oids = append(oids, oid)
			}
		}
		filter["_id"] = bson.M{"$in": oids}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	if f.Offset > 0 {
		opts.SetSkip(int64(f.Offset))
	}

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapErr(err)
	}
	var docs []listingDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]entity.Listing, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}

func (r *ListingRepository) Update(ctx context.Context, l *entity.Listing) error {
	oid, err := objectID(l.ID)
	if err != nil {
		return err
	}
	l.UpdatedAt = time.Now().UTC()
	doc := listingToDoc(l, oid)
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return mapErr(err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ListingRepository = (*ListingRepository)(nil)
