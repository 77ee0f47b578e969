package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/rentify/internal/domain/entity"
	"github.com/oksasatya/rentify/internal/domain/repository"
)

type bookingDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ListingID  string             `bson:"listingId"`
	CustomerID string             `bson:"customerId"`
	HostID     string             `bson:"hostId"`
	StartDate  time.Time          `bson:"startDate"`
	EndDate    time.Time          `bson:"endDate"`
	TotalPrice float64            `bson:"totalPrice"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

func (d *bookingDoc) toEntity() entity.Booking {
	return entity.Booking{
		ID:         d.ID.Hex(),
		ListingID:  d.ListingID,
		CustomerID: d.CustomerID,
		HostID:     d.HostID,
		StartDate:  d.StartDate.UTC(),
		EndDate:    d.EndDate.UTC(),
		TotalPrice: d.TotalPrice,
		Status:     entity.BookingStatus(d.Status),
		CreatedAt:  d.CreatedAt,
	}
}

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection(bookingsCollection)}
}

func (r *BookingRepository) Create(ctx context.Context, b *entity.Booking) error {
	b.CreatedAt = time.Now().UTC()
	doc := bookingDoc{
		ID:         primitive.NewObjectID(),
		ListingID:  b.ListingID,
		CustomerID: b.CustomerID,
		HostID:     b.HostID,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	b.ID = doc.ID.Hex()
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc bookingDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapErr(err)
	}
	b := doc.toEntity()
	return &b, nil
}

func (r *BookingRepository) ListByListing(ctx context.Context, listingID string) ([]entity.Booking, error) {
	return r.find(ctx, bson.M{"listingId": listingID})
}

func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID string) ([]entity.Booking, error) {
	return r.find(ctx, bson.M{"customerId": customerID})
}

func (r *BookingRepository) ListByHost(ctx context.Context, hostID string) ([]entity.Booking, error) {
	return r.find(ctx, bson.M{"hostId": hostID})
}

func (r *BookingRepository) find(ctx context.Context, filter bson.M) ([]entity.Booking, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "startDate", Value: 1}}))
	if err != nil {
		return nil, mapErr(err)
	}
	var docs []bookingDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]entity.Booking, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}

var _ repository.BookingRepository = (*BookingRepository)(nil)
