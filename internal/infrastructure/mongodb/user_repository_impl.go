package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/rentify/internal/domain/entity"
	"github.com/oksasatya/rentify/internal/domain/repository"
)

type userDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	FirstName        string             `bson:"firstName"`
	LastName         string             `bson:"lastName"`
	Email            string             `bson:"email"`
	Password         string             `bson:"password"`
	PhoneNumber      string             `bson:"phoneNumber"`
	ProfileImagePath string             `bson:"profileImagePath"`
	WishList         []string           `bson:"wishList"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

func (d *userDoc) toEntity() *entity.User {
	return &entity.User{
		ID:               d.ID.Hex(),
		FirstName:        d.FirstName,
		LastName:         d.LastName,
		Email:            d.Email,
		Password:         d.Password,
		PhoneNumber:      d.PhoneNumber,
		ProfileImagePath: d.ProfileImagePath,
		WishList:         d.WishList,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	now := time.Now().UTC()
	doc := userDoc{
		ID:               primitive.NewObjectID(),
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Email:            u.Email,
		Password:         u.Password,
		PhoneNumber:      u.PhoneNumber,
		ProfileImagePath: u.ProfileImagePath,
		WishList:         []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	u.ID = doc.ID.Hex()
	u.WishList = doc.WishList
	u.CreatedAt, u.UpdatedAt = now, now
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) SetWishList(ctx context.Context, id string, wishList []string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	if wishList == nil {
		wishList = []string{}
	}
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"wishList":  wishList,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapErr(err)
	}
	return doc.toEntity(), nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
