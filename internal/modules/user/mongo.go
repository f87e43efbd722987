package user

import (
	"context"

	"github.com/georgemunganga/vendora-backend/internal/platform/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository struct{ coll *mongo.Collection }

// NewMongoRepository creates a MongoDB user repository with a unique email index.
func NewMongoRepository(ctx context.Context, db *mongo.Database) (Repository, error) {
	coll := db.Collection("users")
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}
	return &mongoRepository{coll: coll}, nil
}

func (r *mongoRepository) CreateUser(ctx context.Context, user *User) error {
	_, err := r.coll.InsertOne(ctx, user)
	return store.Translate(err, "user")
}

func (r *mongoRepository) find(ctx context.Context, filter bson.M) (*User, error) {
	user := &User{}
	if err := r.coll.FindOne(ctx, filter).Decode(user); err != nil {
		return nil, store.Translate(err, "user")
	}
	return user, nil
}

func (r *mongoRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return r.find(ctx, bson.M{"email": email})
}

func (r *mongoRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	return r.find(ctx, bson.M{"_id": id})
}
