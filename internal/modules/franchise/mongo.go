package franchise

import (
	"context"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/georgemunganga/vendora-backend/internal/platform/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepo struct{ coll *mongo.Collection }

func NewMongoRepository(ctx context.Context, db *mongo.Database) (Repository, error) {
	coll := db.Collection("franchises")
	if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "region", Value: 1}}}); err != nil {
		return nil, err
	}
	return &mongoRepo{coll: coll}, nil
}

func (r *mongoRepo) Create(ctx context.Context, f *Franchise) error {
	_, err := r.coll.InsertOne(ctx, f)
	return store.Translate(err, "franchise")
}

func (r *mongoRepo) GetByID(ctx context.Context, id string) (*Franchise, error) {
	f := &Franchise{}
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(f); err != nil {
		return nil, store.Translate(err, "franchise")
	}
	return f, nil
}

func (r *mongoRepo) List(ctx context.Context, region string, skip, limit int) ([]*Franchise, error) {
	filter := bson.M{}
	if region != "" {
		filter["region"] = region
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	if limit > 0 {
		opts.SetSkip(int64(skip)).SetLimit(int64(limit))
	}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	out := []*Franchise{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoRepo) Update(ctx context.Context, f *Franchise) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": f.ID}, f)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("franchise not found")
	}
	return nil
}
