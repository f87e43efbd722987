package salesrep

import (
	"context"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/georgemunganga/vendora-backend/internal/platform/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepo struct{ coll *mongo.Collection }

func NewMongoRepository(ctx context.Context, db *mongo.Database) (Repository, error) {
	coll := db.Collection("sales_reps")
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "referralCode", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return nil, err
	}
	return &mongoRepo{coll: coll}, nil
}

func (r *mongoRepo) Create(ctx context.Context, s *SalesRep) error {
	_, err := r.coll.InsertOne(ctx, s)
	return store.Translate(err, "sales rep")
}

func (r *mongoRepo) GetByID(ctx context.Context, id string) (*SalesRep, error) {
	s := &SalesRep{}
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(s); err != nil {
		return nil, store.Translate(err, "sales rep")
	}
	return s, nil
}

func (r *mongoRepo) List(ctx context.Context, f ListFilter) ([]*SalesRep, error) {
	filter := bson.M{}
	if f.Region != "" {
		filter["region"] = f.Region
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	if f.Limit > 0 {
		opts.SetSkip(int64(f.Skip)).SetLimit(int64(f.Limit))
	}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	out := []*SalesRep{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoRepo) IncrementVendors(ctx context.Context, id string, at time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "isActive": true},
		bson.M{"$inc": bson.M{"vendorsOnboarded": 1}, "$set": bson.M{"updatedAt": at}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return apperr.Validation("sales rep %s is not active", id)
	}
	return nil
}
