package reseller

import (
	"context"
	"errors"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/georgemunganga/vendora-backend/internal/platform/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepo struct{ coll *mongo.Collection }

func NewMongoRepository(ctx context.Context, db *mongo.Database) (Repository, error) {
	coll := db.Collection("sns_resellers")
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "referralCode", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	})
	if err != nil {
		return nil, err
	}
	return &mongoRepo{coll: coll}, nil
}

func (r *mongoRepo) Create(ctx context.Context, s *SnSReseller) error {
	_, err := r.coll.InsertOne(ctx, s)
	return store.Translate(err, "reseller")
}

func (r *mongoRepo) GetByID(ctx context.Context, id string) (*SnSReseller, error) {
	s := &SnSReseller{}
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(s); err != nil {
		return nil, store.Translate(err, "reseller")
	}
	return s, nil
}

func (r *mongoRepo) List(ctx context.Context, skip, limit int) ([]*SnSReseller, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetSkip(int64(skip)).SetLimit(int64(limit))
	}
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	out := []*SnSReseller{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoRepo) Update(ctx context.Context, s *SnSReseller) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": s.ID}, bson.M{"$set": bson.M{
		"commissionRate": s.CommissionRate,
		"isActive":       s.IsActive,
		"updatedAt":      s.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("reseller not found")
	}
	return nil
}

func (r *mongoRepo) RecordPurchase(ctx context.Context, id string, amount, commission float64, at time.Time) (*SnSReseller, error) {
	s := &SnSReseller{}
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "isActive": true},
		bson.M{
			"$inc": bson.M{"totalPurchases": 1, "totalPurchaseAmount": amount, "totalCommission": commission},
			"$set": bson.M{"updatedAt": at},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, gerr := r.GetByID(ctx, id); gerr != nil {
			return nil, gerr
		}
		return nil, apperr.Validation("reseller %s is inactive", id)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
