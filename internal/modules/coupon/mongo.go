package coupon

import (
	"context"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/georgemunganga/vendora-backend/internal/platform/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "coupons"

type mongoRepo struct{ coll *mongo.Collection }

// NewMongoRepository returns a Repository over the coupons collection and
// ensures the unique couponCode index exists.
func NewMongoRepository(ctx context.Context, db *mongo.Database) (Repository, error) {
	coll := db.Collection(collectionName)
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "couponCode", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "expiryDate", Value: 1}}},
	})
	if err != nil {
		return nil, err
	}
	return &mongoRepo{coll: coll}, nil
}

func (r *mongoRepo) Create(ctx context.Context, c *Coupon) error {
	_, err := r.coll.InsertOne(ctx, c)
	return store.Translate(err, "coupon")
}

func (r *mongoRepo) GetByID(ctx context.Context, id string) (*Coupon, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoRepo) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	return r.findOne(ctx, bson.M{"couponCode": code})
}

func (r *mongoRepo) findOne(ctx context.Context, filter bson.M) (*Coupon, error) {
	c := &Coupon{}
	if err := r.coll.FindOne(ctx, filter).Decode(c); err != nil {
		return nil, store.Translate(err, "coupon")
	}
	return c, nil
}

func (r *mongoRepo) List(ctx context.Context, f ListFilter) ([]*Coupon, error) {
	filter := bson.M{}
	if f.Active != nil {
		filter["isActive"] = *f.Active
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if f.Limit > 0 {
		opts.SetSkip(int64(f.Skip)).SetLimit(int64(f.Limit))
	}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	coupons := []*Coupon{}
	if err := cur.All(ctx, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *mongoRepo) Update(ctx context.Context, c *Coupon) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": c.ID}, bson.M{"$set": bson.M{
		"couponCode":      c.CouponCode,
		"description":     c.Description,
		"discountPercent": c.DiscountPercent,
		"maxDiscount":     c.MaxDiscount,
		"minOrderValue":   c.MinOrderValue,
		"expiryDate":      c.ExpiryDate,
		"isActive":        c.IsActive,
		"usageLimit":      c.UsageLimit,
		"updatedAt":       c.UpdatedAt,
	}})
	if err != nil {
		return store.Translate(err, "coupon")
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("coupon not found")
	}
	return nil
}

func (r *mongoRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("coupon not found")
	}
	return nil
}

func (r *mongoRepo) Redeem(ctx context.Context, id string) error {
	filter := bson.M{
		"_id":      id,
		"isActive": true,
		"$or": bson.A{
			bson.M{"usageLimit": 0},
			bson.M{"$expr": bson.M{"$lt": bson.A{"$usedCount", "$usageLimit"}}},
		},
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"usedCount": 1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.Conflict("coupon is no longer redeemable")
	}
	return nil
}

func (r *mongoRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"isActive": true, "expiryDate": bson.M{"$lt": now}},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": now}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
