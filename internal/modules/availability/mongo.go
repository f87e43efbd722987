package availability

import (
	"context"

	"github.com/georgemunganga/vendora-backend/internal/platform/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepo struct{ coll *mongo.Collection }

func NewMongoRepository(ctx context.Context, db *mongo.Database) (Repository, error) {
	coll := db.Collection("vendor_availability")
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "vendorId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}
	return &mongoRepo{coll: coll}, nil
}

func (r *mongoRepo) Upsert(ctx context.Context, a *VendorAvailability) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"vendorId": a.VendorID},
		bson.M{
			"$set": bson.M{
				"days":         a.Days,
				"slotDuration": a.SlotDuration,
				"bufferTime":   a.BufferTime,
				"updatedAt":    a.UpdatedAt,
			},
			"$setOnInsert": bson.M{"_id": a.ID, "createdAt": a.CreatedAt},
		},
		options.Update().SetUpsert(true))
	return store.Translate(err, "vendor availability")
}

func (r *mongoRepo) GetByVendor(ctx context.Context, vendorID string) (*VendorAvailability, error) {
	a := &VendorAvailability{}
	if err := r.coll.FindOne(ctx, bson.M{"vendorId": vendorID}).Decode(a); err != nil {
		return nil, store.Translate(err, "vendor availability")
	}
	return a, nil
}
