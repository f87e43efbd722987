package inventory

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

// NewMongoRepository keeps each line as one document with its movements embedded,
// so a movement and its quantity change land in a single document update.
func NewMongoRepository(ctx context.Context, db *mongo.Database) (Repository, error) {
	coll := db.Collection("inventories")
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "sku", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return nil, err
	}
	return &mongoRepo{coll: coll}, nil
}

var withoutMovements = bson.M{"stockMovements": 0}

func (r *mongoRepo) Create(ctx context.Context, inv *Inventory) error {
	doc := *inv
	if doc.StockMovements == nil {
		doc.StockMovements = []Movement{}
	}
	_, err := r.coll.InsertOne(ctx, doc)
	return store.Translate(err, "inventory")
}

func (r *mongoRepo) GetByID(ctx context.Context, id string) (*Inventory, error) {
	inv := &Inventory{}
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(inv); err != nil {
		return nil, store.Translate(err, "inventory")
	}
	return inv, nil
}

func (r *mongoRepo) List(ctx context.Context, f ListFilter) ([]*Inventory, error) {
	filter := bson.M{}
	if f.OwnerID != "" {
		filter["ownerId"] = f.OwnerID
	}
	if f.LowStock {
		filter["$expr"] = bson.M{"$lte": bson.A{"$currentQuantity", "$reorderLevel"}}
	}
	opts := options.Find().
		SetProjection(withoutMovements).
		SetSort(bson.D{{Key: "productName", Value: 1}})
	if f.Limit > 0 {
		opts.SetSkip(int64(f.Skip)).SetLimit(int64(f.Limit))
	}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	items := []*Inventory{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// movementFilter matches the line only while a withdrawal leaves it non-negative.
func movementFilter(id string, delta int) bson.M {
	filter := bson.M{"_id": id}
	if delta < 0 {
		filter["currentQuantity"] = bson.M{"$gte": -delta}
	}
	return filter
}

func movementUpdate(m *Movement) bson.M {
	return bson.M{
		"$inc":  bson.M{"currentQuantity": m.Quantity},
		"$push": bson.M{"stockMovements": m},
		"$set":  bson.M{"updatedAt": m.CreatedAt},
	}
}

func (r *mongoRepo) ApplyMovement(ctx context.Context, id string, m *Movement) (*Inventory, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutMovements)

	inv := &Inventory{}
	err := r.coll.FindOneAndUpdate(ctx, movementFilter(id, m.Quantity), movementUpdate(m), opts).Decode(inv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, r.missOrConflict(ctx, id, apperr.Conflict("insufficient stock for %s of %d", m.Type, -m.Quantity))
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *mongoRepo) ResetQuantity(ctx context.Context, id string, quantity, movementCount int, at time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "stockMovements": bson.M{"$size": movementCount}},
		bson.M{"$set": bson.M{"currentQuantity": quantity, "updatedAt": at}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return r.missOrConflict(ctx, id, apperr.Conflict("inventory changed during reconciliation"))
	}
	return nil
}

// missOrConflict tells a missing line apart from a failed condition.
func (r *mongoRepo) missOrConflict(ctx context.Context, id string, conflict error) error {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("inventory not found")
	}
	return conflict
}
