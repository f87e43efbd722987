package milestone

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
	coll := db.Collection("milestones")
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "kind", Value: 1}, {Key: "threshold", Value: 1}},
	})
	if err != nil {
		return nil, err
	}
	return &mongoRepo{coll: coll}, nil
}

func (r *mongoRepo) Create(ctx context.Context, m *Milestone) error {
	_, err := r.coll.InsertOne(ctx, m)
	return store.Translate(err, "milestone")
}

func (r *mongoRepo) GetByID(ctx context.Context, kind Kind, id string) (*Milestone, error) {
	m := &Milestone{}
	if err := r.coll.FindOne(ctx, bson.M{"_id": id, "kind": kind}).Decode(m); err != nil {
		return nil, store.Translate(err, "milestone")
	}
	return m, nil
}

func (r *mongoRepo) List(ctx context.Context, kind Kind, activeOnly bool) ([]*Milestone, error) {
	filter := bson.M{"kind": kind}
	if activeOnly {
		filter["isActive"] = true
	}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "threshold", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := []*Milestone{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoRepo) Update(ctx context.Context, m *Milestone) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": m.ID, "kind": m.Kind}, bson.M{"$set": bson.M{
		"title":        m.Title,
		"description":  m.Description,
		"threshold":    m.Threshold,
		"rewardAmount": m.RewardAmount,
		"rewardType":   m.RewardType,
		"isActive":     m.IsActive,
		"updatedAt":    m.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("milestone not found")
	}
	return nil
}

func (r *mongoRepo) Delete(ctx context.Context, kind Kind, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "kind": kind})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("milestone not found")
	}
	return nil
}

func (r *mongoRepo) ExistsTitle(ctx context.Context, kind Kind, title string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"kind": kind, "title": title}, options.Count().SetLimit(1))
	return n > 0, err
}
