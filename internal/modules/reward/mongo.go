package reward

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
	coll := db.Collection("reward_distributions")
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "beneficiaryId", Value: 1}, {Key: "milestoneId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
	})
	if err != nil {
		return nil, err
	}
	return &mongoRepo{coll: coll}, nil
}

func (r *mongoRepo) Create(ctx context.Context, d *RewardDistribution) error {
	_, err := r.coll.InsertOne(ctx, d)
	return store.Translate(err, "reward distribution")
}

func (r *mongoRepo) GetByID(ctx context.Context, id string) (*RewardDistribution, error) {
	d := &RewardDistribution{}
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(d); err != nil {
		return nil, store.Translate(err, "reward distribution")
	}
	return d, nil
}

func (r *mongoRepo) List(ctx context.Context, f ListFilter) ([]*RewardDistribution, error) {
	filter := bson.M{}
	if f.BeneficiaryID != "" {
		filter["beneficiaryId"] = f.BeneficiaryID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if f.Limit > 0 {
		opts.SetSkip(int64(f.Skip)).SetLimit(int64(f.Limit))
	}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	out := []*RewardDistribution{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoRepo) UpdateStatus(ctx context.Context, id string, from, to Status, paidAt *time.Time, at time.Time) error {
	set := bson.M{"status": to, "updatedAt": at}
	if paidAt != nil {
		set["paidAt"] = *paidAt
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id, "status": from}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return apperr.Conflict("reward distribution is no longer %s", from)
	}
	return nil
}

func (r *mongoRepo) Summarize(ctx context.Context, from, to *time.Time) ([]ReportRow, error) {
	created := bson.M{}
	if from != nil {
		created["$gte"] = *from
	}
	if to != nil {
		created["$lt"] = *to
	}
	match := bson.M{}
	if len(created) > 0 {
		match["createdAt"] = created
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":    bson.M{"kind": "$milestoneKind", "status": "$status"},
			"count":  bson.M{"$sum": 1},
			"amount": bson.M{"$sum": "$amount"},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":    0,
			"kind":   "$_id.kind",
			"status": "$_id.status",
			"count":  1,
			"amount": 1,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "kind", Value: 1}, {Key: "status", Value: 1}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	rows := []ReportRow{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
