package emi

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
	coll := db.Collection("emi_plans")
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "installments.status", Value: 1}, {Key: "installments.dueDate", Value: 1}}},
	})
	if err != nil {
		return nil, err
	}
	return &mongoRepo{coll: coll}, nil
}

func (r *mongoRepo) Create(ctx context.Context, p *Plan) error {
	_, err := r.coll.InsertOne(ctx, p)
	return store.Translate(err, "emi plan")
}

func (r *mongoRepo) GetByID(ctx context.Context, id string) (*Plan, error) {
	p := &Plan{}
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(p); err != nil {
		return nil, store.Translate(err, "emi plan")
	}
	return p, nil
}

func (r *mongoRepo) ListByUser(ctx context.Context, userID string) ([]*Plan, error) {
	cur, err := r.coll.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	plans := []*Plan{}
	if err := cur.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// payFilter pins the positional $ to the named installment while it is unpaid.
func payFilter(planID string, number int) bson.M {
	return bson.M{
		"_id": planID,
		"installments": bson.M{"$elemMatch": bson.M{
			"number": number,
			"status": bson.M{"$ne": InstallmentPaid},
		}},
	}
}

// lateInstallment matches a due installment past its date; prefix scopes it to an array filter identifier.
func lateInstallment(prefix string, now time.Time) bson.M {
	return bson.M{prefix + "status": InstallmentDue, prefix + "dueDate": bson.M{"$lt": now}}
}

// defaultedFilter matches active plans holding at least minOverdue overdue installments.
func defaultedFilter(minOverdue int) bson.M {
	overdue := bson.M{"$size": bson.M{"$filter": bson.M{
		"input": "$installments",
		"as":    "i",
		"cond":  bson.M{"$eq": bson.A{"$$i.status", InstallmentOverdue}},
	}}}
	return bson.M{"status": PlanActive, "$expr": bson.M{"$gte": bson.A{overdue, minOverdue}}}
}

func (r *mongoRepo) PayInstallment(ctx context.Context, planID string, number int, paidAt time.Time, closePlan bool) error {
	set := bson.M{
		"installments.$.status": InstallmentPaid,
		"installments.$.paidAt": paidAt,
		"updatedAt":             paidAt,
	}
	if closePlan {
		set["status"] = PlanClosed
	}
	res, err := r.coll.UpdateOne(ctx, payFilter(planID, number), bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, err := r.GetByID(ctx, planID); err != nil {
			return err
		}
		return apperr.Conflict("installment %d is already paid", number)
	}
	return nil
}

func (r *mongoRepo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"installments": bson.M{"$elemMatch": lateInstallment("", now)}},
		bson.M{"$set": bson.M{"installments.$[i].status": InstallmentOverdue, "updatedAt": now}},
		options.Update().SetArrayFilters(options.ArrayFilters{Filters: []interface{}{
			lateInstallment("i.", now),
		}}))
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *mongoRepo) MarkDefaulted(ctx context.Context, minOverdue int, at time.Time) (int64, error) {
	res, err := r.coll.UpdateMany(ctx, defaultedFilter(minOverdue),
		bson.M{"$set": bson.M{"status": PlanDefaulted, "updatedAt": at}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
