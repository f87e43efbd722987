package booking

import (
	"context"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/georgemunganga/vendora-backend/internal/platform/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// bookingDoc carries slotKey while the booking holds its slot. The sparse
// unique index on it stands in for a partial index on status.
type bookingDoc struct {
	Booking `bson:",inline"`
	SlotKey string `bson:"slotKey,omitempty"`
}

func slotKey(b *Booking) string { return b.VendorID + "|" + b.Date + "|" + b.TimeSlot }

func newBookingDoc(b *Booking) bookingDoc {
	doc := bookingDoc{Booking: *b}
	if b.Status != StatusCancelled {
		doc.SlotKey = slotKey(b)
	}
	return doc
}

func statusUpdate(to Status, at time.Time) bson.M {
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": at}}
	if to == StatusCancelled {
		update["$unset"] = bson.M{"slotKey": ""}
	}
	return update
}

type mongoRepo struct{ coll *mongo.Collection }

func NewMongoRepository(ctx context.Context, db *mongo.Database) (Repository, error) {
	coll := db.Collection("bookings")
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "slotKey", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "vendorId", Value: 1}, {Key: "status", Value: 1}}},
	})
	if err != nil {
		return nil, err
	}
	return &mongoRepo{coll: coll}, nil
}

func (r *mongoRepo) Create(ctx context.Context, b *Booking) error {
	_, err := r.coll.InsertOne(ctx, newBookingDoc(b))
	return store.Translate(err, "booking")
}

func (r *mongoRepo) GetByID(ctx context.Context, id string) (*Booking, error) {
	b := &Booking{}
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(b); err != nil {
		return nil, store.Translate(err, "booking")
	}
	return b, nil
}

func (r *mongoRepo) find(ctx context.Context, filter bson.M) ([]*Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "timeSlot", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	bookings := []*Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *mongoRepo) ListByUser(ctx context.Context, userID string) ([]*Booking, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *mongoRepo) ListByVendor(ctx context.Context, vendorID string, status Status) ([]*Booking, error) {
	filter := bson.M{"vendorId": vendorID}
	if status != "" {
		filter["status"] = status
	}
	return r.find(ctx, filter)
}

func (r *mongoRepo) UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id, "status": from}, statusUpdate(to, at))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if n == 0 {
			return apperr.NotFound("booking not found")
		}
		return apperr.Conflict("booking is no longer %s", from)
	}
	return nil
}
