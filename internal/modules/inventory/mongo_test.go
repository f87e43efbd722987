package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMovementFilter(t *testing.T) {
	out := movementFilter("inv-1", -5)
	assert.Equal(t, "inv-1", out["_id"])
	assert.Equal(t, bson.M{"$gte": 5}, out["currentQuantity"])

	in := movementFilter("inv-1", 8)
	assert.Equal(t, bson.M{"_id": "inv-1"}, in)
}

func TestMovementUpdate(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	m := &Movement{ID: "m1", Type: MovementSale, Quantity: -3, CreatedAt: at}

	u := movementUpdate(m)
	assert.Equal(t, bson.M{"currentQuantity": -3}, u["$inc"])
	assert.Equal(t, bson.M{"stockMovements": m}, u["$push"])
	assert.Equal(t, bson.M{"updatedAt": at}, u["$set"])
}

func TestMongoApplyMovement(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	newRepo := func(mt *mtest.T) Repository {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo, err := NewMongoRepository(context.Background(), mt.DB)
		require.NoError(mt, err)
		mt.ClearEvents()
		return repo
	}
	countReply := func(n int32) bson.D {
		if n == 0 {
			return mtest.CreateCursorResponse(0, "test.inventories", mtest.FirstBatch)
		}
		return mtest.CreateCursorResponse(0, "test.inventories", mtest.FirstBatch, bson.D{{Key: "n", Value: n}})
	}

	mt.Run("withdrawal beyond stock is a conflict", func(mt *mtest.T) {
		repo := newRepo(mt)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			countReply(1),
		)

		_, err := repo.ApplyMovement(context.Background(), "inv-1",
			&Movement{ID: "m1", Type: MovementSale, Quantity: -5, CreatedAt: at})
		assert.ErrorIs(mt, err, apperr.ErrConflict)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		require.Equal(mt, "findAndModify", started.CommandName)
		floor, err := started.Command.LookupErr("query", "currentQuantity", "$gte")
		require.NoError(mt, err)
		assert.Equal(mt, int64(5), floor.AsInt64())
	})

	mt.Run("missing line is not found", func(mt *mtest.T) {
		repo := newRepo(mt)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			countReply(0),
		)

		_, err := repo.ApplyMovement(context.Background(), "gone",
			&Movement{ID: "m1", Type: MovementSale, Quantity: -1, CreatedAt: at})
		assert.ErrorIs(mt, err, apperr.ErrNotFound)
	})

	mt.Run("deposit is unconditional", func(mt *mtest.T) {
		repo := newRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: "inv-1"},
			{Key: "sku", Value: "SKU-1"},
			{Key: "currentQuantity", Value: int32(12)},
		}}))

		inv, err := repo.ApplyMovement(context.Background(), "inv-1",
			&Movement{ID: "m1", Type: MovementPurchase, Quantity: 4, CreatedAt: at})
		require.NoError(mt, err)
		assert.Equal(mt, 12, inv.CurrentQuantity)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		_, err = started.Command.LookupErr("query", "currentQuantity")
		assert.Error(mt, err)
	})

	mt.Run("reset after a concurrent movement is a conflict", func(mt *mtest.T) {
		repo := newRepo(mt)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(0)}, bson.E{Key: "nModified", Value: int32(0)}),
			countReply(1),
		)

		err := repo.ResetQuantity(context.Background(), "inv-1", 10, 3, at)
		assert.ErrorIs(mt, err, apperr.ErrConflict)
	})
}
