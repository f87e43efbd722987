package main

import (
	"context"
	"database/sql"

	"github.com/georgemunganga/vendora-backend/internal/modules/availability"
	"github.com/georgemunganga/vendora-backend/internal/modules/booking"
	"github.com/georgemunganga/vendora-backend/internal/modules/coupon"
	"github.com/georgemunganga/vendora-backend/internal/modules/emi"
	"github.com/georgemunganga/vendora-backend/internal/modules/franchise"
	"github.com/georgemunganga/vendora-backend/internal/modules/inventory"
	"github.com/georgemunganga/vendora-backend/internal/modules/milestone"
	"github.com/georgemunganga/vendora-backend/internal/modules/reseller"
	"github.com/georgemunganga/vendora-backend/internal/modules/reward"
	"github.com/georgemunganga/vendora-backend/internal/modules/salesrep"
	"github.com/georgemunganga/vendora-backend/internal/modules/user"
	"github.com/georgemunganga/vendora-backend/internal/modules/vendor"
	"go.mongodb.org/mongo-driver/mongo"
)

type repositories struct {
	users        user.Repository
	salesReps    salesrep.Repository
	franchises   franchise.Repository
	vendors      vendor.Repository
	coupons      coupon.Repository
	availability availability.Repository
	bookings     booking.Repository
	inventory    inventory.Repository
	resellers    reseller.Repository
	milestones   milestone.Repository
	rewards      reward.Repository
	emi          emi.Repository
}

func postgresRepositories(db *sql.DB) *repositories {
	return &repositories{
		users:        user.NewPostgresRepository(db),
		salesReps:    salesrep.NewPostgresRepository(db),
		franchises:   franchise.NewPostgresRepository(db),
		vendors:      vendor.NewPostgresRepository(db),
		coupons:      coupon.NewPostgresRepository(db),
		availability: availability.NewPostgresRepository(db),
		bookings:     booking.NewPostgresRepository(db),
		inventory:    inventory.NewPostgresRepository(db),
		resellers:    reseller.NewPostgresRepository(db),
		milestones:   milestone.NewPostgresRepository(db),
		rewards:      reward.NewPostgresRepository(db),
		emi:          emi.NewPostgresRepository(db),
	}
}

// mongoRepositories builds every collection-backed repository; each
// constructor ensures its indexes.
func mongoRepositories(ctx context.Context, db *mongo.Database) (*repositories, error) {
	r := &repositories{}
	var err error
	if r.users, err = user.NewMongoRepository(ctx, db); err != nil {
		return nil, err
	}
	if r.salesReps, err = salesrep.NewMongoRepository(ctx, db); err != nil {
		return nil, err
	}
	if r.franchises, err = franchise.NewMongoRepository(ctx, db); err != nil {
		return nil, err
	}
	if r.vendors, err = vendor.NewMongoRepository(ctx, db); err != nil {
		return nil, err
	}
	if r.coupons, err = coupon.NewMongoRepository(ctx, db); err != nil {
		return nil, err
	}
	if r.availability, err = availability.NewMongoRepository(ctx, db); err != nil {
		return nil, err
	}
	if r.bookings, err = booking.NewMongoRepository(ctx, db); err != nil {
		return nil, err
	}
	if r.inventory, err = inventory.NewMongoRepository(ctx, db); err != nil {
		return nil, err
	}
	if r.resellers, err = reseller.NewMongoRepository(ctx, db); err != nil {
		return nil, err
	}
	if r.milestones, err = milestone.NewMongoRepository(ctx, db); err != nil {
		return nil, err
	}
	if r.rewards, err = reward.NewMongoRepository(ctx, db); err != nil {
		return nil, err
	}
	if r.emi, err = emi.NewMongoRepository(ctx, db); err != nil {
		return nil, err
	}
	return r, nil
}
