// Package seed loads reference data (milestones, coupons) from a YAML file
// at startup. Entries that already exist are left alone.
package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/modules/coupon"
	"github.com/georgemunganga/vendora-backend/internal/modules/milestone"
	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type File struct {
	Milestones map[string][]milestone.CreateMilestoneRequest `yaml:"milestones"`
	Coupons    []Coupon                                      `yaml:"coupons"`
}

type Coupon struct {
	CouponCode      string    `yaml:"couponCode"`
	Description     string    `yaml:"description"`
	DiscountPercent float64   `yaml:"discountPercent"`
	MaxDiscount     float64   `yaml:"maxDiscount"`
	MinOrderValue   float64   `yaml:"minOrderValue"`
	ExpiryDate      time.Time `yaml:"expiryDate"`
	UsageLimit      int       `yaml:"usageLimit"`
}

// Result counts what Apply inserted and skipped.
type Result struct {
	Milestones int `json:"milestones"`
	Coupons    int `json:"coupons"`
	Skipped    int `json:"skipped"`
}

type MilestoneSeeder interface {
	EnsureMilestone(ctx context.Context, kind milestone.Kind, req milestone.CreateMilestoneRequest) (bool, error)
}

type CouponSeeder interface {
	CreateCoupon(ctx context.Context, req coupon.CreateCouponRequest) (*coupon.Coupon, error)
}

func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(b)
}

// Parse decodes and checks a seed document without touching storage.
func Parse(b []byte) (*File, error) {
	f := &File{}
	if err := yaml.Unmarshal(b, f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for kind := range f.Milestones {
		if !milestone.Kind(kind).Valid() {
			return nil, fmt.Errorf("seed file: unknown milestone kind %q", kind)
		}
	}
	return f, nil
}

func Apply(ctx context.Context, f *File, milestones MilestoneSeeder, coupons CouponSeeder, log *zap.Logger) (*Result, error) {
	res := &Result{}
	for kind, reqs := range f.Milestones {
		for _, req := range reqs {
			created, err := milestones.EnsureMilestone(ctx, milestone.Kind(kind), req)
			if err != nil {
				return res, fmt.Errorf("seed %s milestone %q: %w", kind, req.Title, err)
			}
			if created {
				res.Milestones++
			} else {
				res.Skipped++
			}
		}
	}

	for _, c := range f.Coupons {
		_, err := coupons.CreateCoupon(ctx, coupon.CreateCouponRequest{
			CouponCode:      c.CouponCode,
			Description:     c.Description,
			DiscountPercent: c.DiscountPercent,
			MaxDiscount:     c.MaxDiscount,
			MinOrderValue:   c.MinOrderValue,
			ExpiryDate:      c.ExpiryDate,
			UsageLimit:      c.UsageLimit,
		})
		switch {
		case err == nil:
			res.Coupons++
		case apperr.Is(err, apperr.ErrConflict):
			res.Skipped++
		case apperr.Is(err, apperr.ErrValidation):
			// typically an expired code left in the file
			log.Warn("skip seed coupon", zap.String("code", c.CouponCode), zap.Error(err))
			res.Skipped++
		default:
			return res, fmt.Errorf("seed coupon %q: %w", c.CouponCode, err)
		}
	}

	log.Info("seed applied",
		zap.Int("milestones", res.Milestones), zap.Int("coupons", res.Coupons), zap.Int("skipped", res.Skipped))
	return res, nil
}
