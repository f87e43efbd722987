package coupon

import "time"

// Coupon is a percentage discount code redeemable until its expiry date.
type Coupon struct {
	ID              string    `json:"id" bson:"_id"`
	CouponCode      string    `json:"couponCode" bson:"couponCode"`
	Description     string    `json:"description,omitempty" bson:"description,omitempty"`
	DiscountPercent float64   `json:"discountPercent" bson:"discountPercent"`
	MaxDiscount     float64   `json:"maxDiscount" bson:"maxDiscount"`     // 0 = uncapped
	MinOrderValue   float64   `json:"minOrderValue" bson:"minOrderValue"` // 0 = no minimum
	ExpiryDate      time.Time `json:"expiryDate" bson:"expiryDate"`
	IsActive        bool      `json:"isActive" bson:"isActive"`
	UsageLimit      int       `json:"usageLimit" bson:"usageLimit"` // 0 = unlimited
	UsedCount       int       `json:"usedCount" bson:"usedCount"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Exhausted reports whether the usage limit has been reached.
func (c *Coupon) Exhausted() bool {
	return c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit
}

// CreateCouponRequest is the payload for creating a coupon.
type CreateCouponRequest struct {
	CouponCode      string    `json:"couponCode"`
	Description     string    `json:"description"`
	DiscountPercent float64   `json:"discountPercent"`
	MaxDiscount     float64   `json:"maxDiscount"`
	MinOrderValue   float64   `json:"minOrderValue"`
	ExpiryDate      time.Time `json:"expiryDate"`
	IsActive        *bool     `json:"isActive,omitempty"` // defaults to true
	UsageLimit      int       `json:"usageLimit"`
}

// UpdateCouponRequest carries the fields to change; nil fields are left as they are.
type UpdateCouponRequest struct {
	CouponCode      *string    `json:"couponCode,omitempty"`
	Description     *string    `json:"description,omitempty"`
	DiscountPercent *float64   `json:"discountPercent,omitempty"`
	MaxDiscount     *float64   `json:"maxDiscount,omitempty"`
	MinOrderValue   *float64   `json:"minOrderValue,omitempty"`
	ExpiryDate      *time.Time `json:"expiryDate,omitempty"`
	IsActive        *bool      `json:"isActive,omitempty"`
	UsageLimit      *int       `json:"usageLimit,omitempty"`
}

// ApplyCouponRequest asks for the discount a code gives on an order amount.
type ApplyCouponRequest struct {
	CouponCode  string  `json:"couponCode"`
	OrderAmount float64 `json:"orderAmount"`
}

// ApplyCouponResult is the priced outcome of a redemption.
type ApplyCouponResult struct {
	CouponCode  string  `json:"couponCode"`
	OrderAmount float64 `json:"orderAmount"`
	Discount    float64 `json:"discount"`
	FinalAmount float64 `json:"finalAmount"`
}

// ListFilter narrows List results.
type ListFilter struct {
	Active *bool
	Skip   int
	Limit  int
}
