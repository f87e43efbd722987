package reseller

import "time"

// SnSReseller is a share-and-sell member earning commission on referred purchases.
type SnSReseller struct {
	ID                  string    `json:"id" bson:"_id"`
	UserID              string    `json:"userId" bson:"userId"`
	ReferralCode        string    `json:"referralCode" bson:"referralCode"`
	CommissionRate      float64   `json:"commissionRate" bson:"commissionRate"` // percent
	TotalPurchases      int       `json:"totalPurchases" bson:"totalPurchases"`
	TotalPurchaseAmount float64   `json:"totalPurchaseAmount" bson:"totalPurchaseAmount"`
	TotalCommission     float64   `json:"totalCommission" bson:"totalCommission"`
	IsActive            bool      `json:"isActive" bson:"isActive"`
	CreatedAt           time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt" bson:"updatedAt"`
}

type CreateResellerRequest struct {
	UserID         string  `json:"userId"`
	ReferralCode   string  `json:"referralCode"` // generated when empty
	CommissionRate float64 `json:"commissionRate"`
}

type UpdateResellerRequest struct {
	CommissionRate *float64 `json:"commissionRate,omitempty"`
	IsActive       *bool    `json:"isActive,omitempty"`
}

type PurchaseRequest struct {
	Amount float64 `json:"amount"`
}

// PurchaseResult is the reseller after the purchase plus the commission it earned.
type PurchaseResult struct {
	Reseller   *SnSReseller `json:"reseller"`
	Amount     float64      `json:"amount"`
	Commission float64      `json:"commission"`
}
