package salesrep

import "time"

// SalesRep onboards vendors in a region.
type SalesRep struct {
	ID               string    `json:"id" bson:"_id"`
	Name             string    `json:"name" bson:"name"`
	Email            string    `json:"email" bson:"email"`
	Phone            string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Region           string    `json:"region,omitempty" bson:"region,omitempty"`
	ReferralCode     string    `json:"referralCode" bson:"referralCode"`
	VendorsOnboarded int       `json:"vendorsOnboarded" bson:"vendorsOnboarded"`
	IsActive         bool      `json:"isActive" bson:"isActive"`
	CreatedAt        time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt" bson:"updatedAt"`
}

type CreateSalesRepRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Region       string `json:"region"`
	ReferralCode string `json:"referralCode"`
}

type ListFilter struct {
	Region string
	Skip   int
	Limit  int
}
