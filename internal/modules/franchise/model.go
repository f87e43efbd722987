package franchise

import "time"

type Franchise struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	OwnerName string    `json:"ownerName,omitempty" bson:"ownerName,omitempty"`
	Region    string    `json:"region,omitempty" bson:"region,omitempty"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	IsActive  bool      `json:"isActive" bson:"isActive"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type CreateFranchiseRequest struct {
	Name      string `json:"name"`
	OwnerName string `json:"ownerName"`
	Region    string `json:"region"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type UpdateFranchiseRequest struct {
	Name      *string `json:"name,omitempty"`
	OwnerName *string `json:"ownerName,omitempty"`
	Region    *string `json:"region,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}
