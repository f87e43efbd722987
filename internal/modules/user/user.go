package user

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a platform account. The password hash never leaves the server.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	FirstName    string    `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty" bson:"lastName,omitempty"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}
