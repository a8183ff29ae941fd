package domain

import "time"

// Role distinguishes ordinary members from administrators.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// UserStatus represents the lifecycle state of a member account.
type UserStatus string

const (
	StatusActive    UserStatus = "active"
	StatusPending   UserStatus = "pending"
	StatusSuspended UserStatus = "suspended"
)

// User is the core member record: identity, sponsorship back-reference and
// funds. Balance may only be mutated through the Ledger.
type User struct {
	ID             string     `json:"id" bson:"id"`
	Name           string     `json:"name" bson:"name"`
	Email          string     `json:"email,omitempty" bson:"email,omitempty"`
	Phone          string     `json:"phone,omitempty" bson:"phone,omitempty"`
	SponsorID      string     `json:"sponsorId,omitempty" bson:"sponsorId,omitempty"`
	Balance        float64    `json:"balance" bson:"balance"`
	PendingBalance float64    `json:"pendingBalance" bson:"pendingBalance"`
	Role           Role       `json:"role" bson:"role"`
	Status         UserStatus `json:"status" bson:"status"`
	CreatedAt      time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" bson:"updated_at"`
}
