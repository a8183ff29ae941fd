package ports

import (
	"context"

	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/domain"
)

// RegisterInput carries a self-service sign-up. The resulting account starts
// in status pending and has no sponsor.
type RegisterInput struct {
	Name  string `validate:"required"`
	Email string `validate:"omitempty,email"`
	Phone string `validate:"omitempty,min=7"`
	Actor string `validate:"required"`
}

// RecruitInput carries the creation of a new member by an existing sponsor.
// The resulting account starts active with the sponsor back-reference set.
type RecruitInput struct {
	SponsorID string `validate:"required"`
	Name      string `validate:"required"`
	Email     string `validate:"omitempty,email"`
	Phone     string `validate:"omitempty,min=7"`
	Actor     string `validate:"required"`
}

// MemberService covers the user lifecycle entry points: registration and
// sponsor-driven recruitment. Balance mutations are out of its reach; those
// go through the Ledger.
type MemberService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Recruit(ctx context.Context, input RecruitInput) (*domain.User, error)
}
