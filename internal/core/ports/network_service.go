package ports

import (
	"context"

	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/domain"
)

// BuildTreeInput selects the root of the requested referral tree.
//
// When Global is true a synthetic organisation-wide root is returned whose
// direct children are all users without a sponsor. Otherwise RootID names the
// user the tree is rooted at.
type BuildTreeInput struct {
	RootID string
	Global bool
}

// NetworkService derives the referral tree from the flat user set. The result
// is rebuilt from scratch on every call; callers wanting a view that reflects
// a later mutation simply call Build again.
type NetworkService interface {
	Build(ctx context.Context, input BuildTreeInput) (*domain.ReferralNode, error)
}
