package ports

import (
	"context"
	"time"

	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/domain"
)

// TransactionInput carries one balance-changing request into the Ledger.
// Actor is the acting principal recorded in the audit trail; it is always
// passed explicitly, never inferred from ambient state.
type TransactionInput struct {
	UserID string                 `validate:"required"`
	Kind   domain.TransactionKind `validate:"required,oneof=DEPOSIT WITHDRAW WIN"`
	Amount float64                `validate:"required,gt=0"`
	Note   string                 `validate:"required"`
	Actor  string                 `validate:"required"`
}

// TransactionResult is returned by the Ledger after a successful apply.
type TransactionResult struct {
	UserID     string
	Kind       domain.TransactionKind
	Amount     float64
	OldBalance float64
	NewBalance float64
	AppliedAt  time.Time
}

// LedgerService applies balance-changing transactions. The balance update and
// its audit entry form a single logical unit: if the audit trail cannot be
// written the balance mutation is rolled back.
type LedgerService interface {
	Apply(ctx context.Context, input TransactionInput) (*TransactionResult, error)
}
