package domain

// TransactionKind enumerates the balance-changing operations the Ledger
// accepts.
type TransactionKind string

const (
	KindDeposit  TransactionKind = "DEPOSIT"
	KindWithdraw TransactionKind = "WITHDRAW"
	KindWin      TransactionKind = "WIN"
)

// AuditAction maps a transaction kind to the audit action recorded for it.
func (k TransactionKind) AuditAction() AuditAction {
	switch k {
	case KindWithdraw:
		return ActionWithdraw
	case KindWin:
		return ActionWin
	default:
		return ActionDeposit
	}
}
