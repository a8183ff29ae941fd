package domain

import "time"

// AuditAction enumerates the mutating operations the audit trail records.
type AuditAction string

const (
	ActionDeposit        AuditAction = "deposit"
	ActionWithdraw       AuditAction = "withdraw"
	ActionWin            AuditAction = "win"
	ActionUserRegistered AuditAction = "user_registered"
	ActionUserRecruited  AuditAction = "user_recruited"
)

// MaxAuditEntries caps the audit trail; once exceeded, the oldest entries are
// trimmed.
const MaxAuditEntries = 1000

// AuditLogEntry is the immutable record of one state-changing operation.
// Entries are stored most-recent-first and are never modified after append.
type AuditLogEntry struct {
	ID        string      `json:"id" bson:"id"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
	Action    AuditAction `json:"action" bson:"action"`
	TargetID  string      `json:"targetId" bson:"targetId"`
	Details   string      `json:"details" bson:"details"`
	Actor     string      `json:"actor" bson:"actor"`
	Amount    float64     `json:"amount,omitempty" bson:"amount,omitempty"`
}
