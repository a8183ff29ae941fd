package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/domain"
	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/ports"
	"github.com/ilitchv/MiAppCompleta1-sub001/internal/metrics"
)

// LedgerService is the sole writer of user balances. Every applied
// transaction persists the updated user record and an audit entry as one
// logical unit: when the audit append fails, the balance mutation is rolled
// back and the operation reports failure.
type LedgerService struct {
	store    ports.RecordStore
	audit    ports.AuditLog
	validate *validator.Validate
	log      zerolog.Logger
}

// NewLedgerService returns a LedgerService backed by the given store and
// audit trail.
func NewLedgerService(store ports.RecordStore, audit ports.AuditLog, log zerolog.Logger) *LedgerService {
	return &LedgerService{
		store:    store,
		audit:    audit,
		validate: validator.New(),
		log:      log,
	}
}

// Apply validates and applies one balance transaction.
func (s *LedgerService) Apply(ctx context.Context, input ports.TransactionInput) (*ports.TransactionResult, error) {
	if err := s.validate.Struct(input); err != nil {
		metrics.TransactionsRejectedTotal.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidTransaction, err)
	}

	// Serialised with every other users-collection writer in this process.
	usersMu.Lock()
	defer usersMu.Unlock()

	users, err := loadUsers(ctx, s.store, s.log)
	if err != nil {
		metrics.TransactionsRejectedTotal.WithLabelValues("store").Inc()
		return nil, err
	}

	idx := -1
	for i := range users {
		if users[i].ID == input.UserID {
			idx = i
			break
		}
	}
	if idx < 0 {
		metrics.TransactionsRejectedTotal.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("apply transaction: %w", domain.ErrUserNotFound)
	}

	prev := users[idx]
	oldBalance := prev.Balance

	var newBalance float64
	switch input.Kind {
	case domain.KindWithdraw:
		if input.Amount > oldBalance {
			metrics.TransactionsRejectedTotal.WithLabelValues("insufficient_funds").Inc()
			return nil, fmt.Errorf("apply transaction: %w", domain.ErrInsufficientFunds)
		}
		newBalance = oldBalance - input.Amount
	default: // DEPOSIT, WIN
		newBalance = oldBalance + input.Amount
	}

	now := time.Now().UTC()
	users[idx].Balance = newBalance
	users[idx].UpdatedAt = now

	if err := saveUsers(ctx, s.store, users); err != nil {
		metrics.TransactionsRejectedTotal.WithLabelValues("store").Inc()
		return nil, err
	}

	entry := domain.AuditLogEntry{
		ID:        uuid.NewString(),
		Timestamp: now,
		Action:    input.Kind.AuditAction(),
		TargetID:  input.UserID,
		Details:   fmt.Sprintf("Old: $%.2f -> New: $%.2f (%s)", oldBalance, newBalance, input.Note),
		Actor:     input.Actor,
		Amount:    input.Amount,
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		// Roll the balance back so the trail never lags the ledger.
		users[idx] = prev
		if rbErr := saveUsers(ctx, s.store, users); rbErr != nil {
			s.log.Error().Err(rbErr).Str("user_id", input.UserID).Msg("balance rollback failed after audit append failure")
		}
		metrics.TransactionsRejectedTotal.WithLabelValues("store").Inc()
		return nil, fmt.Errorf("apply transaction: audit append: %w", err)
	}

	metrics.TransactionsAppliedTotal.WithLabelValues(string(input.Kind)).Inc()
	s.log.Info().
		Str("user_id", input.UserID).
		Str("kind", string(input.Kind)).
		Float64("amount", input.Amount).
		Float64("old_balance", oldBalance).
		Float64("new_balance", newBalance).
		Str("actor", input.Actor).
		Msg("transaction applied")

	return &ports.TransactionResult{
		UserID:     input.UserID,
		Kind:       input.Kind,
		Amount:     input.Amount,
		OldBalance: oldBalance,
		NewBalance: newBalance,
		AppliedAt:  now,
	}, nil
}
