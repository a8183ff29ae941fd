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

// MemberService creates member accounts: self-service registrations start
// pending with no sponsor, sponsor-driven recruitments start active.
type MemberService struct {
	store    ports.RecordStore
	audit    ports.AuditLog
	validate *validator.Validate
	log      zerolog.Logger
}

// NewMemberService returns a MemberService backed by the given store and
// audit trail.
func NewMemberService(store ports.RecordStore, audit ports.AuditLog, log zerolog.Logger) *MemberService {
	return &MemberService{
		store:    store,
		audit:    audit,
		validate: validator.New(),
		log:      log,
	}
}

// Register creates a pending account for a self-service sign-up.
func (s *MemberService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	usersMu.Lock()
	defer usersMu.Unlock()

	users, err := loadUsers(ctx, s.store, s.log)
	if err != nil {
		return nil, err
	}

	user := newMember(input.Name, input.Email, input.Phone, "", domain.StatusPending)
	if err := saveUsers(ctx, s.store, append(users, user)); err != nil {
		return nil, err
	}

	s.record(ctx, user, domain.ActionUserRegistered, input.Actor,
		fmt.Sprintf("Registered %s (pending approval)", user.Name))
	return &user, nil
}

// Recruit creates an active account sponsored by an existing member. The
// sponsor must exist; a dangling back-reference would orphan the recruit in
// every derived tree.
func (s *MemberService) Recruit(ctx context.Context, input ports.RecruitInput) (*domain.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	usersMu.Lock()
	defer usersMu.Unlock()

	users, err := loadUsers(ctx, s.store, s.log)
	if err != nil {
		return nil, err
	}

	sponsorExists := false
	for i := range users {
		if users[i].ID == input.SponsorID {
			sponsorExists = true
			break
		}
	}
	if !sponsorExists {
		return nil, fmt.Errorf("recruit: %w", domain.ErrSponsorNotFound)
	}

	user := newMember(input.Name, input.Email, input.Phone, input.SponsorID, domain.StatusActive)
	if err := saveUsers(ctx, s.store, append(users, user)); err != nil {
		return nil, err
	}

	s.record(ctx, user, domain.ActionUserRecruited, input.Actor,
		fmt.Sprintf("Recruited %s under sponsor %s", user.Name, input.SponsorID))
	return &user, nil
}

// newMember builds a fresh user record with a generated id.
func newMember(name, email, phone, sponsorID string, status domain.UserStatus) domain.User {
	now := time.Now().UTC()
	return domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		SponsorID: sponsorID,
		Role:      domain.RoleUser,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// record writes the audit entry and bookkeeping for a created member. Audit
// failure is non-fatal here: account creation is not a balance mutation, so
// it follows the report-but-keep-going policy instead of rolling back.
func (s *MemberService) record(ctx context.Context, user domain.User, action domain.AuditAction, actor, details string) {
	entry := domain.AuditLogEntry{
		ID:        uuid.NewString(),
		Timestamp: user.CreatedAt,
		Action:    action,
		TargetID:  user.ID,
		Details:   details,
		Actor:     actor,
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to append audit entry for member creation")
	}

	metrics.MembersCreatedTotal.WithLabelValues(string(user.Status)).Inc()
	s.log.Info().
		Str("user_id", user.ID).
		Str("status", string(user.Status)).
		Str("sponsor_id", user.SponsorID).
		Str("actor", actor).
		Msg("member created")
}
