package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/domain"
	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/ports"
	"github.com/ilitchv/MiAppCompleta1-sub001/internal/metrics"
)

// GlobalRootID identifies the synthetic root of the organisation-wide tree.
const GlobalRootID = "organization"

// NetworkService reconstructs the sponsorship tree from the flat user set and
// the aggregated sales map.
type NetworkService struct {
	store ports.RecordStore
	log   zerolog.Logger
}

// NewNetworkService returns a NetworkService backed by the given record store.
func NewNetworkService(store ports.RecordStore, log zerolog.Logger) *NetworkService {
	return &NetworkService{store: store, log: log}
}

// Build derives the referral tree rooted per input. The tree is recomputed
// from scratch on every call: sales are re-aggregated from the ticket
// collection and the user set is re-read, so the result always reflects the
// store as of this call.
func (s *NetworkService) Build(ctx context.Context, input ports.BuildTreeInput) (*domain.ReferralNode, error) {
	start := time.Now()

	users, err := loadUsers(ctx, s.store, s.log)
	if err != nil {
		return nil, err
	}
	tickets, err := loadTickets(ctx, s.store, s.log)
	if err != nil {
		return nil, err
	}
	sales := AggregateSales(tickets)

	var root *domain.ReferralNode
	mode := "user"
	if input.Global {
		mode = "global"
		root = buildGlobalTree(users, sales)
	} else {
		var target *domain.User
		for i := range users {
			if users[i].ID == input.RootID {
				target = &users[i]
				break
			}
		}
		if target == nil {
			return nil, fmt.Errorf("build tree: %w", domain.ErrUserNotFound)
		}
		root = buildNode(target, users, sales, 0, make(map[string]bool))
	}

	metrics.TreeBuildDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	s.log.Debug().Str("mode", mode).Str("root_id", root.ID).Msg("referral tree rebuilt")
	return root, nil
}

// buildGlobalTree assembles the organisation-wide view: a synthetic root
// whose children are all unsponsored users, carrying the sum of the entire
// sales map.
func buildGlobalTree(users []domain.User, sales map[string]float64) *domain.ReferralNode {
	var total float64
	for _, v := range sales {
		total += v
	}
	root := &domain.ReferralNode{
		ID:    GlobalRootID,
		Name:  "Organization",
		Level: 0,
		Role:  domain.RoleAdmin,
		Sales: total,
	}
	visited := make(map[string]bool)
	for i := range users {
		if users[i].SponsorID == "" {
			root.Children = append(root.Children, buildNode(&users[i], users, sales, 1, visited))
		}
	}
	return root
}

// buildNode expands one user into a tree node. Children are collected in the
// insertion order of the user collection. The visited set guards against
// sponsorship cycles in malformed data: a revisited id becomes a leaf with no
// children instead of recursing forever.
func buildNode(u *domain.User, users []domain.User, sales map[string]float64, level int, visited map[string]bool) *domain.ReferralNode {
	node := &domain.ReferralNode{
		ID:    u.ID,
		Name:  u.Name,
		Level: level,
		Role:  u.Role,
		Sales: sales[u.ID],
	}
	if visited[u.ID] {
		return node
	}
	visited[u.ID] = true

	for i := range users {
		if users[i].SponsorID == u.ID {
			node.Children = append(node.Children, buildNode(&users[i], users, sales, level+1, visited))
		}
	}
	return node
}
