package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/domain"
	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/ports"
)

func seedNetwork(t *testing.T, store *stubStore) {
	t.Helper()
	store.seedUsers(t,
		domain.User{ID: "root", Name: "Root", Role: domain.RoleUser},
		domain.User{ID: "a", Name: "A", SponsorID: "root", Role: domain.RoleUser},
		domain.User{ID: "b", Name: "B", SponsorID: "root", Role: domain.RoleUser},
		domain.User{ID: "c", Name: "C", SponsorID: "a", Role: domain.RoleUser},
	)
	store.seedTickets(t,
		domain.Ticket{TicketNumber: "T-1", UserID: "a", GrandTotal: 10},
		domain.Ticket{TicketNumber: "T-2", UserID: "b", GrandTotal: 20},
		domain.Ticket{TicketNumber: "T-3", UserID: "c", GrandTotal: 5},
	)
}

func TestBuildPerUserTree(t *testing.T) {
	store := newStubStore()
	seedNetwork(t, store)
	svc := NewNetworkService(store, testLogger())

	tree, err := svc.Build(context.Background(), ports.BuildTreeInput{RootID: "root"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	if tree.ID != "root" || tree.Level != 0 || tree.Sales != 0 {
		t.Fatalf("root node = %+v, want id=root level=0 sales=0", tree)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(tree.Children))
	}

	a, b := tree.Children[0], tree.Children[1]
	if a.ID != "a" || a.Sales != 10 || a.Level != 1 {
		t.Errorf("first child = %+v, want id=a sales=10 level=1", a)
	}
	if b.ID != "b" || b.Sales != 20 || b.Level != 1 {
		t.Errorf("second child = %+v, want id=b sales=20 level=1", b)
	}
	if len(a.Children) != 1 || a.Children[0].ID != "c" || a.Children[0].Sales != 5 {
		t.Errorf("a.Children = %+v, want single node c with sales 5", a.Children)
	}
	if len(b.Children) != 0 {
		t.Errorf("b should be a leaf, got %d children", len(b.Children))
	}
}

func TestBuildTreeLevelInvariant(t *testing.T) {
	store := newStubStore()
	seedNetwork(t, store)
	svc := NewNetworkService(store, testLogger())

	tree, err := svc.Build(context.Background(), ports.BuildTreeInput{RootID: "root"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	var walk func(n *domain.ReferralNode)
	walk = func(n *domain.ReferralNode) {
		for _, child := range n.Children {
			if child.Level != n.Level+1 {
				t.Errorf("node %s level = %d, parent %s level = %d", child.ID, child.Level, n.ID, n.Level)
			}
			walk(child)
		}
	}
	walk(tree)
}

func TestBuildTreeUnknownRoot(t *testing.T) {
	store := newStubStore()
	seedNetwork(t, store)
	svc := NewNetworkService(store, testLogger())

	_, err := svc.Build(context.Background(), ports.BuildTreeInput{RootID: "nobody"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestBuildGlobalTree(t *testing.T) {
	store := newStubStore()
	store.seedUsers(t,
		domain.User{ID: "r1", Name: "First Root"},
		domain.User{ID: "r2", Name: "Second Root"},
		domain.User{ID: "child", Name: "Child", SponsorID: "r1"},
	)
	store.seedTickets(t,
		domain.Ticket{TicketNumber: "T-1", UserID: "r1", GrandTotal: 7},
		domain.Ticket{TicketNumber: "T-2", UserID: "child", GrandTotal: 3},
	)
	svc := NewNetworkService(store, testLogger())

	tree, err := svc.Build(context.Background(), ports.BuildTreeInput{Global: true})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	if tree.ID != GlobalRootID || tree.Level != 0 {
		t.Fatalf("global root = %+v, want id=%s level=0", tree, GlobalRootID)
	}
	if tree.Sales != 10 {
		t.Errorf("global root sales = %v, want 10 (sum of entire sales map)", tree.Sales)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("global root has %d children, want 2 orphans", len(tree.Children))
	}
	if tree.Children[0].ID != "r1" || tree.Children[1].ID != "r2" {
		t.Errorf("orphan order = [%s %s], want insertion order [r1 r2]", tree.Children[0].ID, tree.Children[1].ID)
	}
	if len(tree.Children[0].Children) != 1 || tree.Children[0].Children[0].ID != "child" {
		t.Errorf("r1 subtree not expanded: %+v", tree.Children[0].Children)
	}
}

// A sponsorship cycle in the user set must not hang the builder: the
// revisited user becomes a leaf instead of recursing forever.
func TestBuildTreeTerminatesOnCycle(t *testing.T) {
	store := newStubStore()
	store.seedUsers(t,
		domain.User{ID: "u1", Name: "U1", SponsorID: "u2"},
		domain.User{ID: "u2", Name: "U2", SponsorID: "u1"},
	)
	svc := NewNetworkService(store, testLogger())

	tree, err := svc.Build(context.Background(), ports.BuildTreeInput{RootID: "u1"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	if len(tree.Children) != 1 || tree.Children[0].ID != "u2" {
		t.Fatalf("u1 children = %+v, want [u2]", tree.Children)
	}
	revisited := tree.Children[0].Children
	if len(revisited) != 1 || revisited[0].ID != "u1" {
		t.Fatalf("u2 children = %+v, want revisited u1", revisited)
	}
	if len(revisited[0].Children) != 0 {
		t.Error("revisited node must be a leaf with zero children")
	}
}

// Every user reachable from the root through sponsor back-references appears
// exactly once in the built tree.
func TestBuildTreeCompleteness(t *testing.T) {
	store := newStubStore()
	seedNetwork(t, store)
	svc := NewNetworkService(store, testLogger())

	tree, err := svc.Build(context.Background(), ports.BuildTreeInput{RootID: "root"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	seen := make(map[string]int)
	var walk func(n *domain.ReferralNode)
	walk = func(n *domain.ReferralNode) {
		seen[n.ID]++
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(tree)

	for _, id := range []string{"root", "a", "b", "c"} {
		if seen[id] != 1 {
			t.Errorf("user %s appears %d times in tree, want exactly once", id, seen[id])
		}
	}
}
