package store

import (
	"context"
	"testing"
	"time"

	"github.com/flowgrid/flowgrid/pkg/errors"
	"github.com/flowgrid/flowgrid/pkg/flow"
)

func testGraph() flow.Graph {
	return flow.Graph{
		Nodes: []flow.Node{
			{ID: "s1", Kind: flow.KindState, Label: "Draft"},
			{ID: "ev1", Kind: flow.KindEvent, Label: "Submit"},
		},
		Edges: []flow.Edge{{ID: "e1", Source: "s1", Target: "ev1"}},
	}
}

func TestNewWorkflow(t *testing.T) {
	w := New("Order Flow", testGraph())

	if w.ID == "" {
		t.Error("New should assign an ID")
	}
	if err := errors.ValidateWorkflowID(w.ID); err != nil {
		t.Errorf("generated ID should be a valid workflow ID: %v", err)
	}
	if w.CreatedAt.IsZero() || !w.CreatedAt.Equal(w.UpdatedAt) {
		t.Error("timestamps should be set and equal at creation")
	}
}

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	w := New("Order Flow", testGraph())
	if err := s.Create(ctx, w); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Duplicate ID conflicts
	if err := s.Create(ctx, w); !errors.Is(err, errors.ErrCodeConflict) {
		t.Errorf("duplicate Create = %v, want CONFLICT", err)
	}

	got, err := s.Get(ctx, w.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Order Flow" || len(got.Graph.Nodes) != 2 {
		t.Errorf("Get returned wrong workflow: %+v", got)
	}

	// Update bumps UpdatedAt
	got.Name = "Renamed"
	time.Sleep(time.Millisecond)
	if err := s.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	updated, _ := s.Get(ctx, w.ID)
	if updated.Name != "Renamed" {
		t.Errorf("Name = %q after update", updated.Name)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Error("Update should bump UpdatedAt")
	}

	if err := s.Delete(ctx, w.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, w.ID); !errors.Is(err, errors.ErrCodeWorkflowNotFound) {
		t.Errorf("Get after delete = %v, want WORKFLOW_NOT_FOUND", err)
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, errors.ErrCodeWorkflowNotFound) {
		t.Errorf("Get = %v, want WORKFLOW_NOT_FOUND", err)
	}
	if err := s.Update(ctx, Workflow{ID: "missing"}); !errors.Is(err, errors.ErrCodeWorkflowNotFound) {
		t.Errorf("Update = %v, want WORKFLOW_NOT_FOUND", err)
	}
	if err := s.Delete(ctx, "missing"); !errors.Is(err, errors.ErrCodeWorkflowNotFound) {
		t.Errorf("Delete = %v, want WORKFLOW_NOT_FOUND", err)
	}
}

func TestMemoryStoreListOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	a := New("a", testGraph())
	b := New("b", testGraph())
	if err := s.Create(ctx, a); err != nil {
		t.Fatal(err)
	}
	if err := s.Create(ctx, b); err != nil {
		t.Fatal(err)
	}

	// Touch a so it becomes the most recent.
	time.Sleep(time.Millisecond)
	if err := s.Update(ctx, a); err != nil {
		t.Fatal(err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List returned %d workflows, want 2", len(list))
	}
	if list[0].ID != a.ID {
		t.Errorf("most recently updated workflow should list first, got %s", list[0].Name)
	}
}

func TestMemoryStoreListEmpty(t *testing.T) {
	list, err := NewMemoryStore().List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("empty store should list nothing, got %d", len(list))
	}
}
