// Package store persists named workflows for the HTTP service.
//
// A stored workflow is the canonical graph plus naming metadata; computed
// layouts are never persisted here. Layouts are cheap and deterministic, so
// they live in the cache keyed by content hash, and deleting or updating a
// workflow cannot leave a stale layout behind.
//
// Two backends are provided:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for production deployments
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/flowgrid/flowgrid/pkg/errors"
	"github.com/flowgrid/flowgrid/pkg/flow"
)

// Workflow is a stored workflow definition.
type Workflow struct {
	ID        string     `json:"id" bson:"id"`
	Name      string     `json:"name" bson:"name"`
	Graph     flow.Graph `json:"graph" bson:"graph"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// New creates a workflow with a fresh ID and timestamps. The graph must
// already be validated; the store does not re-validate.
func New(name string, g flow.Graph) Workflow {
	now := time.Now().UTC()
	return Workflow{
		ID:        uuid.NewString(),
		Name:      name,
		Graph:     g,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Store is the interface for workflow storage backends.
type Store interface {
	// Create stores a new workflow. A duplicate ID is a CONFLICT error.
	Create(ctx context.Context, w Workflow) error

	// Get retrieves a workflow by ID.
	// Returns a WORKFLOW_NOT_FOUND error if it does not exist.
	Get(ctx context.Context, id string) (Workflow, error)

	// Update replaces the name and graph of an existing workflow and bumps
	// UpdatedAt. Returns a WORKFLOW_NOT_FOUND error if it does not exist.
	Update(ctx context.Context, w Workflow) error

	// Delete removes a workflow.
	// Returns a WORKFLOW_NOT_FOUND error if it does not exist.
	Delete(ctx context.Context, id string) error

	// List returns all workflows ordered by most recently updated.
	List(ctx context.Context) ([]Workflow, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NotFound builds the standard not-found error for a workflow ID.
func NotFound(id string) error {
	return errors.New(errors.ErrCodeWorkflowNotFound, "workflow %s not found", id)
}

// Conflict builds the standard duplicate-ID error.
func Conflict(id string) error {
	return errors.New(errors.ErrCodeConflict, "workflow %s already exists", id)
}
