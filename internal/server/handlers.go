package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/flowgrid/flowgrid/pkg/errors"
	"github.com/flowgrid/flowgrid/pkg/flow"
	"github.com/flowgrid/flowgrid/pkg/flow/adapt"
	"github.com/flowgrid/flowgrid/pkg/observability"
	"github.com/flowgrid/flowgrid/pkg/pipeline"
	"github.com/flowgrid/flowgrid/pkg/store"
)

// LayoutOptions are the layout and render options shared by the ad-hoc
// layout endpoint and the stored-workflow layout endpoint.
type LayoutOptions struct {
	Orientation     string  `json:"orientation,omitempty"`
	Routing         string  `json:"routing,omitempty"`
	Width           float64 `json:"width,omitempty"`
	Height          float64 `json:"height,omitempty"`
	NodeWidth       float64 `json:"node_width,omitempty"`
	NodeHeight      float64 `json:"node_height,omitempty"`
	Padding         float64 `json:"padding,omitempty"`
	MinSpacing      float64 `json:"min_spacing,omitempty"`
	MaxLevelSpacing float64 `json:"max_level_spacing,omitempty"`

	Formats    []string `json:"formats,omitempty"`
	Style      string   `json:"style,omitempty"`
	HideLabels bool     `json:"hide_labels,omitempty"`
	Refresh    bool     `json:"refresh,omitempty"`
}

func (o LayoutOptions) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Orientation:     o.Orientation,
		Routing:         o.Routing,
		Width:           o.Width,
		Height:          o.Height,
		NodeWidth:       o.NodeWidth,
		NodeHeight:      o.NodeHeight,
		Padding:         o.Padding,
		MinSpacing:      o.MinSpacing,
		MaxLevelSpacing: o.MaxLevelSpacing,
		Formats:         o.Formats,
		Style:           o.Style,
		HideLabels:      o.HideLabels,
		Refresh:         o.Refresh,
	}
}

// LayoutRequest is the body for POST /v1/layout. Exactly one of Graph or
// Source must be set; Source is a legacy document that goes through the
// adapt stage.
type LayoutRequest struct {
	Graph  *flow.Graph     `json:"graph,omitempty"`
	Source json.RawMessage `json:"source,omitempty"`
	LayoutOptions
}

// LayoutResponse is the result of a layout run. Artifact bytes are
// base64-encoded by the JSON marshaller.
type LayoutResponse struct {
	GraphHash string            `json:"graph_hash"`
	Report    adapt.Report      `json:"report"`
	Layout    flow.Layout       `json:"layout"`
	Artifacts map[string][]byte `json:"artifacts,omitempty"`
}

func (s *Service) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, err)
		return
	}

	opts := req.pipelineOptions()
	opts.Graph = req.Graph
	opts.Source = []byte(req.Source)

	s.runLayout(w, r.Context(), opts)
}

func (s *Service) runLayout(w http.ResponseWriter, ctx context.Context, opts pipeline.Options) {
	opts.Logger = s.logger
	res, err := s.runner.Execute(ctx, opts)
	if err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeInvalidInput, err, "layout failed")
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LayoutResponse{
		GraphHash: res.GraphHash,
		Report:    res.Report,
		Layout:    res.Layout,
		Artifacts: res.Artifacts,
	})
}

// WorkflowRequest is the body for creating or updating a workflow.
type WorkflowRequest struct {
	Name  string     `json:"name"`
	Graph flow.Graph `json:"graph"`
}

// WorkflowListResponse lists stored workflows.
type WorkflowListResponse struct {
	Workflows []store.Workflow `json:"workflows"`
}

func (s *Service) handleCreateWorkflow(w http.ResponseWriter, r *http.Request) {
	var req WorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, err)
		return
	}
	if err := errors.ValidateWorkflowName(req.Name); err != nil {
		writeError(w, err)
		return
	}
	if err := req.Graph.Validate(); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidGraph, err, "invalid graph"))
		return
	}

	wf := store.New(req.Name, req.Graph)
	if err := s.storeOp(r.Context(), "create", func(ctx context.Context) error {
		return s.store.Create(ctx, wf)
	}); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, wf)
}

func (s *Service) handleListWorkflows(w http.ResponseWriter, r *http.Request) {
	var workflows []store.Workflow
	err := s.storeOp(r.Context(), "list", func(ctx context.Context) error {
		var err error
		workflows, err = s.store.List(ctx)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, WorkflowListResponse{Workflows: workflows})
}

func (s *Service) handleGetWorkflow(w http.ResponseWriter, r *http.Request) {
	wf, ok := s.loadWorkflow(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, wf)
}

func (s *Service) handleUpdateWorkflow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateWorkflowID(id); err != nil {
		writeError(w, err)
		return
	}

	var req WorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, err)
		return
	}
	if err := errors.ValidateWorkflowName(req.Name); err != nil {
		writeError(w, err)
		return
	}
	if err := req.Graph.Validate(); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidGraph, err, "invalid graph"))
		return
	}

	wf := store.Workflow{ID: id, Name: req.Name, Graph: req.Graph}
	if err := s.storeOp(r.Context(), "update", func(ctx context.Context) error {
		return s.store.Update(ctx, wf)
	}); err != nil {
		writeError(w, err)
		return
	}

	updated, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Service) handleDeleteWorkflow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateWorkflowID(id); err != nil {
		writeError(w, err)
		return
	}

	if err := s.storeOp(r.Context(), "delete", func(ctx context.Context) error {
		return s.store.Delete(ctx, id)
	}); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleWorkflowLayout(w http.ResponseWriter, r *http.Request) {
	wf, ok := s.loadWorkflow(w, r)
	if !ok {
		return
	}

	var req LayoutOptions
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, err)
			return
		}
	}

	opts := req.pipelineOptions()
	opts.Graph = &wf.Graph
	s.runLayout(w, r.Context(), opts)
}

// loadWorkflow resolves the {id} path parameter, writing the error response
// itself when the ID is invalid or unknown.
func (s *Service) loadWorkflow(w http.ResponseWriter, r *http.Request) (store.Workflow, bool) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateWorkflowID(id); err != nil {
		writeError(w, err)
		return store.Workflow{}, false
	}

	var wf store.Workflow
	err := s.storeOp(r.Context(), "get", func(ctx context.Context) error {
		var err error
		wf, err = s.store.Get(ctx, id)
		return err
	})
	if err != nil {
		writeError(w, err)
		return store.Workflow{}, false
	}
	return wf, true
}

// storeOp runs a store operation and reports it to the store hooks.
func (s *Service) storeOp(ctx context.Context, op string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	observability.Store().OnStoreOp(ctx, op, time.Since(start), err)
	return err
}
