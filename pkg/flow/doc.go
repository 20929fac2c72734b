// Package flow defines the canonical workflow graph model shared by the
// layout engine, the rendering sinks, the HTTP API, and storage.
//
// A workflow is a directed graph of nodes (states and events) and labeled
// edges (transitions). The graph may be cyclic, disconnected, and may carry
// parallel edges between the same ordered pair of nodes. Nodes and edges are
// immutable inputs: the layout engine never mutates caller-owned records, it
// produces parallel maps keyed by ID.
//
// The serialization format is JSON (files, API) and BSON (workflow store),
// designed for round-trip fidelity: import → layout → export → re-import
// produces identical structures.
package flow
