// Package layout computes hierarchical layouts and routed edge paths for
// workflow graphs.
//
// The engine is a pure, deterministic function from (flow.Graph, Config) to
// a Result holding three derived structures:
//
//   - Levels: every node's integer hierarchy depth, assigned by breadth-first
//     traversal from the graph's entry points
//   - Positions: a 2-D center position for every node, arranged in readable
//     level buckets under the configured orientation
//   - Routes: a control-point path per edge, with lateral separation for
//     parallel edges and a distinct detour shape for backward (cyclic) flow
//
// All structures are recomputed from scratch on every call: there is no
// cached or incremental state, no I/O, and no shared mutable state between
// invocations. Callers that want memoization should key on a hash of the
// serialized graph and config (see pkg/cache).
//
// Cyclic, disconnected, and parallel-edge inputs are all supported. Edges
// referencing node IDs absent from the input are skipped, never surfaced as
// errors. The engine cannot fail on a structurally valid graph.
package layout
