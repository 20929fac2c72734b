package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation. The HTTP
// service uses this to keep per-workflow cache entries apart from ad-hoc
// layout requests, so deleting a workflow can drop its cached artifacts
// without touching anything else.
//
// Example usage:
//
//	// Workflow-scoped keys for stored workflows
//	wfKeyer := NewScopedKeyer(NewDefaultKeyer(), "wf:"+workflowID+":")
//
//	// Unscoped keys for one-shot layout requests
//	keyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
