// FILE: confetti/ref.go
package confetti

import "fmt"

// FilterFunc transforms a resolved reference value. Filters are expected to
// be pure; they are re-applied on every read.
type FilterFunc func(value any) any

// Ref is a lazily resolved cross-reference stored as a leaf value.
// Its path is resolved relative to the leaf hosting the reference, never to
// the node that happens to be reading it, so sibling references like
// NewRef(".other") keep working when the subtree is grafted elsewhere.
type Ref struct {
	Path   string
	Filter FilterFunc
}

// NewRef creates a cross-reference to the node at path.
func NewRef(path string) *Ref {
	return &Ref{Path: path}
}

// WithFilter attaches a transform applied to the resolved value on every
// read and returns the reference for chaining.
func (r *Ref) WithFilter(filter FilterFunc) *Ref {
	r.Filter = filter
	return r
}

func (r *Ref) String() string {
	return fmt.Sprintf("<Ref %s>", r.Path)
}

// resolveValue computes the node's effective value. References resolve
// recursively through chains; seen tracks host leaves already visited so a
// cycle fails with ErrCircularReference instead of looping. Resolution
// never mutates the tree.
func (c *Config) resolveValue(seen map[*Config]bool) (any, error) {
	if !c.leaf {
		return c, nil
	}
	ref, ok := c.value.(*Ref)
	if !ok {
		return c.value, nil
	}

	if seen[c] {
		return nil, fmt.Errorf("reference %q at %q: %w", ref.Path, c.PathString(), ErrCircularReference)
	}
	seen[c] = true

	target, err := c.getNode(ref.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving reference at %q: %w", c.PathString(), err)
	}
	value, err := target.resolveValue(seen)
	if err != nil {
		return nil, err
	}
	if ref.Filter != nil {
		value = ref.Filter(value)
	}
	return value, nil
}
