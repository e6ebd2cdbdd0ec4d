// FILE: confetti/config.go
package confetti

import (
	"fmt"
	"sort"
)

// UpdateFunc is an observer invoked after a mutation reaches a node.
// It receives the node that actually changed.
type UpdateFunc func(changed *Config)

// Config is a node in the configuration tree: either a leaf holding a
// terminal value (possibly a *Ref), or a branch holding named children.
// A whole tree and any of its subtrees are both represented by *Config.
type Config struct {
	parent *Config // non-owning back-reference, traversal only
	name   string  // key under parent, "" for a root

	leaf  bool
	value any // leaf only; scalar or *Ref

	children map[string]*Config // branch only
	order    []string           // child insertion order

	metadata  map[string]any
	callbacks []UpdateFunc
	backups   []*snapshot
	dirty     bool
}

// NewConfig builds a configuration tree from a nested mapping.
// Values may be scalars, nested map[string]any, *Ref cross-references,
// *Metadata wrappers, or prebuilt *Config subtrees (grafted by shared
// reference rather than copied).
// Keys of each mapping are processed in sorted order so construction is
// deterministic.
func NewConfig(initial map[string]any) (*Config, error) {
	root := newBranch(nil, "")
	for _, key := range sortedKeys(initial) {
		child, err := newNode(root, key, initial[key])
		if err != nil {
			return nil, err
		}
		root.attachChild(key, child)
	}
	return root, nil
}

// MustNewConfig is like NewConfig but panics on error.
func MustNewConfig(initial map[string]any) *Config {
	cfg, err := NewConfig(initial)
	if err != nil {
		panic(fmt.Sprintf("config construction failed: %v", err))
	}
	return cfg
}

// newBranch creates an empty branch node.
func newBranch(parent *Config, name string) *Config {
	return &Config{
		parent:   parent,
		name:     name,
		children: make(map[string]*Config),
	}
}

// newLeaf creates a leaf node holding value.
func newLeaf(parent *Config, name string, value any) *Config {
	return &Config{
		parent: parent,
		name:   name,
		leaf:   true,
		value:  value,
	}
}

// newNode builds a node from a raw construction value, recursing into
// nested mappings and honoring *Metadata wrappers and *Config grafts.
func newNode(parent *Config, name string, raw any) (*Config, error) {
	if name != "" && !isValidKeySegment(name) {
		return nil, fmt.Errorf("invalid key %q under %q", name, parent.PathString())
	}

	switch v := normalizeValue(raw).(type) {
	case *Metadata:
		node, err := newNode(parent, name, v.Value)
		if err != nil {
			return nil, err
		}
		for key, mv := range v.Meta {
			node.SetMetadata(key, mv)
		}
		return node, nil

	case *Config:
		// Graft: link the existing subtree by shared reference.
		if err := parent.checkGraft(v); err != nil {
			return nil, err
		}
		v.parent = parent
		v.name = name
		return v, nil

	case map[string]any:
		branch := newBranch(parent, name)
		for _, key := range sortedKeys(v) {
			child, err := newNode(branch, key, v[key])
			if err != nil {
				return nil, err
			}
			branch.attachChild(key, child)
		}
		return branch, nil

	default:
		return newLeaf(parent, name, v), nil
	}
}

// checkGraft rejects grafting a node as an ancestor of its own slot.
func (c *Config) checkGraft(graft *Config) error {
	for node := c; node != nil; node = node.parent {
		if node == graft {
			return fmt.Errorf("grafting %q under its own subtree: %w", graft.PathString(), ErrCannotSetValue)
		}
	}
	return nil
}

// attachChild inserts or replaces a child slot, preserving insertion order.
func (c *Config) attachChild(name string, child *Config) {
	if _, exists := c.children[name]; !exists {
		c.order = append(c.order, name)
	}
	c.children[name] = child
}

// detachChild removes a child slot and its order entry.
func (c *Config) detachChild(name string) {
	if _, exists := c.children[name]; !exists {
		return
	}
	delete(c.children, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// IsLeaf reports whether the node holds a terminal value.
func (c *Config) IsLeaf() bool {
	return c.leaf
}

// Name returns the node's key under its parent, or "" for a root.
func (c *Config) Name() string {
	return c.name
}

// Parent returns the enclosing branch, or nil for a root.
func (c *Config) Parent() *Config {
	return c.parent
}

// RootNode returns the topmost ancestor of the node.
func (c *Config) RootNode() *Config {
	node := c
	for node.parent != nil {
		node = node.parent
	}
	return node
}

// PathString returns the dotted path of the node from its root.
// The root itself yields "".
func (c *Config) PathString() string {
	if c.parent == nil {
		return ""
	}
	prefix := c.parent.PathString()
	if prefix == "" {
		return c.name
	}
	return prefix + "." + c.name
}

// Keys returns the child names of a branch in insertion order.
// A leaf has no keys.
func (c *Config) Keys() []string {
	if c.leaf {
		return nil
	}
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	return keys
}

// HasKey reports whether the branch has a direct child with the given name.
func (c *Config) HasKey(key string) bool {
	_, ok := c.children[key]
	return ok
}

// Get retrieves the effective value of a direct child by key.
// Leaf children have their cross-references resolved; branch children are
// returned as *Config.
func (c *Config) Get(key string) (any, error) {
	child, ok := c.children[key]
	if !ok {
		return nil, fmt.Errorf("key %q under %q: %w", key, c.PathString(), ErrPathNotFound)
	}
	return child.Value()
}

// Set assigns a value to an existing direct child by key.
// Creating previously nonexistent keys must go through Extend or AssignPath;
// setting an unknown key fails with ErrCannotSetValue.
func (c *Config) Set(key string, value any) error {
	child, ok := c.children[key]
	if !ok {
		return fmt.Errorf("key %q does not exist under %q, use Extend or AssignPath to create it: %w",
			key, c.PathString(), ErrCannotSetValue)
	}
	return child.SetValue(value)
}

// Value returns the node's effective value. For a leaf this resolves any
// cross-reference chain (applying filters); for a branch it is the node
// itself.
func (c *Config) Value() (any, error) {
	return c.resolveValue(make(map[*Config]bool))
}

// RawValue returns a leaf's stored value without resolving references.
// Branches return themselves.
func (c *Config) RawValue() any {
	if c.leaf {
		return c.value
	}
	return c
}

// SetValue replaces the node's value in place.
// A branch with existing children cannot be silently collapsed into a leaf;
// that fails with ErrCannotSetValue. Writing over a reference leaf replaces
// the reference with the concrete value.
func (c *Config) SetValue(value any) error {
	if !c.leaf && len(c.children) > 0 {
		return fmt.Errorf("%q is a branch with existing children: %w", c.PathString(), ErrCannotSetValue)
	}
	if err := c.storeValue(value); err != nil {
		return err
	}
	c.markDirty()
	c.notifyUpdate(c)
	return nil
}

// storeValue writes a leaf value without dirty/notify bookkeeping.
// *Metadata wrappers are unwrapped into the node's metadata.
func (c *Config) storeValue(value any) error {
	switch v := normalizeValue(value).(type) {
	case *Metadata:
		if err := c.storeValue(v.Value); err != nil {
			return err
		}
		for key, mv := range v.Meta {
			c.SetMetadata(key, mv)
		}
		return nil
	case *Config:
		return fmt.Errorf("cannot store a config node as a leaf value at %q: %w", c.PathString(), ErrCannotSetValue)
	case map[string]any:
		return fmt.Errorf("cannot store a mapping as a leaf value at %q, use Extend or Update: %w",
			c.PathString(), ErrCannotSetValue)
	default:
		c.leaf = true
		c.value = v
		c.children = nil
		c.order = nil
		return nil
	}
}

// ToMap serializes the subtree back into a nested mapping.
// Leaf values are emitted raw: cross-references stay as *Ref so that a
// constructed tree round-trips exactly.
func (c *Config) ToMap() map[string]any {
	result := make(map[string]any, len(c.order))
	for _, key := range c.order {
		child := c.children[key]
		if child.leaf {
			result[key] = child.value
		} else {
			result[key] = child.ToMap()
		}
	}
	return result
}

// ToResolvedMap serializes the subtree with every cross-reference resolved
// to its effective value. Used for serialization to external formats.
func (c *Config) ToResolvedMap() (map[string]any, error) {
	result := make(map[string]any, len(c.order))
	for _, key := range c.order {
		child := c.children[key]
		if child.leaf {
			val, err := child.Value()
			if err != nil {
				return nil, err
			}
			result[key] = val
		} else {
			sub, err := child.ToResolvedMap()
			if err != nil {
				return nil, err
			}
			result[key] = sub
		}
	}
	return result, nil
}

// sortedKeys returns map keys in sorted order for deterministic traversal.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
