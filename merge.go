// FILE: confetti/merge.go
package confetti

import "fmt"

// Extend grafts new structure onto the branch, additive-only.
//
// Keys absent from the receiving branch are created recursively. Keys
// present in both recurse; setting a value on an already-existing leaf is
// allowed. The merge fails with ErrCannotSetValue the moment it would
// structurally shadow existing state: replacing a branch with a leaf or vice
// versa, or re-specifying an existing descendant branch with a mapping that
// adds new children while omitting existing ones.
//
// The source may be a nested map[string]any or a *Config. A *Config source
// is linked in by shared reference (graft): the receiver and the original
// owner both observe subsequent mutations.
//
// On success every touched node is marked dirty with upward propagation and
// update callbacks fire once for the receiving branch.
func (c *Config) Extend(source any) error {
	if err := c.extendNode(source, true); err != nil {
		return err
	}
	c.markDirty()
	c.notifyUpdate(c)
	return nil
}

func (c *Config) extendNode(source any, top bool) error {
	if c.leaf {
		return fmt.Errorf("cannot extend leaf %q: %w", c.PathString(), ErrCannotSetValue)
	}

	switch src := normalizeValue(source).(type) {
	case *Config:
		return c.extendMap(src.ToMap(), src, top)
	case map[string]any:
		return c.extendMap(src, nil, top)
	default:
		return fmt.Errorf("cannot extend %q with %T: %w", c.PathString(), source, ErrCannotSetValue)
	}
}

// extendMap applies the additive merge of src into the branch. When graft is
// non-nil the source is an independently owned tree whose top-level children
// are linked in by shared reference instead of copied.
//
// The receiver Extend is invoked on takes new keys freely (top). A source
// mapping assigned to an existing descendant branch is a re-specification of
// that branch: it may add new children only when every existing child is
// included, otherwise the omitted subtree would be silently shadowed.
func (c *Config) extendMap(src map[string]any, graft *Config, top bool) error {
	if !top {
		hasNew := false
		for key := range src {
			if !c.HasKey(key) {
				hasNew = true
				break
			}
		}
		if hasNew {
			for _, existing := range c.order {
				if _, ok := src[existing]; !ok {
					return fmt.Errorf("extending %q adds new keys while omitting existing child %q: %w",
						c.PathString(), existing, ErrCannotSetValue)
				}
			}
		}
	}

	for _, key := range sortedKeys(src) {
		raw := src[key]
		if graft != nil {
			raw = graft.children[key]
		}

		existing, ok := c.children[key]
		if !ok {
			child, err := newNode(c, key, raw)
			if err != nil {
				return err
			}
			c.attachChild(key, child)
			child.markDirtySubtree()
			continue
		}

		switch v := normalizeValue(raw).(type) {
		case *Config:
			if v.leaf {
				if !existing.leaf {
					return fmt.Errorf("extending branch %q with a leaf: %w", existing.PathString(), ErrCannotSetValue)
				}
				if err := existing.storeValue(v.value); err != nil {
					return err
				}
				existing.markDirty()
				continue
			}
			if err := existing.extendNode(v, false); err != nil {
				return err
			}
		case map[string]any:
			if err := existing.extendNode(v, false); err != nil {
				return err
			}
		default:
			if !existing.leaf {
				return fmt.Errorf("extending branch %q with a scalar: %w", existing.PathString(), ErrCannotSetValue)
			}
			if err := existing.storeValue(v); err != nil {
				return err
			}
			existing.markDirty()
		}
	}
	return nil
}

// Update deep-merges the source into the branch without the additive-only
// guard of Extend: existing unspecified children are always preserved,
// specified branches merge recursively, specified leaf values are
// overwritten, and kind clashes are resolved by replacing the existing
// subtree. Update never fails because of pre-existing structure.
//
// Like Extend, a *Config source links shared subtrees, touched nodes are
// marked dirty, and callbacks fire once for the receiving branch.
func (c *Config) Update(source any) error {
	if err := c.updateNode(source); err != nil {
		return err
	}
	c.markDirty()
	c.notifyUpdate(c)
	return nil
}

func (c *Config) updateNode(source any) error {
	switch src := normalizeValue(source).(type) {
	case *Config:
		return c.updateMap(src.ToMap(), src)
	case map[string]any:
		return c.updateMap(src, nil)
	default:
		return fmt.Errorf("cannot update %q with %T: %w", c.PathString(), source, ErrCannotSetValue)
	}
}

func (c *Config) updateMap(src map[string]any, graft *Config) error {
	if c.leaf {
		// A leaf receiving a mapping becomes a branch.
		c.leaf = false
		c.value = nil
		c.children = make(map[string]*Config)
		c.order = nil
	}

	for _, key := range sortedKeys(src) {
		raw := src[key]
		if graft != nil {
			raw = graft.children[key]
		}

		existing, ok := c.children[key]
		if !ok {
			child, err := newNode(c, key, raw)
			if err != nil {
				return err
			}
			c.attachChild(key, child)
			child.markDirtySubtree()
			continue
		}

		switch v := normalizeValue(raw).(type) {
		case *Config:
			// Replace the slot with a shared link to the source subtree.
			if err := c.checkGraft(v); err != nil {
				return err
			}
			v.parent = c
			v.name = key
			c.children[key] = v
			v.markDirtySubtree()
		case map[string]any:
			if err := existing.updateMap(v, nil); err != nil {
				return err
			}
			existing.markDirty()
		default:
			if !existing.leaf {
				// Kind clash: the branch is replaced by the leaf value.
				existing.children = nil
				existing.order = nil
				existing.leaf = true
			}
			if err := existing.storeValue(v); err != nil {
				return err
			}
			existing.markDirty()
		}
	}
	return nil
}
