// FILE: confetti/dirty.go
package confetti

// IsDirty reports whether the node or any descendant was mutated since the
// last MarkClean on the node or one of its ancestors. The flag is propagated
// upward immediately at mutation time, so this is a plain field read.
func (c *Config) IsDirty() bool {
	return c.dirty
}

// MarkClean clears the dirty flag on the node and every descendant.
func (c *Config) MarkClean() {
	c.dirty = false
	for _, key := range c.order {
		c.children[key].MarkClean()
	}
}

// markDirty flags the node and all ancestors up to the root.
func (c *Config) markDirty() {
	for node := c; node != nil; node = node.parent {
		node.dirty = true
	}
}

// markDirtySubtree flags a freshly created subtree and propagates upward
// from its root.
func (c *Config) markDirtySubtree() {
	for _, key := range c.order {
		c.children[key].markDirtySubtree()
	}
	c.markDirty()
}
