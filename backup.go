// FILE: confetti/backup.go
package confetti

import "fmt"

// snapshot is an immutable deep copy of a subtree's state: structure, leaf
// values, and metadata. Callbacks and backup stacks are not captured.
type snapshot struct {
	leaf     bool
	value    any
	metadata map[string]any
	order    []string
	children map[string]*snapshot
}

// Backup deep-copies the subtree's current state and pushes it onto the
// node's backup stack. Snapshots restore in LIFO order.
func (c *Config) Backup() {
	c.backups = append(c.backups, c.takeSnapshot())
}

// Restore pops the most recent snapshot and replaces the subtree's
// structure, values, and metadata with it. The node itself keeps its
// identity, its registered callbacks, and the remainder of its backup
// stack; descendants are rebuilt, so callbacks registered on them do not
// survive. Restoring counts as an ordinary mutation: the node is marked
// dirty and update callbacks fire.
//
// Restore fails with ErrEmptyBackupStack when no matching Backup exists.
func (c *Config) Restore() error {
	if len(c.backups) == 0 {
		return fmt.Errorf("restore of %q: %w", c.PathString(), ErrEmptyBackupStack)
	}
	snap := c.backups[len(c.backups)-1]
	c.backups = c.backups[:len(c.backups)-1]

	c.applySnapshot(snap)
	c.markDirty()
	c.notifyUpdate(c)
	return nil
}

// ScopedBackup backs up the subtree, runs fn, and restores the snapshot on
// every exit path, including error returns and panics.
func (c *Config) ScopedBackup(fn func() error) (err error) {
	c.Backup()
	defer func() {
		if rerr := c.Restore(); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return fn()
}

func (c *Config) takeSnapshot() *snapshot {
	snap := &snapshot{
		leaf:  c.leaf,
		value: copyValue(c.value),
	}
	if c.metadata != nil {
		snap.metadata = make(map[string]any, len(c.metadata))
		for key, mv := range c.metadata {
			snap.metadata[key] = copyValue(mv)
		}
	}
	if !c.leaf {
		snap.order = make([]string, len(c.order))
		copy(snap.order, c.order)
		snap.children = make(map[string]*snapshot, len(c.children))
		for name, child := range c.children {
			snap.children[name] = child.takeSnapshot()
		}
	}
	return snap
}

// applySnapshot replaces the node's state with the snapshot, rebuilding
// descendant nodes fresh under the existing parent chain.
func (c *Config) applySnapshot(snap *snapshot) {
	c.leaf = snap.leaf
	c.value = copyValue(snap.value)

	c.metadata = nil
	if snap.metadata != nil {
		c.metadata = make(map[string]any, len(snap.metadata))
		for key, mv := range snap.metadata {
			c.metadata[key] = copyValue(mv)
		}
	}

	c.children = nil
	c.order = nil
	if !snap.leaf {
		c.children = make(map[string]*Config, len(snap.children))
		c.order = make([]string, len(snap.order))
		copy(c.order, snap.order)
		for name, childSnap := range snap.children {
			child := &Config{parent: c, name: name}
			child.applySnapshot(childSnap)
			c.children[name] = child
		}
	}
}
