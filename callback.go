// FILE: confetti/callback.go
package confetti

// OnUpdate registers an observer on the node. After any mutation to the
// node or one of its descendants is fully applied, fn is invoked with the
// node that actually changed.
//
// Invocation order is fixed: the changed node's own callbacks fire first,
// then each ancestor's in turn toward the root, each node's callbacks in
// registration order. Dispatch is synchronous on the mutating goroutine; a
// callback that itself mutates the tree re-triggers notification.
func (c *Config) OnUpdate(fn UpdateFunc) {
	if fn == nil {
		return
	}
	c.callbacks = append(c.callbacks, fn)
}

// notifyUpdate bubbles a change notification from the changed node to the
// root after the mutation has been committed.
func (c *Config) notifyUpdate(changed *Config) {
	for node := changed; node != nil; node = node.parent {
		// Snapshot the list so a callback registering further callbacks
		// does not grow the slice mid-dispatch.
		registered := node.callbacks
		for _, fn := range registered {
			fn(changed)
		}
	}
}
