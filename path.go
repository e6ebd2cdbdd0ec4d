// FILE: confetti/path.go
package confetti

import (
	"fmt"
	"strings"
)

// GetConfig resolves a dotted path to the node it names, without resolving
// cross-references. Paths may be absolute ("a.b.c") or relative with
// leading dots (".sibling", "..uncle") per the rules of getNode.
func (c *Config) GetConfig(path string) (*Config, error) {
	return c.getNode(path)
}

// GetPath resolves a dotted path to its effective terminal value.
// Leaf targets have their cross-references resolved; branch targets are
// returned as *Config.
func (c *Config) GetPath(path string) (any, error) {
	node, err := c.getNode(path)
	if err != nil {
		return nil, err
	}
	return node.Value()
}

// getNode translates a dotted path into a concrete node.
//
// Absolute paths descend segment by segment from the receiver; a missing
// segment or a non-terminal segment that resolves to a leaf fails with
// ErrPathNotFound.
//
// Relative paths carry leading dots. A single leading dot resolves from the
// receiver's own scope (a leaf's scope is its parent branch, used for
// sibling references); each additional dot ascends one more ancestor level.
// Ascending past the root fails with ErrPathNotFound.
func (c *Config) getNode(path string) (*Config, error) {
	if path == "" {
		return c, nil
	}

	dots := 0
	for dots < len(path) && path[dots] == '.' {
		dots++
	}
	rest := path[dots:]

	start := c
	if dots > 0 {
		start = c.scope()
		for i := 1; i < dots; i++ {
			if start == nil {
				break
			}
			start = start.parent
		}
		if start == nil {
			return nil, fmt.Errorf("path %q ascends past the root of %q: %w", path, c.PathString(), ErrPathNotFound)
		}
	}
	if rest == "" {
		return start, nil
	}

	node := start
	for _, segment := range strings.Split(rest, ".") {
		if segment == "" {
			return nil, fmt.Errorf("empty segment in path %q: %w", path, ErrPathNotFound)
		}
		if node.leaf {
			return nil, fmt.Errorf("cannot descend into leaf %q for path %q: %w", node.PathString(), path, ErrPathNotFound)
		}
		child, ok := node.children[segment]
		if !ok {
			return nil, fmt.Errorf("segment %q of path %q under %q: %w", segment, path, c.PathString(), ErrPathNotFound)
		}
		node = child
	}
	return node, nil
}

// scope is the branch a relative path starts from: a branch is its own
// scope, a leaf's scope is its containing branch.
func (c *Config) scope() *Config {
	if c.leaf {
		return c.parent
	}
	return c
}

// AssignPath sets a value at a dotted path, creating intermediate branches
// as needed. Descending through an existing leaf fails with ErrPathNotFound;
// assigning onto a branch with existing children fails with
// ErrCannotSetValue.
func (c *Config) AssignPath(path string, value any) error {
	node, err := c.makePath(path)
	if err != nil {
		return err
	}
	return node.SetValue(value)
}

// makePath resolves a path like getNode but creates missing branches along
// the way and a missing final node as an empty leaf slot.
func (c *Config) makePath(path string) (*Config, error) {
	if path == "" {
		return c, nil
	}

	dots := 0
	for dots < len(path) && path[dots] == '.' {
		dots++
	}
	rest := path[dots:]

	start := c
	if dots > 0 {
		start = c.scope()
		for i := 1; i < dots; i++ {
			if start == nil {
				break
			}
			start = start.parent
		}
		if start == nil {
			return nil, fmt.Errorf("path %q ascends past the root of %q: %w", path, c.PathString(), ErrPathNotFound)
		}
	}
	if rest == "" {
		return start, nil
	}

	segments := strings.Split(rest, ".")
	node := start
	for i, segment := range segments {
		if !isValidKeySegment(segment) {
			return nil, fmt.Errorf("invalid segment %q in path %q: %w", segment, path, ErrPathNotFound)
		}
		if node.leaf {
			return nil, fmt.Errorf("cannot descend into leaf %q for path %q: %w", node.PathString(), path, ErrPathNotFound)
		}
		child, ok := node.children[segment]
		if !ok {
			if i == len(segments)-1 {
				child = newLeaf(node, segment, nil)
			} else {
				child = newBranch(node, segment)
			}
			node.attachChild(segment, child)
		}
		node = child
	}
	return node, nil
}
