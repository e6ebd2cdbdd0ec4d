// FILE: confetti/proxy.go
package confetti

import "fmt"

// Proxy is an attribute-style accessor over a node's subtree. It exposes
// named-field get/set delegating to single-segment child lookup, mirroring
// dynamic attribute access in duck-typed hosts. The dotted-path API on
// Config remains the primary, strongly specified surface.
type Proxy struct {
	node *Config
}

// Proxy returns an attribute-style accessor anchored at the node.
func (c *Config) Proxy() *Proxy {
	return &Proxy{node: c}
}

// Config returns the node the proxy wraps.
func (p *Proxy) Config() *Config {
	return p.node
}

// Get fetches a named field. Leaf children yield their resolved value;
// branch children yield a nested *Proxy for further traversal.
func (p *Proxy) Get(name string) (any, error) {
	child, err := p.node.getNode(name)
	if err != nil {
		return nil, err
	}
	if child.leaf {
		return child.Value()
	}
	return &Proxy{node: child}, nil
}

// Sub returns a nested proxy for a branch field.
func (p *Proxy) Sub(name string) (*Proxy, error) {
	child, err := p.node.getNode(name)
	if err != nil {
		return nil, err
	}
	if child.leaf {
		return nil, fmt.Errorf("field %q of %q is a leaf: %w", name, p.node.PathString(), ErrPathNotFound)
	}
	return &Proxy{node: child}, nil
}

// Set assigns a named field, with the same creation rules as Config.Set.
func (p *Proxy) Set(name string, value any) error {
	return p.node.Set(name, value)
}
