// FILE: confetti/metadata.go
package confetti

// Metadata pairs a construction value with a metadata mapping. It can be
// used directly inside the nested-mapping input of NewConfig, Extend, or
// Update; the wrapper is unwrapped into the created node's metadata.
type Metadata struct {
	Value any
	Meta  map[string]any
}

// WithMetadata attaches a metadata mapping to a construction value.
func WithMetadata(value any, meta map[string]any) *Metadata {
	return &Metadata{Value: value, Meta: meta}
}

// Metadata returns the node's metadata mapping, allocating it on first use.
// Both leaves and branches can carry metadata. The returned map is live.
func (c *Config) Metadata() map[string]any {
	if c.metadata == nil {
		c.metadata = make(map[string]any)
	}
	return c.metadata
}

// SetMetadata stores a single metadata entry on the node. Metadata is
// descriptive state and does not participate in dirty tracking.
func (c *Config) SetMetadata(key string, value any) {
	c.Metadata()[key] = value
}

// GetMetadata retrieves a metadata entry.
func (c *Config) GetMetadata(key string) (any, bool) {
	if c.metadata == nil {
		return nil, false
	}
	value, ok := c.metadata[key]
	return value, ok
}
