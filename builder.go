// FILE: confetti/builder.go
package confetti

import (
	"errors"
	"fmt"
	"strings"
)

// ValidatorFunc validates a fully built configuration tree. It receives the
// root node and should return an error if validation fails.
type ValidatorFunc func(c *Config) error

// Builder provides a fluent interface for assembling a configuration tree
// from defaults, a file, and command-line override expressions.
type Builder struct {
	defaults    any
	file        string
	args        []string
	deduceTypes bool
	validators  []ValidatorFunc
	err         error
}

// NewBuilder creates a new configuration builder.
func NewBuilder() *Builder {
	return &Builder{
		validators: make([]ValidatorFunc, 0),
	}
}

// WithDefaults sets the default values: a nested map[string]any or a
// tagged struct converted through the same mapping rules as Scan.
func (b *Builder) WithDefaults(defaults any) *Builder {
	b.defaults = defaults
	return b
}

// WithFile sets the configuration file path.
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithArgs sets command-line override expressions of the form "a.b.c=234".
// A leading "--" per argument is accepted and stripped.
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithDeduceTypes enables type deduction for override literals
// (int, float, bool, string, attempted in that order).
func (b *Builder) WithDeduceTypes() *Builder {
	b.deduceTypes = true
	return b
}

// WithValidator adds a validation function that runs at the end of the
// build. Multiple validators execute in the order they were added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build assembles the tree: defaults first, then the file deep-merged via
// Update, then override expressions applied through the expression parser.
// A missing configuration file is reported as ErrConfigNotFound alongside
// the built tree, matching the convention that an application may proceed
// on defaults and overrides alone.
func (b *Builder) Build() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}

	base := map[string]any{}
	if b.defaults != nil {
		converted, err := structToMap(b.defaults)
		if err != nil {
			return nil, fmt.Errorf("failed to convert defaults: %w", err)
		}
		base = converted
	}

	cfg, err := NewConfig(base)
	if err != nil {
		return nil, fmt.Errorf("failed to build defaults tree: %w", err)
	}

	var notFound error
	if b.file != "" {
		if err := cfg.ReloadFile(b.file); err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				notFound = err
			} else {
				return nil, err // Fatal error
			}
		}
	}

	for _, arg := range b.args {
		expr := strings.TrimPrefix(arg, "--")
		if expr == "" || !strings.Contains(expr, "=") {
			continue // Skip non-expression arguments
		}
		if err := cfg.AssignPathExpression(expr, b.deduceTypes); err != nil {
			return nil, fmt.Errorf("failed to apply override %q: %w", arg, err)
		}
	}

	for _, validator := range b.validators {
		if err := validator(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	cfg.MarkClean()

	// ErrConfigNotFound or nil
	return cfg, notFound
}

// MustBuild is like Build but panics on error. A missing configuration file
// is not fatal; the tree built from defaults and overrides is returned.
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return cfg
}

// BuildAndScan builds the tree and decodes it into the provided target
// struct pointer.
func (b *Builder) BuildAndScan(target any) error {
	cfg, err := b.Build()
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		return err
	}

	if scanErr := cfg.Scan("", target); scanErr != nil {
		return fmt.Errorf("failed to scan final config into target: %w", scanErr)
	}

	// ErrConfigNotFound or nil
	return err
}
