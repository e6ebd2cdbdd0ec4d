// FILE: confetti/convenience.go
package confetti

import (
	"errors"
	"fmt"
)

// Quick builds a configuration tree with a single call: defaults (nested
// map or tagged struct), an optional file deep-merged on top, and CLI
// override expressions applied with type deduction enabled.
// This is the recommended way to initialize configuration for most applications.
func Quick(defaults any, configFile string, args []string) (*Config, error) {
	return NewBuilder().
		WithDefaults(defaults).
		WithFile(configFile).
		WithArgs(args).
		WithDeduceTypes().
		Build()
}

// MustQuick is like Quick but panics on error. A missing configuration
// file is not fatal; the application can proceed with defaults/overrides.
func MustQuick(defaults any, configFile string, args []string) *Config {
	cfg, err := Quick(defaults, configFile, args)
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		panic(fmt.Sprintf("config initialization failed: %v", err))
	}
	return cfg
}
