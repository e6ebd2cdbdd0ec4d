// FILE: confetti/loader.go
package confetti

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies a serialization format for loading and saving.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"

	// FormatAuto selects the format from the file extension, falling back
	// to content detection.
	FormatAuto Format = "auto"
)

// FromString deserializes a textual configuration document into a tree.
func FromString(data string, format Format) (*Config, error) {
	return FromReader(strings.NewReader(data), format)
}

// FromReader deserializes a configuration document from a stream.
func FromReader(r io.Reader, format Format) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config data: %w", err)
	}
	nested, err := parseDocument(data, format, "")
	if err != nil {
		return nil, err
	}
	return NewConfig(nested)
}

// FromFilename reads and deserializes a configuration file, detecting the
// format from the extension and then the content. A missing file fails with
// ErrConfigNotFound.
func FromFilename(path string) (*Config, error) {
	nested, err := loadFileMap(path)
	if err != nil {
		return nil, err
	}
	return NewConfig(nested)
}

// ReloadFile loads a configuration file and deep-merges it into the tree
// via Update, preserving structure the file does not mention.
func (c *Config) ReloadFile(path string) error {
	nested, err := loadFileMap(path)
	if err != nil {
		return err
	}
	return c.Update(nested)
}

// loadFileMap reads a file into the nested-mapping shape NewConfig accepts.
func loadFileMap(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%q: %w", path, ErrConfigNotFound)
		}
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	return parseDocument(data, FormatAuto, path)
}

// parseDocument unmarshals raw document bytes into a nested mapping and
// unwraps the top-level naming convention.
func parseDocument(data []byte, format Format, path string) (map[string]any, error) {
	if format == "" || format == FormatAuto {
		format = detectFileFormat(path)
		if format == "" {
			format = detectFormatFromContent(data)
			if format == "" {
				return nil, fmt.Errorf("%q: %w", path, ErrUnknownFormat)
			}
		}
	}

	nested := make(map[string]any)
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &nested); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&nested); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &nested); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}

	return unwrapTopLevel(nested), nil
}

// unwrapTopLevel applies the loader naming convention: a document whose
// single top-level key is an all-uppercase identifier mapping to a table is
// unwrapped so the table itself becomes the tree root.
func unwrapTopLevel(nested map[string]any) map[string]any {
	if len(nested) != 1 {
		return nested
	}
	for key, value := range nested {
		if !isUpperIdentifier(key) {
			return nested
		}
		if inner, ok := normalizeValue(value).(map[string]any); ok {
			return inner
		}
	}
	return nested
}

func isUpperIdentifier(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		isUpper := r >= 'A' && r <= 'Z'
		isDigit := r >= '0' && r <= '9'
		if !(isUpper || isDigit || r == '_') {
			return false
		}
	}
	return true
}

// detectFileFormat determines format from the file extension.
func detectFileFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing.
func detectFormatFromContent(data []byte) Format {
	// Try JSON first (strict format)
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return FormatJSON
	}

	// Try TOML before YAML: YAML accepts almost any scalar document
	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return FormatTOML
	}

	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return FormatYAML
	}

	return ""
}
