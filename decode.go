// FILE: confetti/decode.go
package confetti

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the subtree at basePath into the target struct or map,
// resolving cross-references along the way. The target must be a non-nil
// pointer. Field mapping uses the "toml" struct tag.
func (c *Config) Scan(basePath string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be a non-nil pointer, got %T", target)
	}

	node, err := c.getNode(basePath)
	if err != nil {
		return err
	}
	if node.leaf {
		return fmt.Errorf("path %q refers to a leaf, not a scannable section", basePath)
	}

	sectionMap, err := node.ToResolvedMap()
	if err != nil {
		return err
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "toml",
		WeaklyTypedInput: true,
		DecodeHook:       defaultDecodeHook(),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(sectionMap); err != nil {
		return fmt.Errorf("failed to decode section %q into %T: %w", basePath, target, err)
	}

	return nil
}

// defaultDecodeHook returns the composite decode hook for type conversions.
func defaultDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// structToMap converts a tagged struct of defaults into the nested-mapping
// shape the tree constructor accepts. Maps pass through unchanged.
func structToMap(defaults any) (map[string]any, error) {
	if m, ok := normalizeValue(defaults).(map[string]any); ok {
		return m, nil
	}

	nested := make(map[string]any)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &nested,
		TagName: "toml",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}
	if err := decoder.Decode(defaults); err != nil {
		return nil, fmt.Errorf("failed to convert defaults %T to mapping: %w", defaults, err)
	}
	return nested, nil
}
