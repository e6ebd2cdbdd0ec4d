// FILE: confetti/helper.go
package confetti

// normalizeValue canonicalizes construction input. YAML documents with
// non-string scalar keys decode as map[any]any; those are converted to the
// map[string]any shape the tree builder expects.
func normalizeValue(raw any) any {
	switch v := raw.(type) {
	case map[string]any:
		return v
	case map[any]any:
		converted := make(map[string]any, len(v))
		for key, value := range v {
			if s, ok := key.(string); ok {
				converted[s] = value
			}
		}
		return converted
	default:
		return raw
	}
}

// copyValue deep-copies leaf values for snapshots. Maps and slices are
// duplicated recursively; *Ref values are shared since references are
// immutable once constructed; everything else copies by value.
func copyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		dst := make(map[string]any, len(v))
		for key, item := range v {
			dst[key] = copyValue(item)
		}
		return dst
	case []any:
		dst := make([]any, len(v))
		for i, item := range v {
			dst[i] = copyValue(item)
		}
		return dst
	case []string:
		dst := make([]string, len(v))
		copy(dst, v)
		return dst
	default:
		return value
	}
}

// isValidKeySegment checks if a single path segment is a valid bare key:
// a non-empty sequence of ASCII letters, digits, underscores, and dashes.
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'

		if !(isLetter || isDigit || r == '_' || r == '-') {
			return false
		}
	}
	return true
}
