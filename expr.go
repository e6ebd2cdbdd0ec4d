// FILE: confetti/expr.go
package confetti

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePathExpression splits an override expression of the form
// "path=literal" into its path and literal parts. Only the first '=' is
// significant; the literal may contain further '=' characters.
func ParsePathExpression(expr string) (path string, literal string, err error) {
	idx := strings.Index(expr, "=")
	if idx <= 0 {
		return "", "", fmt.Errorf("invalid path expression %q, expected \"path=value\"", expr)
	}
	return expr[:idx], expr[idx+1:], nil
}

// deduceValue coerces a literal using an explicit ordered list of parse
// attempts: integer, then float, then the lowercase boolean literals, then
// the raw string.
func deduceValue(literal string) any {
	if i, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(literal, 64); err == nil {
		return f
	}
	switch literal {
	case "true":
		return true
	case "false":
		return false
	}
	return literal
}

// AssignPathExpression applies an override expression such as "a.b.c=234"
// to the tree, creating intermediate branches like AssignPath. With
// deduceType the literal is coerced (int, float, bool, string in that
// order); without it the literal is assigned as the raw string.
//
// Assigning onto a branch with existing children fails with
// ErrCannotSetValue.
func (c *Config) AssignPathExpression(expr string, deduceType bool) error {
	path, literal, err := ParsePathExpression(expr)
	if err != nil {
		return err
	}
	var value any = literal
	if deduceType {
		value = deduceValue(literal)
	}
	return c.AssignPath(path, value)
}
