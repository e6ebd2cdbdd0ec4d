// FILE: confetti/path_test.go
package confetti

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathFixture(t *testing.T) *Config {
	t.Helper()
	return MustNewConfig(map[string]any{
		"a": map[string]any{
			"b": map[string]any{
				"c": 1,
			},
			"sibling": 2,
		},
		"top": 3,
	})
}

// TestAbsolutePathResolution tests dotted-path descent
func TestAbsolutePathResolution(t *testing.T) {
	cfg := pathFixture(t)

	tests := []struct {
		name    string
		path    string
		want    any
		wantErr error
	}{
		{"Leaf", "a.b.c", 1, nil},
		{"TopLevelLeaf", "top", 3, nil},
		{"MissingSegment", "a.nope", nil, ErrPathNotFound},
		{"MissingDeepSegment", "a.b.c.d", nil, ErrPathNotFound},
		{"DescendIntoLeaf", "top.x", nil, ErrPathNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, err := cfg.GetPath(tt.path)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, val)
		})
	}

	t.Run("EmptyPathIsSelf", func(t *testing.T) {
		node, err := cfg.GetConfig("")
		require.NoError(t, err)
		assert.Same(t, cfg, node)
	})

	t.Run("BranchTargetReturnsNode", func(t *testing.T) {
		val, err := cfg.GetPath("a.b")
		require.NoError(t, err)
		node, ok := val.(*Config)
		require.True(t, ok)
		assert.Equal(t, "a.b", node.PathString())
	})
}

// TestRelativePathResolution tests leading-dot paths
func TestRelativePathResolution(t *testing.T) {
	cfg := pathFixture(t)

	t.Run("SingleDotFromBranch", func(t *testing.T) {
		a, err := cfg.GetConfig("a")
		require.NoError(t, err)
		val, err := a.GetPath(".sibling")
		require.NoError(t, err)
		assert.Equal(t, 2, val)
	})

	t.Run("SingleDotFromLeafMeansSibling", func(t *testing.T) {
		leaf, err := cfg.GetConfig("a.sibling")
		require.NoError(t, err)
		node, err := leaf.GetConfig(".b.c")
		require.NoError(t, err)
		assert.Equal(t, "a.b.c", node.PathString())
	})

	t.Run("DoubleDotAscends", func(t *testing.T) {
		b, err := cfg.GetConfig("a.b")
		require.NoError(t, err)
		val, err := b.GetPath("..sibling")
		require.NoError(t, err)
		assert.Equal(t, 2, val)
	})

	t.Run("TripleDotReachesRoot", func(t *testing.T) {
		b, err := cfg.GetConfig("a.b")
		require.NoError(t, err)
		val, err := b.GetPath("...top")
		require.NoError(t, err)
		assert.Equal(t, 3, val)
	})

	t.Run("AscendPastRootFails", func(t *testing.T) {
		a, err := cfg.GetConfig("a")
		require.NoError(t, err)
		_, err = a.GetPath("...top")
		require.ErrorIs(t, err, ErrPathNotFound)
	})
}

// TestAssignPath tests path assignment with branch creation
func TestAssignPath(t *testing.T) {
	t.Run("CreatesIntermediateBranches", func(t *testing.T) {
		cfg := MustNewConfig(map[string]any{})
		require.NoError(t, cfg.AssignPath("x.y.z", 10))

		val, err := cfg.GetPath("x.y.z")
		require.NoError(t, err)
		assert.Equal(t, 10, val)

		x, err := cfg.GetConfig("x")
		require.NoError(t, err)
		assert.False(t, x.IsLeaf())
	})

	t.Run("OverwritesExistingLeaf", func(t *testing.T) {
		cfg := pathFixture(t)
		require.NoError(t, cfg.AssignPath("a.b.c", 7))
		val, err := cfg.GetPath("a.b.c")
		require.NoError(t, err)
		assert.Equal(t, 7, val)
	})

	t.Run("CannotDescendThroughLeaf", func(t *testing.T) {
		cfg := pathFixture(t)
		err := cfg.AssignPath("top.below", 1)
		require.ErrorIs(t, err, ErrPathNotFound)
	})

	t.Run("CannotCollapsePopulatedBranch", func(t *testing.T) {
		cfg := pathFixture(t)
		err := cfg.AssignPath("a.b", 1)
		require.ErrorIs(t, err, ErrCannotSetValue)
	})

	t.Run("InvalidSegmentRejected", func(t *testing.T) {
		cfg := pathFixture(t)
		err := cfg.AssignPath("a.bad key", 1)
		require.ErrorIs(t, err, ErrPathNotFound)
	})
}
