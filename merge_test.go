// FILE: confetti/merge_test.go
package confetti

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtend tests the additive-only merge policy
func TestExtend(t *testing.T) {
	t.Run("CreatesNewSubtree", func(t *testing.T) {
		cfg := MustNewConfig(map[string]any{"existing": 1})
		require.NoError(t, cfg.Extend(map[string]any{
			"existing": 1,
			"section": map[string]any{
				"a": 1,
				"b": map[string]any{"c": 2},
			},
		}))

		val, err := cfg.GetPath("section.b.c")
		require.NoError(t, err)
		assert.Equal(t, 2, val)
	})

	t.Run("SetValueOnExistingLeafAllowed", func(t *testing.T) {
		cfg := MustNewConfig(map[string]any{"port": 8080})
		require.NoError(t, cfg.Extend(map[string]any{"port": 9090}))

		val, err := cfg.Get("port")
		require.NoError(t, err)
		assert.Equal(t, 9090, val)
	})

	t.Run("IdempotentWithMatchingSubset", func(t *testing.T) {
		cfg := MustNewConfig(map[string]any{
			"a": map[string]any{"b": 1, "c": 2},
			"d": 3,
		})
		// Structure is a subset and values match: re-applying succeeds.
		require.NoError(t, cfg.Extend(map[string]any{
			"a": map[string]any{"b": 1},
		}))
		val, err := cfg.GetPath("a.c")
		require.NoError(t, err)
		assert.Equal(t, 2, val)
	})

	t.Run("NewChildOmittingExistingFails", func(t *testing.T) {
		cfg := MustNewConfig(map[string]any{
			"extended_value": map[string]any{"child1": 1},
		})

		err := cfg.Extend(map[string]any{
			"extended_value": map[string]any{"child2": 2},
		})
		require.ErrorIs(t, err, ErrCannotSetValue)

		// Fallback pattern: Update after a failed Extend.
		require.NoError(t, cfg.Update(map[string]any{
			"extended_value": map[string]any{"child2": 2},
		}))
		child1, err := cfg.GetPath("extended_value.child1")
		require.NoError(t, err)
		assert.Equal(t, 1, child1)
	})

	t.Run("NewChildRespecifyingExistingSucceeds", func(t *testing.T) {
		cfg := MustNewConfig(map[string]any{
			"extended_value": map[string]any{"child1": 1},
		})

		require.NoError(t, cfg.Extend(map[string]any{
			"extended_value": map[string]any{"child1": 1, "child2": 2},
		}))
		child2, err := cfg.GetPath("extended_value.child2")
		require.NoError(t, err)
		assert.Equal(t, 2, child2)
	})

	t.Run("BranchOverLeafFails", func(t *testing.T) {
		cfg := MustNewConfig(map[string]any{"leaf": 1})
		err := cfg.Extend(map[string]any{
			"leaf": map[string]any{"below": 2},
		})
		require.ErrorIs(t, err, ErrCannotSetValue)
	})

	t.Run("LeafOverBranchFails", func(t *testing.T) {
		cfg := MustNewConfig(map[string]any{
			"section": map[string]any{"a": 1},
		})
		err := cfg.Extend(map[string]any{"section": 5})
		require.ErrorIs(t, err, ErrCannotSetValue)
	})

	t.Run("ExtendLeafNodeFails", func(t *testing.T) {
		cfg := MustNewConfig(map[string]any{"leaf": 1})
		leaf, err := cfg.GetConfig("leaf")
		require.NoError(t, err)
		require.ErrorIs(t, leaf.Extend(map[string]any{"x": 1}), ErrCannotSetValue)
	})
}

// TestUpdate tests the deep-merge policy
func TestUpdate(t *testing.T) {
	t.Run("PreservesUnspecifiedChildren", func(t *testing.T) {
		cfg := MustNewConfig(map[string]any{
			"server": map[string]any{"host": "localhost", "port": 8080},
		})

		require.NoError(t, cfg.Update(map[string]any{
			"server": map[string]any{"port": 9090},
		}))

		host, err := cfg.GetPath("server.host")
		require.NoError(t, err)
		assert.Equal(t, "localhost", host)
		port, err := cfg.GetPath("server.port")
		require.NoError(t, err)
		assert.Equal(t, 9090, port)
	})

	t.Run("CreatesMissingStructure", func(t *testing.T) {
		cfg := MustNewConfig(map[string]any{})
		require.NoError(t, cfg.Update(map[string]any{
			"a": map[string]any{"b": map[string]any{"c": 1}},
		}))
		val, err := cfg.GetPath("a.b.c")
		require.NoError(t, err)
		assert.Equal(t, 1, val)
	})

	t.Run("BranchReplacesLeaf", func(t *testing.T) {
		cfg := MustNewConfig(map[string]any{"x": 1})
		require.NoError(t, cfg.Update(map[string]any{
			"x": map[string]any{"y": 2},
		}))
		val, err := cfg.GetPath("x.y")
		require.NoError(t, err)
		assert.Equal(t, 2, val)
	})

	t.Run("LeafReplacesBranch", func(t *testing.T) {
		cfg := MustNewConfig(map[string]any{
			"x": map[string]any{"y": 2},
		})
		require.NoError(t, cfg.Update(map[string]any{"x": 1}))
		val, err := cfg.Get("x")
		require.NoError(t, err)
		assert.Equal(t, 1, val)
	})
}

// TestGraftMerge tests shared-subtree linking through the merge engine
func TestGraftMerge(t *testing.T) {
	t.Run("ExtendWithConfigLinksShared", func(t *testing.T) {
		external := MustNewConfig(map[string]any{
			"plugin": map[string]any{"enabled": true},
		})
		cfg := MustNewConfig(map[string]any{"core": 1})

		require.NoError(t, cfg.Extend(map[string]any{"ext": external}))

		// Mutations through the original owner are visible in the host tree.
		require.NoError(t, external.AssignPath("plugin.level", 3))
		val, err := cfg.GetPath("ext.plugin.level")
		require.NoError(t, err)
		assert.Equal(t, 3, val)
	})

	t.Run("SelfGraftRejected", func(t *testing.T) {
		cfg := MustNewConfig(map[string]any{"a": 1})
		err := cfg.Extend(map[string]any{"a": 1, "self": cfg})
		require.ErrorIs(t, err, ErrCannotSetValue)
	})

	t.Run("UpdateReplacesSlotWithSharedLink", func(t *testing.T) {
		external := MustNewConfig(map[string]any{"v": 1})
		cfg := MustNewConfig(map[string]any{
			"slot": map[string]any{"old": true},
		})

		require.NoError(t, cfg.Update(map[string]any{"slot": external}))

		slot, err := cfg.GetConfig("slot")
		require.NoError(t, err)
		assert.Same(t, external, slot)
	})
}

// TestMergeNotifications verifies callbacks fire once per top-level merge
func TestMergeNotifications(t *testing.T) {
	cfg := MustNewConfig(map[string]any{
		"a": map[string]any{"b": 1},
	})

	var calls int
	cfg.OnUpdate(func(changed *Config) { calls++ })

	require.NoError(t, cfg.Update(map[string]any{
		"a": map[string]any{"b": 2, "c": 3},
		"d": 4,
	}))
	assert.Equal(t, 1, calls)

	require.NoError(t, cfg.Extend(map[string]any{"e": 5}))
	assert.Equal(t, 2, calls)
}
