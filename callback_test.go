// FILE: confetti/callback_test.go
package confetti

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCallbacks tests observer registration and bubbling
func TestCallbacks(t *testing.T) {
	t.Run("CallbackReceivesChangedNode", func(t *testing.T) {
		cfg := MustNewConfig(map[string]any{
			"section": map[string]any{"v": 1},
		})

		var got *Config
		cfg.OnUpdate(func(changed *Config) { got = changed })

		leaf, err := cfg.GetConfig("section.v")
		require.NoError(t, err)
		require.NoError(t, leaf.SetValue(2))

		assert.Same(t, leaf, got)
	})

	t.Run("BubblesLeafToRoot", func(t *testing.T) {
		cfg := MustNewConfig(map[string]any{
			"section": map[string]any{"v": 1},
		})
		section, err := cfg.GetConfig("section")
		require.NoError(t, err)

		var order []string
		leaf, _ := cfg.GetConfig("section.v")
		leaf.OnUpdate(func(*Config) { order = append(order, "leaf") })
		section.OnUpdate(func(*Config) { order = append(order, "section") })
		cfg.OnUpdate(func(*Config) { order = append(order, "root") })

		require.NoError(t, leaf.SetValue(2))
		assert.Equal(t, []string{"leaf", "section", "root"}, order)
	})

	t.Run("RegistrationOrderPerNode", func(t *testing.T) {
		cfg := MustNewConfig(map[string]any{"v": 1})

		var order []int
		cfg.OnUpdate(func(*Config) { order = append(order, 1) })
		cfg.OnUpdate(func(*Config) { order = append(order, 2) })
		cfg.OnUpdate(func(*Config) { order = append(order, 3) })

		require.NoError(t, cfg.Set("v", 2))
		assert.Equal(t, []int{1, 2, 3}, order)
	})

	t.Run("SiblingCallbacksNotInvoked", func(t *testing.T) {
		cfg := MustNewConfig(map[string]any{
			"a": map[string]any{"v": 1},
			"b": map[string]any{"v": 2},
		})

		var calls int
		b, _ := cfg.GetConfig("b")
		b.OnUpdate(func(*Config) { calls++ })

		require.NoError(t, cfg.AssignPath("a.v", 3))
		assert.Zero(t, calls)
	})

	t.Run("MutatingCallbackRetriggersNotification", func(t *testing.T) {
		cfg := MustNewConfig(map[string]any{
			"primary": 1,
			"shadow":  0,
		})

		var calls int
		cfg.OnUpdate(func(changed *Config) {
			calls++
			if changed.Name() == "primary" {
				// Re-entrant mutation: notification runs again for shadow.
				require.NoError(t, cfg.Set("shadow", 99))
			}
		})

		require.NoError(t, cfg.Set("primary", 2))
		assert.Equal(t, 2, calls)

		shadow, _ := cfg.Get("shadow")
		assert.Equal(t, 99, shadow)
	})

	t.Run("NilCallbackIgnored", func(t *testing.T) {
		cfg := MustNewConfig(map[string]any{"v": 1})
		cfg.OnUpdate(nil)
		require.NoError(t, cfg.Set("v", 2))
	})
}
