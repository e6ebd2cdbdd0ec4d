// FILE: confetti/watch_test.go
package confetti

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchFile(t *testing.T) {
	t.Run("EmitsAfterChange", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "watched.toml")
		require.NoError(t, os.WriteFile(path, []byte("port = 8080\n"), 0644))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events, err := WatchFile(ctx, path, WatchOptions{
			PollInterval: MinPollInterval,
			Debounce:     MinPollInterval,
		})
		require.NoError(t, err)

		// Give the poller a baseline tick, then change the file
		time.Sleep(2 * MinPollInterval)
		require.NoError(t, os.WriteFile(path, []byte("port = 9090\n"), 0644))

		select {
		case got, ok := <-events:
			require.True(t, ok)
			assert.Equal(t, path, got)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for change event")
		}
	})

	t.Run("ChannelClosesOnCancel", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "watched.toml")
		require.NoError(t, os.WriteFile(path, []byte("port = 8080\n"), 0644))

		ctx, cancel := context.WithCancel(context.Background())
		events, err := WatchFile(ctx, path, DefaultWatchOptions())
		require.NoError(t, err)

		cancel()

		select {
		case _, ok := <-events:
			assert.False(t, ok)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for channel close")
		}
	})

	t.Run("MissingFileFails", func(t *testing.T) {
		_, err := WatchFile(context.Background(),
			filepath.Join(t.TempDir(), "absent.toml"), DefaultWatchOptions())
		require.Error(t, err)
	})

	t.Run("ReloadOnEvent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "watched.toml")
		require.NoError(t, os.WriteFile(path, []byte("port = 8080\n"), 0644))

		cfg, err := FromFilename(path)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events, err := WatchFile(ctx, path, WatchOptions{
			PollInterval: MinPollInterval,
			Debounce:     MinPollInterval,
		})
		require.NoError(t, err)

		time.Sleep(2 * MinPollInterval)
		require.NoError(t, os.WriteFile(path, []byte("port = 9090\n"), 0644))

		select {
		case <-events:
			require.NoError(t, cfg.ReloadFile(path))
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for change event")
		}

		port, err := cfg.GetPath("port")
		require.NoError(t, err)
		assert.Equal(t, int64(9090), port)
	})
}
