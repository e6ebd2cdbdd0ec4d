// FILE: confetti/watch.go
package confetti

import (
	"context"
	"fmt"
	"os"
	"time"
)

// WatchOptions configures file watching behavior.
type WatchOptions struct {
	// PollInterval for file stat checks (minimum 100ms)
	PollInterval time.Duration

	// Debounce duration to avoid rapid reload notifications
	Debounce time.Duration
}

// DefaultWatchOptions returns sensible defaults for file watching.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		PollInterval: DefaultPollInterval,
		Debounce:     DefaultDebounce,
	}
}

// WatchFile polls the file's modification time and size and delivers the
// path on the returned channel after each debounced change. The tree itself
// is not touched: the receiving caller decides when to apply ReloadFile,
// which keeps all mutation on a single owner.
//
// The channel closes when ctx is cancelled.
func WatchFile(ctx context.Context, path string, opts WatchOptions) (<-chan string, error) {
	if opts.PollInterval < MinPollInterval {
		opts.PollInterval = MinPollInterval
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot watch %q: %w", path, err)
	}

	events := make(chan string, 1)
	go func() {
		defer close(events)

		lastModTime := info.ModTime()
		lastSize := info.Size()
		var pendingSince time.Time

		ticker := time.NewTicker(opts.PollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			stat, err := os.Stat(path)
			if err != nil {
				// File temporarily missing (editor rename); keep polling.
				continue
			}

			changed := !stat.ModTime().Equal(lastModTime) || stat.Size() != lastSize
			if changed {
				lastModTime = stat.ModTime()
				lastSize = stat.Size()
				pendingSince = time.Now()
				continue
			}

			// Stable since the last change long enough to emit.
			if !pendingSince.IsZero() && time.Since(pendingSince) >= opts.Debounce {
				pendingSince = time.Time{}
				select {
				case events <- path:
				default: // Receiver is behind; it will reload on the next event.
				}
			}
		}
	}()

	return events, nil
}
