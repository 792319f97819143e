package service

import (
	"context"
	"fmt"

	"pizza-storefront/internal/storage"

	"github.com/rs/zerolog"
)

// Reloader re-reads its state from storage.
type Reloader interface {
	Reload(ctx context.Context)
}

// FollowStore reloads targets[key] whenever another terminal writes key
// to a shared store. It blocks until ctx is done or the watch ends.
func FollowStore(ctx context.Context, w storage.Watcher, targets map[string]Reloader, logger zerolog.Logger) error {
	logger = logger.With().Str("component", "state-sync").Logger()

	keys, err := w.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch client state: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case key, ok := <-keys:
			if !ok {
				return nil
			}
			target, found := targets[key]
			if !found {
				continue
			}
			logger.Debug().Str("key", key).Msg("client state changed, reloading")
			target.Reload(ctx)
		}
	}
}
