package services

import (
	"context"
	"fmt"
	"time"

	"git.solsynth.dev/hypernet/showcase/pkg/internal/media"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const DefaultMediaTimeout = 5 * time.Second

func getMediaTimeout() time.Duration {
	if timeout := viper.GetDuration("media.timeout"); timeout > 0 {
		return timeout
	}
	return DefaultMediaTimeout
}

func deleteMedia(ctx context.Context, ownerExternalID, namespace, url string) error {
	key, err := media.DeriveKey(ownerExternalID, namespace, url)
	if err != nil {
		return err
	}
	if media.M == nil {
		return fmt.Errorf("media storage is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, getMediaTimeout())
	defer cancel()

	if err := media.M.Delete(ctx, key); err != nil {
		return err
	}
	// A store ignoring the deadline still counts as timed out.
	return ctx.Err()
}

// purgeMediaBestEffort deletes the external objects behind the urls owned by
// owner. Failures are logged and skipped. Empty urls are skipped.
func purgeMediaBestEffort(ctx context.Context, owner models.Owner, namespace string, urls []string) {
	var failed int
	for _, url := range urls {
		if len(url) == 0 {
			continue
		}
		if err := deleteMedia(ctx, owner.AccountID, namespace, url); err != nil {
			failed++
			log.Warn().Err(err).
				Uint("owner", owner.ID).
				Str("namespace", namespace).
				Str("url", url).
				Msg("An error occurred when deleting media, skipped...")
		}
	}

	if failed > 0 {
		log.Warn().Int("failed", failed).Int("total", len(urls)).Msg("Some media were left in the storage.")
	}
}

// purgeMediaAllOrNothing stops at the first failed delete so the caller can
// keep its relational rows. Empty urls are skipped.
func purgeMediaAllOrNothing(ctx context.Context, owner models.Owner, namespace string, urls []string) error {
	for _, url := range urls {
		if len(url) == 0 {
			continue
		}
		if err := deleteMedia(ctx, owner.AccountID, namespace, url); err != nil {
			return fmt.Errorf("%w: %v", ErrExternalDeleteFailed, err)
		}
	}
	return nil
}
