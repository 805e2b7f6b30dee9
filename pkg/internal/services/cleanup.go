package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// DoAutoSkillCleanup collects skills that slipped out of every reference
// without being collected, e.g. edges removed by a database cascade.
func DoAutoSkillCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Debug().Time("now", time.Now()).Msg("Now cleaning up orphan skills...")
	count, err := SweepOrphanSkills(ctx)
	if err != nil {
		log.Error().Err(err).Int("count", count).Msg("An error occurred when cleaning up skills...")
		return
	}
	log.Info().Int("count", count).Msg("Clean up orphan skills completed.")
}
