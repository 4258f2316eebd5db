package main

import (
	"context"
	"log"
	"time"

	"acheiBack/internal/match"
	"acheiBack/internal/repositories"
)

const (
	sweeperTimeout        = 1 * time.Minute
	sweeperBatchSize      = 100
	sessionCleanInterval  = 1 * time.Hour
	sessionCleanerTimeout = 30 * time.Second
)

// startMatchSweeper periodically re-drives notification delivery for matches that
// were persisted but whose alerts never went out.
func startMatchSweeper(ctx context.Context, pipeline *match.Pipeline, interval time.Duration, infoLog, errorLog *log.Logger) {
	if pipeline == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, sweeperTimeout)
			recovered, err := pipeline.SweepUnnotified(runCtx, sweeperBatchSize)
			cancel()
			if err != nil {
				errorLog.Printf("match sweeper: %v", err)
			} else if recovered > 0 {
				infoLog.Printf("match sweeper: delivered %d pending match alerts", recovered)
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}

func startSessionCleaner(ctx context.Context, repo *repositories.UserRepository, infoLog, errorLog *log.Logger) {
	if repo == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(sessionCleanInterval)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, sessionCleanerTimeout)
			removed, err := repo.DeleteExpiredSessions(runCtx, time.Now())
			cancel()
			if err != nil {
				errorLog.Printf("session cleaner: %v", err)
			} else if removed > 0 {
				infoLog.Printf("session cleaner: removed %d expired sessions", removed)
			}
		}

		runOnce()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}
