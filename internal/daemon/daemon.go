package daemon

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/civicpulse/civicpulse/internal/api"
	"github.com/civicpulse/civicpulse/internal/app/engine"
	"github.com/civicpulse/civicpulse/internal/infra/sqlite"
)

// ─── Daemon ─────────────────────────────────────────────────────────────────

// Run opens storage, assembles the engine, and serves the HTTP API until
// ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	db, err := sqlite.Open(cfg.Storage.Dir)
	if err != nil {
		return err
	}
	defer db.Close()

	feedback := engine.NewFeedbackService(db)
	ratings := engine.NewRatingAggregator(db)
	proposals := engine.NewProposalService(db, cfg.Engine.UnderReviewThreshold)
	catalog := engine.FilterCatalog(engine.DefaultBadgeCatalog(time.Now), cfg.Leaderboard.EnabledBadges())
	badges := engine.NewBadgeEngine(db, catalog)
	leaderboard := engine.NewLeaderboardRanker(db, badges)
	escalation := engine.NewEscalationTracker(cfg.Engine.TierThresholds())

	srv := api.NewServer(feedback, ratings, proposals, escalation, leaderboard)
	srv.SetLeaderboardLimit(cfg.Leaderboard.Limit)
	if cfg.API.Metrics {
		srv.EnableMetrics()
	}

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutdownCtx)
	}()

	log.Printf("civicpulse listening on %s (data: %s)", cfg.Addr(), cfg.Storage.Dir)
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
