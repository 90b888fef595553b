// Package daemon wires configuration, storage, and the HTTP server into a
// running process.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/civicpulse/civicpulse/internal/app/engine"
	"github.com/civicpulse/civicpulse/internal/domain"
)

// ─── Configuration ──────────────────────────────────────────────────────────

// Config is the full daemon configuration, loaded from
// $CIVICPULSE_HOME/config.toml (default ~/.civicpulse/config.toml).
type Config struct {
	API         APIConfig         `toml:"api"`
	Storage     StorageConfig     `toml:"storage"`
	Engine      EngineConfig      `toml:"engine"`
	Leaderboard LeaderboardConfig `toml:"leaderboard"`
}

// APIConfig controls the HTTP listener.
type APIConfig struct {
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	Metrics bool   `toml:"metrics"`
}

// StorageConfig controls the sqlite data directory.
type StorageConfig struct {
	Dir string `toml:"dir"`
}

// EngineConfig controls thresholds of the aggregation engine.
// Escalation tiers are configuration rows, not code branches.
type EngineConfig struct {
	UnderReviewThreshold int          `toml:"under_review_threshold"`
	Tiers                []TierConfig `toml:"tiers"`
}

// TierConfig is one escalation tier row.
type TierConfig struct {
	Tier      int    `toml:"tier"`
	Threshold int    `toml:"threshold"`
	PortalURL string `toml:"portal_url"`
}

// LeaderboardConfig controls the public contributor board. Badges lists the
// enabled badge IDs; empty means the full catalog.
type LeaderboardConfig struct {
	Limit  int      `toml:"limit"`
	Badges []string `toml:"badges"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host:    "127.0.0.1",
			Port:    8420,
			Metrics: true,
		},
		Storage: StorageConfig{
			Dir: filepath.Join(Home(), "data"),
		},
		Engine: EngineConfig{
			UnderReviewThreshold: engine.DefaultUnderReviewThreshold,
			Tiers:                defaultTierConfig(),
		},
		Leaderboard: LeaderboardConfig{
			Limit: engine.DefaultLeaderboardLimit,
		},
	}
}

func defaultTierConfig() []TierConfig {
	tiers := engine.DefaultTiers()
	out := make([]TierConfig, len(tiers))
	for i, t := range tiers {
		out[i] = TierConfig{Tier: int(t.Tier), Threshold: t.Threshold, PortalURL: t.PortalURL}
	}
	return out
}

// Load reads config.toml over the defaults. A missing file is not an error —
// the defaults stand.
func Load() (Config, error) {
	cfg := DefaultConfig()

	path := filepath.Join(Home(), "config.toml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Home returns the civicpulse home directory.
func Home() string {
	if env := os.Getenv("CIVICPULSE_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".civicpulse")
}

// Addr returns the HTTP listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.API.Host, c.API.Port)
}

// EnabledBadges converts the configured badge toggle list for the catalog
// filter. Empty means no filtering.
func (c LeaderboardConfig) EnabledBadges() []domain.BadgeID {
	out := make([]domain.BadgeID, len(c.Badges))
	for i, id := range c.Badges {
		out[i] = domain.BadgeID(id)
	}
	return out
}

// TierThresholds converts the configured tier rows for the escalation
// tracker. An empty table falls back to the defaults.
func (c EngineConfig) TierThresholds() []engine.TierThreshold {
	if len(c.Tiers) == 0 {
		return engine.DefaultTiers()
	}
	out := make([]engine.TierThreshold, len(c.Tiers))
	for i, t := range c.Tiers {
		out[i] = engine.TierThreshold{
			Tier:      domain.EscalationTier(t.Tier),
			Threshold: t.Threshold,
			PortalURL: t.PortalURL,
		}
	}
	return out
}
