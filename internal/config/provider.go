package config

import (
	"strings"
	"time"
)

// ProviderConfig selects the snapshot/scorecard source.
type ProviderConfig struct {
	// Name is fixture, feedapi or none.
	Name    string
	BaseURL string
	APIKey  string
	// ScorecardInterval is the minimum gap between upstream scorecard calls per match.
	ScorecardInterval time.Duration
}

func loadProvider() ProviderConfig {
	return ProviderConfig{
		Name:              strings.ToLower(strings.TrimSpace(envOrDefault(envSnapshotProvider, defaultProvider))),
		BaseURL:           envOrDefault(envFeedAPIBaseURL, defaultFeedAPIURL),
		APIKey:            envOrDefault(envFeedAPIKey, ""),
		ScorecardInterval: durationEnvOrDefault(envScorecardInterval, defaultScorecardInterval),
	}
}
