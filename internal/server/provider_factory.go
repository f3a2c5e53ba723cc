package server

import (
	"log/slog"

	"cricket-live-service/internal/config"
	"cricket-live-service/internal/logging"
	"cricket-live-service/internal/metrics"
	"cricket-live-service/internal/providers"
	"cricket-live-service/internal/providers/feedapi"
	"cricket-live-service/internal/providers/fixture"
)

const (
	providerFixture = "fixture"
	providerFeedAPI = "feedapi"
	providerNone    = "none"
)

// providerFactory wraps the selected upstream: retries for snapshots, a throttle for scorecards.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

// build returns nil providers when fetching is disabled; the engine then runs on the live feed alone.
func (f providerFactory) build(cfg config.Config) (providers.SnapshotProvider, providers.ScorecardProvider) {
	base, name := selectProvider(cfg, f.logger)
	if base == nil {
		return nil, nil
	}
	snaps := providers.NewRetryingProvider(base, f.logger, f.metrics, name, 0, 0)
	cards := providers.NewThrottledScorecardProvider(base, cfg.Provider.ScorecardInterval, f.logger)
	return snaps, cards
}

// selectProvider resolves the configured upstream and the name it reports metrics under. Unknown
// names fall back to the fixture.
func selectProvider(cfg config.Config, logger *slog.Logger) (providers.DataProvider, string) {
	switch cfg.Provider.Name {
	case providerFixture, "":
		return fixture.New(), providerFixture
	case providerFeedAPI:
		return feedapi.NewClient(feedapi.Config{
			BaseURL: cfg.Provider.BaseURL,
			APIKey:  cfg.Provider.APIKey,
		}), providerFeedAPI
	case providerNone:
		return nil, providerNone
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", logging.FieldProvider, cfg.Provider.Name)
		return fixture.New(), providerFixture
	}
}
