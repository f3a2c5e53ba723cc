package providers

import (
	"context"
	"log/slog"

	"cricket-live-service/internal/logging"
)

// providerLogger prefers the request-scoped logger on ctx and tags it with the provider name.
// It returns nil when neither logger is set.
func providerLogger(ctx context.Context, fallback *slog.Logger, provider string) *slog.Logger {
	logger := logging.FromContext(ctx, fallback)
	if logger == nil {
		return nil
	}
	return logger.With(slog.String(logging.FieldProvider, provider))
}
