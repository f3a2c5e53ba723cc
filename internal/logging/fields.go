package logging

import "log/slog"

// Structured log keys shared across packages.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldProvider   = "provider"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldMatchID    = "match_id"
	FieldSessionID  = "session_id"
	FieldTopic      = "topic"
	FieldAttempt    = "attempt"
	FieldDelayMS    = "delay_ms"
	FieldTier       = "tier"
	FieldSequence   = "version_seq"
)

// WithCommon appends the service and version attributes that are set.
func WithCommon(attrs []slog.Attr, service, version string) []slog.Attr {
	if service != "" {
		attrs = append(attrs, slog.String(FieldService, service))
	}
	if version != "" {
		attrs = append(attrs, slog.String(FieldVersion, version))
	}
	return attrs
}
