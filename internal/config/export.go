package config

import "time"

// ExportConfig controls the on-disk view model export and its admin endpoint.
type ExportConfig struct {
	// Dir disables export when empty.
	Dir        string
	Retention  time.Duration
	AdminToken string
}

func loadExport() ExportConfig {
	return ExportConfig{
		Dir:        envOrDefault(envExportDir, ""),
		Retention:  durationEnvOrDefault(envExportRetention, defaultExportRetention),
		AdminToken: envOrDefault(envAdminToken, ""),
	}
}
