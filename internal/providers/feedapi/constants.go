package feedapi

import "time"

const (
	defaultBaseURL     = "http://localhost:8081/v1"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBodyBytes  = 512
)
