// Package requestutil holds request helpers shared by the HTTP middleware and handlers.
package requestutil

import (
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HeaderRequestID carries the correlation id in both directions.
const HeaderRequestID = "X-Request-ID"

var requestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// newUUID is swapped in tests to exercise the fallback.
var newUUID = uuid.NewRandom

// SanitizeRequestID keeps a well-formed incoming id and mints a new one otherwise.
func SanitizeRequestID(incoming string) string {
	incoming = strings.TrimSpace(incoming)
	if incoming != "" && requestIDPattern.MatchString(incoming) {
		return incoming
	}
	return NewRequestID()
}

// NewRequestID returns a random id, falling back to a clock-derived one when the random source fails.
func NewRequestID() string {
	id, err := newUUID()
	if err == nil {
		return strings.ReplaceAll(id.String(), "-", "")
	}
	return "t" + strconv.FormatInt(time.Now().UnixNano(), 36)
}

// ClientIP resolves the caller address from X-Forwarded-For, X-Real-IP or RemoteAddr, without a port.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return stripPort(ip)
		}
	}
	if real := strings.TrimSpace(r.Header.Get("X-Real-IP")); real != "" {
		return stripPort(real)
	}
	return stripPort(r.RemoteAddr)
}

func stripPort(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
