package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"cricket-live-service/internal/logging"
)

const (
	defaultHandshakeTimeout = 10 * time.Second
	defaultWriteTimeout     = 10 * time.Second
	defaultPingInterval     = 25 * time.Second
	messageBuffer           = 64
)

// WebSocketConfig configures the websocket feed transport.
type WebSocketConfig struct {
	URL              string
	Header           http.Header
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration
	PingInterval     time.Duration
	Logger           *slog.Logger
}

// WebSocketSubscriber opens one websocket connection per topic and sends a subscribe frame.
type WebSocketSubscriber struct {
	cfg    WebSocketConfig
	dialer *websocket.Dialer
}

type subscribeFrame struct {
	Action string `json:"action"`
	Topic  string `json:"topic"`
}

// NewWebSocketSubscriber applies defaults to cfg.
func NewWebSocketSubscriber(cfg WebSocketConfig) *WebSocketSubscriber {
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = defaultHandshakeTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = defaultPingInterval
	}
	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = cfg.HandshakeTimeout
	return &WebSocketSubscriber{cfg: cfg, dialer: &dialer}
}

// Subscribe dials the feed and subscribes to topic. The subscription lives until Close, ctx
// cancellation, or a read failure.
func (s *WebSocketSubscriber) Subscribe(ctx context.Context, topic string) (Subscription, error) {
	conn, resp, err := s.dialer.DialContext(ctx, s.cfg.URL, s.cfg.Header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial feed websocket (status: %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("dial feed websocket: %w", err)
	}

	_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	if err := conn.WriteJSON(subscribeFrame{Action: "subscribe", Topic: topic}); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("send subscribe frame: %w", err)
	}
	_ = conn.SetWriteDeadline(time.Time{})

	st := newStream(ctx, messageBuffer, func() error {
		deadline := time.Now().Add(s.cfg.WriteTimeout)
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		return conn.Close()
	})

	readDone := make(chan struct{})
	go s.readPump(conn, st, topic, readDone)
	go s.pingPump(conn, st, readDone)

	logging.Debug(s.cfg.Logger, "feed websocket subscribed", logging.FieldTopic, topic)
	return st, nil
}

func (s *WebSocketSubscriber) readPump(conn *websocket.Conn, st *stream, topic string, readDone chan struct{}) {
	defer close(readDone)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			logging.Debug(s.cfg.Logger, "feed websocket read ended", logging.FieldTopic, topic, "error", err)
			_ = conn.Close()
			st.finish(err)
			return
		}
		if !st.deliver(data) {
			st.finish(ErrClosed)
			return
		}
	}
}

func (s *WebSocketSubscriber) pingPump(conn *websocket.Conn, st *stream, readDone <-chan struct{}) {
	ticker := time.NewTicker(s.cfg.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(s.cfg.WriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				_ = conn.Close()
				return
			}
		case <-readDone:
			return
		case <-st.done:
			return
		}
	}
}
