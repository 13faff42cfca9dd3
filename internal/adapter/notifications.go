package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/go-six-notes/internal/config"
	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/models"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const (
	notificationsPath = "/api/notifications"

	minReconnectDelay = time.Second
	maxReconnectDelay = 30 * time.Second
)

// NotificationHandler receives every decoded notification frame.
type NotificationHandler func(ctx context.Context, n models.Notification)

// NotificationListener keeps a websocket open to the record service and
// hands remote change signals to a handler.
type NotificationListener struct {
	url    string
	tokens interface{ Token() string }
	logger *logger.Logger

	minDelay time.Duration
	maxDelay time.Duration
}

// NewNotificationListener builds a listener for the service at
// adapterCfg.HTTPAddress. The bearer token is read from tokens on every
// (re)connect so a later login is picked up.
func NewNotificationListener(adapterCfg config.Adapter, tokens interface{ Token() string }, logger *logger.Logger) (*NotificationListener, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	wsURL := baseURL
	switch {
	case strings.HasPrefix(wsURL, "https://"):
		wsURL = "wss://" + strings.TrimPrefix(wsURL, "https://")
	case strings.HasPrefix(wsURL, "http://"):
		wsURL = "ws://" + strings.TrimPrefix(wsURL, "http://")
	}

	return &NotificationListener{
		url:      wsURL + notificationsPath,
		tokens:   tokens,
		logger:   logger,
		minDelay: minReconnectDelay,
		maxDelay: maxReconnectDelay,
	}, nil
}

// Listen blocks until ctx is cancelled. Dropped connections are re-dialled
// with exponential backoff; the delay resets after a successful dial.
func (l *NotificationListener) Listen(ctx context.Context, handle NotificationHandler) error {
	delay := l.minDelay

	for {
		connected, err := l.listenOnce(ctx, handle)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if connected {
			delay = l.minDelay
		}
		l.logger.Warn().Err(err).Str("func", "*NotificationListener.Listen").
			Dur("retry_in", delay).Msg("notification stream interrupted")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if delay > l.maxDelay {
			delay = l.maxDelay
		}
	}
}

func (l *NotificationListener) listenOnce(ctx context.Context, handle NotificationHandler) (bool, error) {
	token := l.tokens.Token()
	if token == "" {
		return false, ErrNotAuthenticated
	}

	conn, _, err := websocket.Dial(ctx, l.url, &websocket.DialOptions{
		HTTPHeader: http.Header{"Authorization": []string{"Bearer " + token}},
	})
	if err != nil {
		return false, fmt.Errorf("dial notifications: %w", err)
	}
	defer conn.CloseNow()

	l.logger.Info().Str("func", "*NotificationListener.listenOnce").Msg("notification stream connected")

	for {
		var n models.Notification
		if err := wsjson.Read(ctx, conn, &n); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || errors.Is(err, context.Canceled) {
				return true, err
			}
			return true, fmt.Errorf("read notification: %w", err)
		}
		handle(ctx, n)
	}
}
