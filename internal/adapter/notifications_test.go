package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-six-notes/internal/config"
	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/models"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestNewNotificationListener_SchemeMapping(t *testing.T) {
	l, err := NewNotificationListener(config.Adapter{HTTPAddress: "https://notes.example.com"}, staticToken(""), logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "wss://notes.example.com/api/notifications", l.url)

	l, err = NewNotificationListener(config.Adapter{HTTPAddress: "localhost:8080"}, staticToken(""), logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:8080/api/notifications", l.url)
}

func TestNotificationListener_DeliversAndReconnects(t *testing.T) {
	var dials atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, notificationsPath, r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		n := dials.Add(1)

		_ = wsjson.Write(r.Context(), conn, models.Notification{
			SubscriptionID: "sub-1",
			RecordType:     models.NoteRecordType,
			RecordName:     models.RecordName(int(n)),
			Reason:         models.NotificationReasonUpdated,
		})
		// drop the connection to force a reconnect
		_ = conn.Close(websocket.StatusGoingAway, "bye")
	}))
	defer srv.Close()

	l, err := NewNotificationListener(config.Adapter{HTTPAddress: srv.URL}, staticToken("tok"), logger.Nop())
	require.NoError(t, err)
	l.minDelay = 5 * time.Millisecond
	l.maxDelay = 10 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got := make(chan models.Notification, 8)
	done := make(chan error, 1)
	go func() {
		done <- l.Listen(ctx, func(_ context.Context, n models.Notification) { got <- n })
	}()

	first := <-got
	second := <-got
	cancel()

	assert.Equal(t, "note_1", first.RecordName)
	assert.Equal(t, "note_2", second.RecordName)
	assert.Equal(t, models.NotificationReasonUpdated, first.Reason)
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestNotificationListener_WithoutTokenWaits(t *testing.T) {
	l, err := NewNotificationListener(config.Adapter{HTTPAddress: "http://127.0.0.1:1"}, staticToken(""), logger.Nop())
	require.NoError(t, err)
	l.minDelay = time.Millisecond
	l.maxDelay = 2 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err = l.Listen(ctx, func(context.Context, models.Notification) {
		t.Fatal("no notification expected")
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
