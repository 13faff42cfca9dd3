package notify

import (
	"net/http"

	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/coder/websocket"
)

// ServeUser upgrades r to a websocket and streams the notifications of
// userID until the connection drops.
func (h *Hub) ServeUser(w http.ResponseWriter, r *http.Request, userID int64) {
	log := logger.FromRequest(r)

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// клиенты не браузеры, Origin не приходит
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Err(err).Str("func", "*Hub.ServeUser").Msg("websocket accept failed")
		return
	}
	defer conn.CloseNow()

	log.Info().Int64("user_id", userID).Msg("notification stream opened")
	NewClient(h, conn, userID).Run(r.Context())
	log.Info().Int64("user_id", userID).Msg("notification stream closed")
}
