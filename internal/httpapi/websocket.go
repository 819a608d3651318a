package httpapi

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ChamsBouzaiene/campus/internal/chat"
)

const wsReadLimit = 64 << 10

// A nil CheckOrigin rejects upgrades whose Origin host differs from the
// request host.
var upgrader = websocket.Upgrader{}

type wsFrame struct {
	Type string `json:"type"`
	*chat.Reply
	Error string `json:"error,omitempty"`
}

func (h *handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(wsReadLimit)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		frame := h.wsTurn(r, data)
		if err := conn.WriteJSON(frame); err != nil {
			h.logger.Warn("websocket write failed", zap.Error(err))
			return
		}
	}
}

func (h *handler) wsTurn(r *http.Request, data []byte) wsFrame {
	req, err := chat.DecodeRequest(data)
	if err == nil {
		var reply *chat.Reply
		if reply, err = h.svc.Handle(r.Context(), req); err == nil {
			return wsFrame{Type: "reply", Reply: reply}
		}
	}
	if !chat.IsClientError(err) {
		h.logger.Error("websocket turn failed", zap.String("session_id", req.SessionID), zap.Error(err))
	}
	return wsFrame{Type: "error", Error: chat.ErrorMessage(err)}
}
