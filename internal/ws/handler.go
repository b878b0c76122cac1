package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sheikah-slate/relay-server/internal/relay"
	"github.com/sheikah-slate/relay-server/internal/types"
)

const writeTimeout = 3 * time.Second

// Handler upgrades the connection, attaches its outbox to the registry,
// and pumps envelopes between the socket and the coordinator.
func Handler(coord *relay.Coordinator, reg *Registry, originPatterns []string, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			log.Warn("websocket accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		connID := uuid.NewString()
		out := reg.Attach(connID)
		defer reg.Detach(connID)

		coord.Inbox() <- relay.Connect{ConnID: connID}
		// Disconnect is always delivered, even if the read loop died
		// mid-command.
		defer func() { coord.Inbox() <- relay.Disconnect{ConnID: connID} }()

		// Writer goroutine: drains the outbox until the registry closes
		// it (detach or slow-consumer drop).
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for env := range out {
				payload, err := json.Marshal(env)
				if err != nil {
					continue
				}
				ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
			conn.Close(websocket.StatusGoingAway, "dropped")
		}()

		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					log.Debug("read ended", zap.String("conn", connID), zap.Error(err))
				}
				return
			}

			var env types.Envelope
			if err := json.Unmarshal(data, &env); err != nil {
				log.Debug("bad frame", zap.String("conn", connID), zap.Error(err))
				continue
			}
			dispatch(coord, connID, env)
		}
	}
}

func dispatch(coord *relay.Coordinator, connID string, env types.Envelope) {
	switch env.Event {
	case types.EvJoin:
		var key string
		if err := json.Unmarshal(env.Data, &key); err != nil || key == "" {
			return
		}
		coord.Inbox() <- relay.JoinRoom{ConnID: connID, RoomKey: key}
	case types.EvChat:
		coord.Inbox() <- relay.Inbound{ConnID: connID, Payload: env.Data}
	case types.EvNudge:
		coord.Inbox() <- relay.Nudge{ConnID: connID}
	case types.EvTyping:
		coord.Inbox() <- relay.Typing{ConnID: connID}
	case types.EvReaction:
		coord.Inbox() <- relay.Reaction{ConnID: connID, Payload: env.Data}
	default:
		// Unknown events are ignored, not errors.
	}
}
