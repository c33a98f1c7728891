package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/ball-contest-support/internal/hub"
	"github.com/DoyleJ11/ball-contest-support/internal/match"
	"github.com/DoyleJ11/ball-contest-support/internal/types"
)

const writeTimeout = 3 * time.Second

// Handler streams a match's snapshots to the client and accepts observations
// and enable toggles coming the other way.
func Handler(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		m, err := h.Get(r.Context(), code)
		if errors.Is(err, hub.ErrMatchNotFound) {
			http.Error(w, "match not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		clientID := uuid.NewString()
		log := log.With(zap.String("match", code), zap.String("client", clientID))

		out := make(chan match.Snapshot, 8)
		if err := m.Send(r.Context(), match.Join{ClientID: clientID, Outbox: out}); err != nil {
			conn.Close(websocket.StatusGoingAway, "match closed")
			return
		}
		log.Debug("subscriber joined")
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = m.Send(ctx, match.Leave{ClientID: clientID})
			log.Debug("subscriber left")
		}()

		// Writer goroutine. out is closed by the match when we leave, when
		// we fall behind or when the match shuts down.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				if err := write(writeCtx, conn, types.SnapshotMessage(snap)); err != nil {
					log.Debug("snapshot write failed", zap.Error(err))
				}
			}
			conn.Close(websocket.StatusGoingAway, "stream ended")
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					log.Debug("read failed", zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = write(r.Context(), conn, types.ErrorMessage("bad json"))
				continue
			}

			msg, err := toMatchMsg(cm)
			if err != nil {
				_ = write(r.Context(), conn, types.ErrorMessage(err.Error()))
				continue
			}
			if err := m.Send(r.Context(), msg); err != nil {
				return
			}
		}
	}
}

func toMatchMsg(cm types.ClientMessage) (match.Msg, error) {
	switch cm.Type {
	case "Observe":
		if cm.Observation == nil {
			return nil, errors.New("missing observation")
		}
		obs, err := types.ToObserve(*cm.Observation)
		if err != nil {
			return nil, err
		}
		return obs, nil
	case "SetEnabled":
		if cm.Enabled == nil {
			return nil, errors.New("missing enabled")
		}
		return match.SetEnabled{Enabled: *cm.Enabled}, nil
	default:
		return nil, errors.New("unknown type")
	}
}

func write(ctx context.Context, conn *websocket.Conn, msg types.ServerMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, payload)
}
