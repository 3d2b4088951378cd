package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"nhooyr.io/websocket"

	"github.com/focusbrain/arena/internal/arena"
	"github.com/focusbrain/arena/internal/chat"
)

// Client message types.
const (
	msgFindMatch    = "find_match"
	msgSubmitAnswer = "submit_answer"
	msgChatJoin     = "chat_join"
	msgChatMessage  = "chat_message"
)

// clientMessage is the single shape clients send over the socket. Shape
// validation happens here so the engine only ever sees well-formed intents.
type clientMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId,omitempty"`
	Answer *int   `json:"answer,omitempty"`
	Sender string `json:"sender,omitempty"`
	Text   string `json:"text,omitempty"`
}

func handleArenaWS(logger *slog.Logger, mm *arena.Matchmaker, gw *arena.Gateway, chatSvc *chat.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		handle := arena.Handle(uuid.NewString())
		logger.Info("client connected", "handle", string(handle))

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		out := gw.Register(handle)
		defer func() {
			gw.Unregister(handle)
			// The request context is already dead at this point; teardown
			// still needs to notify the survivor and credit the forfeit.
			dctx, dcancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer dcancel()
			mm.Disconnect(dctx, handle)
			logger.Info("client disconnected", "handle", string(handle))
		}()

		go writeLoop(ctx, conn, out)

		for {
			_, data, err := conn.Read(ctx)
			if err != nil {
				logger.Debug("websocket read ended", "handle", string(handle), "error", err)
				return
			}

			var msg clientMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				logger.Debug("malformed client message", "handle", string(handle), "error", err)
				continue
			}

			switch msg.Type {
			case msgFindMatch:
				mm.FindMatch(handle)

			case msgSubmitAnswer:
				if msg.RoomID == "" || msg.Answer == nil {
					continue
				}
				mm.SubmitAnswer(ctx, handle, msg.RoomID, *msg.Answer)

			case msgChatJoin:
				chatSvc.Join(func(v any) { gw.Send(handle, v) })

			case msgChatMessage:
				text := strings.TrimSpace(msg.Text)
				if text == "" {
					continue
				}
				sender := msg.Sender
				if sender == "" {
					sender = string(handle)
				}
				chatSvc.Post(sender, text)

			default:
				logger.Debug("unknown message type", "handle", string(handle), "type", msg.Type)
			}
		}
	}
}

// writeLoop drains the client's gateway channel onto the wire, preserving
// the per-client event order the engine produced.
func writeLoop(ctx context.Context, conn *websocket.Conn, out <-chan []byte) {
	for {
		select {
		case <-ctx.Done():
			return
		case data := <-out:
			if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
				return
			}
		}
	}
}
