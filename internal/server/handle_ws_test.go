package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nhooyr.io/websocket"

	"github.com/focusbrain/arena/internal/arena"
	"github.com/focusbrain/arena/internal/chat"
)

func fixedGen() arena.Question {
	return arena.Question{Text: "2 + 2", Answer: 4, Options: []int{4, 5, 6, 7}}
}

func newArenaServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.Default()
	gw := arena.NewGateway(logger)
	reg := arena.NewRegistry()
	mm := arena.NewMatchmaker(logger, gw, reg, fixedGen, nil, 0)
	chatSvc := chat.NewService(logger, gw.Broadcast, 0)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/arena", handleArenaWS(logger, mm, gw, chatSvc))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func dialArena(ctx context.Context, t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + srv.URL[len("http"):] + "/ws/arena"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.CloseNow() })
	return conn
}

func sendMsg(ctx context.Context, t *testing.T, conn *websocket.Conn, msg clientMessage) {
	t.Helper()

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func readArenaEvent(ctx context.Context, t *testing.T, conn *websocket.Conn) arena.Event {
	t.Helper()

	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var ev arena.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatalf("unmarshal %q: %v", data, err)
	}
	return ev
}

func TestDuelOverWebSocket(t *testing.T) {
	srv := newArenaServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialArena(ctx, t, srv)
	sendMsg(ctx, t, connA, clientMessage{Type: msgFindMatch})
	if ev := readArenaEvent(ctx, t, connA); ev.Type != arena.EventWaiting {
		t.Fatalf("A event = %q, want %q", ev.Type, arena.EventWaiting)
	}

	connB := dialArena(ctx, t, srv)
	sendMsg(ctx, t, connB, clientMessage{Type: msgFindMatch})

	matchedB := readArenaEvent(ctx, t, connB)
	if matchedB.Type != arena.EventMatchFound || matchedB.RoomID == "" {
		t.Fatalf("B event = %+v, want match_found with a room", matchedB)
	}
	startB := readArenaEvent(ctx, t, connB)
	if startB.Type != arena.EventGameStart || startB.Question == nil {
		t.Fatalf("B event = %+v, want game_start with a question", startB)
	}

	matchedA := readArenaEvent(ctx, t, connA)
	if matchedA.Type != arena.EventMatchFound || matchedA.RoomID != matchedB.RoomID {
		t.Fatalf("A event = %+v, want match_found in room %s", matchedA, matchedB.RoomID)
	}
	if ev := readArenaEvent(ctx, t, connA); ev.Type != arena.EventGameStart {
		t.Fatalf("A event = %q, want %q", ev.Type, arena.EventGameStart)
	}

	roomID := matchedB.RoomID
	answer := 4

	// Correct answer advances the round for both participants.
	sendMsg(ctx, t, connA, clientMessage{Type: msgSubmitAnswer, RoomID: roomID, Answer: &answer})
	nextA := readArenaEvent(ctx, t, connA)
	if nextA.Type != arena.EventNextQuestion {
		t.Fatalf("A event = %q, want %q", nextA.Type, arena.EventNextQuestion)
	}
	if nextA.Scores == nil {
		t.Error("next_question missing scores")
	}
	if ev := readArenaEvent(ctx, t, connB); ev.Type != arena.EventNextQuestion {
		t.Fatalf("B event = %q, want %q", ev.Type, arena.EventNextQuestion)
	}

	// Wrong answer bounces back to the submitter only.
	wrong := 5
	sendMsg(ctx, t, connA, clientMessage{Type: msgSubmitAnswer, RoomID: roomID, Answer: &wrong})
	if ev := readArenaEvent(ctx, t, connA); ev.Type != arena.EventWrongAnswer {
		t.Fatalf("A event = %q, want %q", ev.Type, arena.EventWrongAnswer)
	}

	// B vanishes; A hears about it exactly once.
	connB.CloseNow()
	if ev := readArenaEvent(ctx, t, connA); ev.Type != arena.EventOpponentDisconnected {
		t.Fatalf("A event = %q, want %q", ev.Type, arena.EventOpponentDisconnected)
	}
}

func TestChatOverWebSocket(t *testing.T) {
	srv := newArenaServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialArena(ctx, t, srv)
	connB := dialArena(ctx, t, srv)

	// Joining replays the (empty) history and, once answered, guarantees the
	// connection is registered for broadcasts.
	for _, conn := range []*websocket.Conn{connA, connB} {
		sendMsg(ctx, t, conn, clientMessage{Type: msgChatJoin})

		_, data, err := conn.Read(ctx)
		if err != nil {
			t.Fatalf("read history: %v", err)
		}
		var hist chat.Event
		if err := json.Unmarshal(data, &hist); err != nil {
			t.Fatalf("unmarshal history: %v", err)
		}
		if hist.Type != chat.EventHistory {
			t.Fatalf("event = %q, want %q", hist.Type, chat.EventHistory)
		}
	}

	sendMsg(ctx, t, connA, clientMessage{Type: msgChatMessage, Sender: "alice", Text: "good luck"})

	for _, conn := range []*websocket.Conn{connA, connB} {
		_, data, err := conn.Read(ctx)
		if err != nil {
			t.Fatalf("read broadcast: %v", err)
		}
		var ev chat.Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("unmarshal broadcast: %v", err)
		}
		if ev.Type != chat.EventNewMessage {
			t.Fatalf("event = %q, want %q", ev.Type, chat.EventNewMessage)
		}
		if ev.Message == nil || ev.Message.Sender != "alice" || ev.Message.Text != "good luck" {
			t.Fatalf("message = %+v", ev.Message)
		}
	}
}
