package arena

import (
	"encoding/json"
	"log/slog"
	"sync"
)

const outboundBuffer = 32

// Gateway fans events out to connected clients. Each handle gets one
// buffered channel, which preserves delivery order per handle; the transport
// layer drains it onto the wire. Sends never block: a full buffer drops the
// event rather than stalling game progress.
type Gateway struct {
	logger *slog.Logger

	mu    sync.RWMutex
	conns map[Handle]chan []byte
}

func NewGateway(logger *slog.Logger) *Gateway {
	return &Gateway{
		logger: logger,
		conns:  make(map[Handle]chan []byte),
	}
}

// Register allocates the outbound channel for h and returns its read side.
func (g *Gateway) Register(h Handle) <-chan []byte {
	ch := make(chan []byte, outboundBuffer)
	g.mu.Lock()
	g.conns[h] = ch
	g.mu.Unlock()
	return ch
}

// Unregister drops h. The channel is not closed; the transport's writer
// stops on its own context instead.
func (g *Gateway) Unregister(h Handle) {
	g.mu.Lock()
	delete(g.conns, h)
	g.mu.Unlock()
}

// Send delivers one JSON-encoded payload to h. Unknown handles and full
// buffers drop silently apart from a log line.
func (g *Gateway) Send(h Handle, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		g.logger.Error("marshaling event", "error", err)
		return
	}

	g.mu.RLock()
	ch, ok := g.conns[h]
	g.mu.RUnlock()
	if !ok {
		return
	}

	select {
	case ch <- data:
	default:
		g.logger.Warn("dropping event for slow client", "handle", string(h))
	}
}

// Broadcast delivers one payload to every connected client.
func (g *Gateway) Broadcast(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		g.logger.Error("marshaling event", "error", err)
		return
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	for h, ch := range g.conns {
		select {
		case ch <- data:
		default:
			g.logger.Warn("dropping event for slow client", "handle", string(h))
		}
	}
}

// Connected reports the number of registered clients.
func (g *Gateway) Connected() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.conns)
}
