package arena

import (
	"context"
	"log/slog"
	"sync"
)

// Rewarder credits a duel winner. Implementations must tolerate being
// called from concurrent connection handlers; the matchmaker calls it at
// most once per ended session.
type Rewarder interface {
	Credit(ctx context.Context, playerID string, amount int) error
}

// Matchmaker owns the single waiting slot and drives session lifecycle.
// All slot reads-then-writes happen under mu, as does the pairing that
// consumes the slot, so two concurrent find-match calls can neither both
// park nor both pair against the same occupant. The matchmaker lock is
// outermost; registry and session locks are never held together.
type Matchmaker struct {
	logger    *slog.Logger
	gateway   *Gateway
	registry  *Registry
	gen       func() Question
	rewarder  Rewarder
	winReward int

	mu      sync.Mutex
	waiting Handle
}

func NewMatchmaker(logger *slog.Logger, gw *Gateway, reg *Registry, gen func() Question, rewarder Rewarder, winReward int) *Matchmaker {
	if gen == nil {
		gen = Generate
	}
	return &Matchmaker{
		logger:    logger,
		gateway:   gw,
		registry:  reg,
		gen:       gen,
		rewarder:  rewarder,
		winReward: winReward,
	}
}

// FindMatch pairs h with the waiting player, or parks h in the slot. A
// repeated request from the still-waiting handle just re-asserts the wait.
func (m *Matchmaker) FindMatch(h Handle) {
	m.mu.Lock()
	w := m.waiting
	if w == "" || w == h {
		m.waiting = h
		m.mu.Unlock()

		m.gateway.Send(h, Event{Type: EventWaiting})
		m.logger.Info("player waiting for opponent", "handle", string(h))
		return
	}

	m.waiting = ""
	sess := m.registry.Create(w, h, m.gen())
	m.mu.Unlock()

	m.logger.Info("match found",
		"room_id", sess.ID,
		"players", []string{string(w), string(h)})

	question := sess.QuestionView()
	m.gateway.Send(w, Event{Type: EventMatchFound, RoomID: sess.ID, OpponentID: h})
	m.gateway.Send(w, Event{Type: EventGameStart, Question: question})
	m.gateway.Send(h, Event{Type: EventMatchFound, RoomID: sess.ID, OpponentID: w})
	m.gateway.Send(h, Event{Type: EventGameStart, Question: question})
}

// SubmitAnswer routes one answer to its session. Unknown or already-ended
// sessions are ignored: the opponent finished or disconnected a moment
// earlier and the client just has not heard yet.
func (m *Matchmaker) SubmitAnswer(ctx context.Context, h Handle, roomID string, answer int) {
	sess := m.registry.Get(roomID)
	if sess == nil {
		return
	}

	res := sess.Submit(h, answer, m.gen)
	switch res.Outcome {
	case OutcomeStale:
		return

	case OutcomeWrong:
		m.gateway.Send(h, Event{Type: EventWrongAnswer})

	case OutcomeAdvance:
		question := res.Question.View()
		for _, p := range sess.Participants() {
			m.gateway.Send(p, Event{
				Type:     EventNextQuestion,
				Question: question,
				Scores:   res.Scores,
				WinnerID: h,
			})
		}

	case OutcomeGameOver:
		m.registry.Remove(sess.ID)
		for _, p := range sess.Participants() {
			m.gateway.Send(p, Event{
				Type:     EventGameOver,
				Scores:   res.Scores,
				WinnerID: res.Winner,
			})
		}
		m.logger.Info("duel finished", "room_id", sess.ID, "winner", string(res.Winner))
		if res.Winner != "" {
			m.credit(ctx, res.Winner)
		}
	}
}

// Disconnect reconciles a vanished handle: clears the slot if it was
// waiting, and tears down its session if it was mid-duel, notifying the
// survivor exactly once and crediting the forfeit win.
func (m *Matchmaker) Disconnect(ctx context.Context, h Handle) {
	m.mu.Lock()
	if m.waiting == h {
		m.waiting = ""
	}
	sess := m.registry.GetByHandle(h)
	var ended bool
	if sess != nil {
		ended = sess.End()
		m.registry.Remove(sess.ID)
	}
	m.mu.Unlock()

	if sess == nil || !ended {
		return
	}

	opponent := sess.Opponent(h)
	m.gateway.Send(opponent, Event{Type: EventOpponentDisconnected})
	m.logger.Info("duel forfeited",
		"room_id", sess.ID,
		"left", string(h),
		"survivor", string(opponent))
	m.credit(ctx, opponent)
}

// Waiting reports whether the slot is occupied.
func (m *Matchmaker) Waiting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.waiting != ""
}

func (m *Matchmaker) credit(ctx context.Context, winner Handle) {
	if m.rewarder == nil {
		return
	}
	if err := m.rewarder.Credit(ctx, string(winner), m.winReward); err != nil {
		m.logger.Error("crediting winner", "handle", string(winner), "error", err)
	}
}
