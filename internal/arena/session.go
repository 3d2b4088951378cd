package arena

import "sync"

const (
	// MaxRounds is the number of correctly answered rounds that completes
	// a duel.
	MaxRounds = 10
	// PointsPerRound is credited to whoever answers a round correctly
	// first.
	PointsPerRound = 10
)

type State string

const (
	StatePlaying State = "playing"
	StateEnded   State = "ended"
)

// Outcome classifies one answer submission.
type Outcome int

const (
	// OutcomeStale means the session was no longer playing, or the
	// submitter is not a participant. Stale submissions are expected
	// races and carry no reply.
	OutcomeStale Outcome = iota
	OutcomeWrong
	OutcomeAdvance
	OutcomeGameOver
)

// RoundResult is the snapshot a submission produced, captured under the
// session lock so callers can broadcast without re-reading mutable state.
type RoundResult struct {
	Outcome  Outcome
	Question *Question
	Scores   map[Handle]int
	Winner   Handle
}

// Session is one live 1v1 duel. The two participant handles are fixed at
// creation; everything else mutates under mu so that near-simultaneous
// submissions from both players serialize and only one can take a round.
type Session struct {
	ID string

	players [2]Handle

	mu      sync.Mutex
	scores  map[Handle]int
	current Question
	round   int
	state   State
}

func newSession(id string, a, b Handle, q Question) *Session {
	return &Session{
		ID:      id,
		players: [2]Handle{a, b},
		scores:  map[Handle]int{a: 0, b: 0},
		current: q,
		round:   1,
		state:   StatePlaying,
	}
}

// Participants returns both handles in pairing order.
func (s *Session) Participants() [2]Handle {
	return s.players
}

// Opponent returns the other participant, or "" if h is not a participant.
func (s *Session) Opponent(h Handle) Handle {
	switch h {
	case s.players[0]:
		return s.players[1]
	case s.players[1]:
		return s.players[0]
	}
	return ""
}

// Submit evaluates one answer from h against the question active right now.
// A correct answer scores PointsPerRound and advances the round, generating
// the next question via gen, or ends the duel once MaxRounds rounds are
// done. A submission that lost the race to an already-advanced round is
// evaluated against the new question like any other, matching the original
// no-turn-lock behavior.
func (s *Session) Submit(h Handle, answer int, gen func() Question) RoundResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying {
		return RoundResult{Outcome: OutcomeStale}
	}
	if _, ok := s.scores[h]; !ok {
		return RoundResult{Outcome: OutcomeStale}
	}

	if answer != s.current.Answer {
		return RoundResult{Outcome: OutcomeWrong}
	}

	s.scores[h] += PointsPerRound
	s.round++

	if s.round > MaxRounds {
		s.state = StateEnded
		return RoundResult{
			Outcome: OutcomeGameOver,
			Scores:  s.scoresLocked(),
			Winner:  s.leaderLocked(),
		}
	}

	q := gen()
	s.current = q
	return RoundResult{
		Outcome:  OutcomeAdvance,
		Question: &q,
		Scores:   s.scoresLocked(),
		Winner:   h,
	}
}

// End transitions the session to ended and reports whether this call
// performed the transition. Exactly one caller wins, which keeps teardown
// notifications and reward credits single-shot when a disconnect races a
// final answer.
func (s *Session) End() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateEnded {
		return false
	}
	s.state = StateEnded
	return true
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Round() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

func (s *Session) Scores() map[Handle]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scoresLocked()
}

// QuestionView returns the client-facing view of the active question.
func (s *Session) QuestionView() *QuestionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.View()
}

func (s *Session) scoresLocked() map[Handle]int {
	out := make(map[Handle]int, len(s.scores))
	for h, v := range s.scores {
		out[h] = v
	}
	return out
}

// leaderLocked returns the participant with the higher score, or "" on a
// draw.
func (s *Session) leaderLocked() Handle {
	a, b := s.players[0], s.players[1]
	switch {
	case s.scores[a] > s.scores[b]:
		return a
	case s.scores[b] > s.scores[a]:
		return b
	}
	return ""
}
