package arena

// Handle identifies one live connection. It carries no identity beyond the
// connection itself; the transport layer assigns it at accept time and it
// dies with the connection.
type Handle string

// Event types pushed to clients.
const (
	EventWaiting              = "waiting_for_opponent"
	EventMatchFound           = "match_found"
	EventGameStart            = "game_start"
	EventNextQuestion         = "next_question"
	EventWrongAnswer          = "wrong_answer"
	EventGameOver             = "game_over"
	EventOpponentDisconnected = "opponent_disconnected"
)

// Event is the single wire shape for all engine-to-client pushes. Fields are
// populated per event type; everything else stays omitted.
type Event struct {
	Type       string         `json:"type"`
	RoomID     string         `json:"roomId,omitempty"`
	OpponentID Handle         `json:"opponentId,omitempty"`
	Question   *QuestionView  `json:"question,omitempty"`
	Scores     map[Handle]int `json:"scores,omitempty"`
	WinnerID   Handle         `json:"winnerId,omitempty"`
}
