// Package chat keeps the global chat: an append-only, size-capped message
// log fanned out to every connected client, with a keyword bot that answers
// common questions.
package chat

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	historyCap = 100
	botName    = "Focus Bot 🤖"
)

const (
	EventHistory    = "chat_history"
	EventNewMessage = "new_chat_message"
)

type Message struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	IsBot     bool      `json:"isBot,omitempty"`
}

// Event is the chat wire envelope.
type Event struct {
	Type     string    `json:"type"`
	Message  *Message  `json:"message,omitempty"`
	Messages []Message `json:"messages,omitempty"`
}

// Service owns the capped log. publish is invoked outside the lock with a
// ready-to-send Event for every appended message.
type Service struct {
	logger   *slog.Logger
	publish  func(v any)
	botDelay time.Duration

	mu       sync.Mutex
	messages []Message
}

func NewService(logger *slog.Logger, publish func(v any), botDelay time.Duration) *Service {
	return &Service{
		logger:   logger,
		publish:  publish,
		botDelay: botDelay,
	}
}

// Join replays the history to one client via send.
func (s *Service) Join(send func(v any)) {
	send(Event{Type: EventHistory, Messages: s.History()})
}

// Post appends a message and broadcasts it. A keyword match schedules a bot
// reply after the configured delay.
func (s *Service) Post(sender, text string) {
	msg := s.append(Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now().UTC(),
	})
	s.publish(Event{Type: EventNewMessage, Message: &msg})

	reply, ok := botReply(text)
	if !ok {
		return
	}
	s.logger.Debug("bot reply scheduled", "sender", sender)
	time.AfterFunc(s.botDelay, func() {
		bot := s.append(Message{
			ID:        uuid.NewString(),
			Sender:    botName,
			Text:      reply,
			Timestamp: time.Now().UTC(),
			IsBot:     true,
		})
		s.publish(Event{Type: EventNewMessage, Message: &bot})
	})
}

// History returns a copy of the current log, oldest first.
func (s *Service) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Service) append(msg Message) Message {
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	if len(s.messages) > historyCap {
		s.messages = s.messages[len(s.messages)-historyCap:]
	}
	s.mu.Unlock()
	return msg
}

// botReply matches help/greeting/game keywords in English and Kazakh.
func botReply(text string) (string, bool) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "help") || strings.Contains(lower, "көмек"):
		return "I'm here to help! You can ask about games, guilds, or battles. / Мен көмектесуге дайынмын! Ойындар, гильдиялар немесе жарыстар туралы сұраңыз.", true
	case strings.Contains(lower, "hello") || strings.Contains(lower, "сәлем"):
		return "Hello there! Ready to train your brain? / Сәлем! Миыңызды жаттықтыруға дайынсыз ба?", true
	case strings.Contains(lower, "game") || strings.Contains(lower, "ойын"):
		return "We have Schulte Table, Math, Stroop, and more! Check the Daily Workout. / Бізде Шульте кестесі, Математика, Струп және т.б. бар! Күнделікті жаттығуды тексеріңіз.", true
	}
	return "", false
}
