package chat

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/i474232898/sabia-weather/internal/i18n"
	"github.com/i474232898/sabia-weather/internal/weather"
)

// DefaultMaxMessages bounds the transcript.
const DefaultMaxMessages = 50

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "ai"
)

// Message is one transcript line.
type Message struct {
	ID     string    `json:"id"`
	Sender Sender    `json:"sender"`
	Text   string    `json:"text"`
	Topic  Topic     `json:"topic,omitempty"`
	SentAt time.Time `json:"sentAt"`
}

// Session keeps a bounded, concurrency-safe chat transcript. The oldest
// messages are dropped once the limit is reached.
type Session struct {
	mu          sync.Mutex
	messages    []Message
	maxMessages int
	clock       clockwork.Clock
}

// NewSession creates a Session. maxMessages <= 0 selects DefaultMaxMessages;
// a nil clock uses real time.
func NewSession(maxMessages int, clk clockwork.Clock) *Session {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &Session{maxMessages: maxMessages, clock: clk}
}

// Welcome returns the greeting shown when the chat opens.
func Welcome(lang i18n.Language) string {
	return i18n.T(lang, i18n.KeyChatWelcome)
}

// Send records the user's message and the assistant's reply and returns the
// reply. Blank messages are ignored and yield ok=false.
func (s *Session) Send(text string, lang i18n.Language, reading *weather.CanonicalReading) (Message, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, false
	}

	answer, topic := Answer(text, lang, reading)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.append(Message{ID: uuid.NewString(), Sender: SenderUser, Text: text, SentAt: now})
	out := Message{ID: uuid.NewString(), Sender: SenderAssistant, Text: answer, Topic: topic, SentAt: now}
	s.append(out)
	return out, true
}

// Messages returns a copy of the transcript, oldest first.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Reset clears the transcript.
func (s *Session) Reset() {
	s.mu.Lock()
	s.messages = nil
	s.mu.Unlock()
}

func (s *Session) append(m Message) {
	s.messages = append(s.messages, m)
	if over := len(s.messages) - s.maxMessages; over > 0 {
		s.messages = s.messages[over:]
	}
}
