package frame

import (
	"time"
)

const (
	maxMessages     = 15
	maxHistory      = 64
	messageLifetime = 15 * time.Second
)

type message struct {
	text   string
	expire time.Time
}

// Messages keeps the talk and game messages: a short list shown on screen
// until it expires, and a longer history for scrollback.
type Messages struct {
	recent  []message
	history []string
	now     func() time.Time
}

func NewMessages() *Messages {
	return &Messages{now: time.Now}
}

// Add appends a message. Empty messages are ignored.
func (m *Messages) Add(msg string) {
	if msg == "" {
		return
	}
	m.recent = append(m.recent, message{text: msg, expire: m.now().Add(messageLifetime)})
	if len(m.recent) > maxMessages {
		m.recent = m.recent[len(m.recent)-maxMessages:]
	}
	m.history = append(m.history, msg)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
}

// Recent returns the messages that have not expired and drops the rest.
func (m *Messages) Recent() []string {
	now := m.now()
	var out []string
	keep := m.recent[:0]
	for _, msg := range m.recent {
		if now.After(msg.expire) {
			continue
		}
		out = append(out, msg.text)
		keep = append(keep, msg)
	}
	m.recent = keep
	return out
}

// History returns every message kept for scrollback, oldest first.
func (m *Messages) History() []string {
	return append([]string(nil), m.history...)
}

// Clear forgets everything.
func (m *Messages) Clear() {
	m.recent = nil
	m.history = nil
}
