package notification

import (
	"fmt"
	"time"

	"resortbook/models"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// SessionRoleKey is where the websocket handler stores the caller's role.
const SessionRoleKey = "role"

// Service delivers an encoded event to listeners.
type Service interface {
	SendMessage(message []byte) error
}

// MelodyService broadcasts to admin websocket sessions only.
type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message []byte) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.BroadcastFilter(message, func(session *melody.Session) bool {
		role, ok := session.Get(SessionRoleKey)
		return ok && role == models.RoleAdmin
	})
}

type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
	At    time.Time   `json:"at"`
}

type MessageBuilder struct {
	event string
	data  interface{}
	at    time.Time
}

func NewMessageBuilder(event string) *MessageBuilder {
	return &MessageBuilder{event: event, at: time.Now().UTC()}
}

func (b *MessageBuilder) WithData(data interface{}) *MessageBuilder {
	b.data = data
	return b
}

func (b *MessageBuilder) Build() ([]byte, error) {
	return json.Marshal(Event{Event: b.event, Data: b.data, At: b.at})
}

// Publish encodes and sends one event. A nil service drops it.
func Publish(svc Service, event string, data interface{}) error {
	if svc == nil {
		return nil
	}
	msg, err := NewMessageBuilder(event).WithData(data).Build()
	if err != nil {
		return err
	}
	return svc.SendMessage(msg)
}
