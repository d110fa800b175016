// Package chat runs assistant sessions: the user's message is logged at
// once and the responder's reply follows after a short typing delay.
package chat

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"civiconnect-be/models"
	"civiconnect-be/responder"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("chat session not found")
	ErrEmptyMessage    = errors.New("message is empty")
	ErrClosed          = errors.New("chat service closed")
)

const DefaultReplyDelay = 600 * time.Millisecond

// ReplyFunc is called after a delayed reply has been appended.
type ReplyFunc func(sessionID string, reply models.Message)

type Service struct {
	store   Store
	delay   time.Duration
	respond func(string) string
	now     func() time.Time

	mu      sync.RWMutex
	onReply ReplyFunc
	closed  bool

	pending sync.WaitGroup
}

func NewService(store Store, delay time.Duration) *Service {
	if delay < 0 {
		delay = DefaultReplyDelay
	}
	return &Service{
		store:   store,
		delay:   delay,
		respond: responder.Respond,
		now:     time.Now,
	}
}

// OnReply registers fn to be told about every delayed reply.
func (s *Service) OnReply(fn ReplyFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReply = fn
}

// Start opens a session whose log begins with the assistant greeting.
func (s *Service) Start(ctx context.Context) (string, models.Message, error) {
	id := uuid.NewString()
	greeting := models.Message{Sender: models.SenderBot, Text: responder.Greeting, SentAt: s.now()}
	if err := s.store.Create(ctx, id, greeting); err != nil {
		return "", models.Message{}, err
	}
	return id, greeting, nil
}

// Send appends the user's message and schedules the reply. The reply is
// always appended after the message it answers and cannot be canceled.
func (s *Service) Send(ctx context.Context, sessionID, text string) (models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return models.Message{}, ErrEmptyMessage
	}

	// Add happens under mu so it can never race with Close's Wait.
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return models.Message{}, ErrClosed
	}
	s.pending.Add(1)
	s.mu.Unlock()

	msg := models.Message{Sender: models.SenderUser, Text: text, SentAt: s.now()}
	if err := s.store.Append(ctx, sessionID, msg); err != nil {
		s.pending.Done()
		return models.Message{}, err
	}

	reply := s.respond(text)
	time.AfterFunc(s.delay, func() {
		defer s.pending.Done()
		s.deliver(sessionID, reply)
	})
	return msg, nil
}

func (s *Service) deliver(sessionID, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reply := models.Message{Sender: models.SenderBot, Text: text, SentAt: s.now()}
	if err := s.store.Append(ctx, sessionID, reply); err != nil {
		log.Printf("Failed to append reply to chat %s: %v", sessionID, err)
		return
	}

	s.mu.RLock()
	fn := s.onReply
	s.mu.RUnlock()
	if fn != nil {
		fn(sessionID, reply)
	}
}

// History returns the session log in order.
func (s *Service) History(ctx context.Context, sessionID string) ([]models.Message, error) {
	return s.store.Messages(ctx, sessionID)
}

// Wait blocks until every scheduled reply has been delivered.
func (s *Service) Wait() {
	s.pending.Wait()
}

// Close stops accepting messages, then waits for the replies already
// scheduled. Send returns ErrClosed afterwards.
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.pending.Wait()
}
