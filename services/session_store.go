package services

import (
	"sync"
	"time"

	"health-chatbot-backend/models"
)

// SessionStore keeps per-phone conversation sessions in memory. Sessions are
// created lazily on first message and live for the process lifetime; history
// is capped per session with oldest-first eviction.
type SessionStore struct {
	mu         sync.RWMutex
	sessions   map[string]*models.ConversationSession
	maxHistory int
}

func NewSessionStore(maxHistory int) *SessionStore {
	if maxHistory <= 0 {
		maxHistory = 50
	}
	return &SessionStore{
		sessions:   make(map[string]*models.ConversationSession),
		maxHistory: maxHistory,
	}
}

// Append records an inbound message for phone, creating the session if absent.
func (s *SessionStore) Append(phone, text, userName, language string) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[phone]
	if !ok {
		session = &models.ConversationSession{
			Phone:     phone,
			UserName:  userName,
			Language:  language,
			StartedAt: now,
		}
		s.sessions[phone] = session
	}

	session.History = append(session.History, models.SessionEntry{Text: text, Timestamp: now})
	if overflow := len(session.History) - s.maxHistory; overflow > 0 {
		session.History = append(session.History[:0:0], session.History[overflow:]...)
	}
}

// Get returns a copy of the session for phone, or false if none exists.
func (s *SessionStore) Get(phone string) (models.ConversationSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[phone]
	if !ok {
		return models.ConversationSession{}, false
	}
	copied := *session
	copied.History = append([]models.SessionEntry(nil), session.History...)
	return copied, true
}

// Count returns the number of active sessions.
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
