package service

import (
	"errors"
	"sync"

	"room-planner/internal/planner/editor"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ============================================================
// Session Manager
// ============================================================

var ErrSessionNotFound = errors.New("session not found")

// Session связывает редактор с мьютексом, через который идут его команды.
type Session struct {
	ID string

	mu     sync.Mutex
	editor *editor.Editor
}

// Do выполняет fn под мьютексом сессии: одна команда за раз.
func (s *Session) Do(fn func(*editor.Editor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.editor)
}

type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	logger   *zap.Logger
}

func NewSessionManager(logger *zap.Logger) *SessionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

func (m *SessionManager) Create() *Session {
	token := uuid.NewString()
	s := &Session{
		ID:     token,
		editor: editor.New(editor.WithLogger(m.logger.With(zap.String("session_id", token)))),
	}

	m.mu.Lock()
	m.sessions[token] = s
	m.mu.Unlock()

	return s
}

func (m *SessionManager) Resolve(token string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *SessionManager) Close(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[token]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, token)
	return nil
}

func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
