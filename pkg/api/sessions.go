package api

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kibria30/Mini-Gomoku/pkg/engine"
)

// maxSessions bounds how many engines can be alive at once. Each session
// owns a transposition table, so the count is a memory cap.
const maxSessions = 64

type session struct {
	id       string
	engine   *engine.Engine
	lastUsed time.Time
}

// sessionStore hands out one engine per caller so concurrent games do not
// share transposition state. Unknown or empty session ids get a fresh
// engine under a new uuid; the caller echoes the id back on later requests.
type sessionStore struct {
	mu       sync.Mutex
	opts     engine.Options
	progress func(sessionID string, p engine.Progress)
	sessions map[string]*session
}

func newSessionStore(opts engine.Options, progress func(sessionID string, p engine.Progress)) *sessionStore {
	return &sessionStore{
		opts:     opts,
		progress: progress,
		sessions: make(map[string]*session),
	}
}

func (s *sessionStore) acquire(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" {
		if sess, ok := s.sessions[id]; ok {
			sess.lastUsed = time.Now()
			return sess
		}
	}
	if len(s.sessions) >= maxSessions {
		s.evictOldestLocked()
	}
	newID := uuid.NewString()
	opts := s.opts
	if s.progress != nil {
		opts.Progress = func(p engine.Progress) { s.progress(newID, p) }
	}
	sess := &session{
		id:       newID,
		engine:   engine.NewEngine(opts),
		lastUsed: time.Now(),
	}
	s.sessions[sess.id] = sess
	return sess
}

func (s *sessionStore) evictOldestLocked() {
	var oldest *session
	for _, sess := range s.sessions {
		if oldest == nil || sess.lastUsed.Before(oldest.lastUsed) {
			oldest = sess
		}
	}
	if oldest != nil {
		delete(s.sessions, oldest.id)
	}
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
