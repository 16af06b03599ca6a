// Package sessions holds the in-process store for anonymous web-chat
// conversations. Nothing here is persisted; a restart drops all sessions.
package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/SuperiorKe/sms-africas-talking/app/utils/logging"

	"go.uber.org/zap"
)

// DefaultMaxTurns bounds how much context a web session retains.
const DefaultMaxTurns = 10

type Turn struct {
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type session struct {
	turns     []Turn
	createdAt time.Time
}

// Store is safe for concurrent use. Sessions expire ttl after creation;
// expiry is enforced by SweepExpired, called either by the background
// sweeper or the manual cleanup endpoint.
type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	maxTurns int
	sessions map[string]*session
}

func NewStore(ttl time.Duration, maxTurns int) *Store {
	return &Store{
		ttl:      ttl,
		maxTurns: maxTurns,
		sessions: make(map[string]*session),
	}
}

// Append records one turn, creating the session on first sight and
// trimming the history to the last maxTurns entries.
func (s *Store) Append(id, sender, text string) {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{createdAt: now}
		s.sessions[id] = sess
	}
	sess.turns = append(sess.turns, Turn{Sender: sender, Text: text, Timestamp: now})
	if len(sess.turns) > s.maxTurns {
		sess.turns = sess.turns[len(sess.turns)-s.maxTurns:]
	}
}

// History returns a copy of all retained turns for a session.
func (s *Store) History(id string) ([]Turn, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	turns := make([]Turn, len(sess.turns))
	copy(turns, sess.turns)
	return turns, true
}

// Recent returns the last n turns, oldest first.
func (s *Store) Recent(id string, n int) []Turn {
	turns, ok := s.History(id)
	if !ok {
		return nil
	}
	if len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	return turns
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// SweepExpired removes sessions created more than ttl before now and
// returns how many were removed.
func (s *Store) SweepExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.createdAt) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StartSweeper runs SweepExpired on a ticker until ctx is cancelled.
func (s *Store) StartSweeper(ctx context.Context, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := s.SweepExpired(time.Now().UTC()); removed > 0 {
					logging.AppLogger.Info("swept expired web sessions",
						zap.Int("removed", removed),
						zap.Int("active", s.Len()),
					)
				}
			}
		}
	}()
}
