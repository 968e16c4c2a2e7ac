package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/neonclouds/neonclouds-backend/pkg/config"
	"github.com/neonclouds/neonclouds-backend/pkg/errors"
	"github.com/neonclouds/neonclouds-backend/pkg/logger"
)

// Store keeps live sessions in memory, keyed by opaque token. Sessions
// expire after cfg.TTL of inactivity and are reaped by Sweep.
type Store struct {
	cfg  config.SessionConfig
	logg *logger.Logger
	now  func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore(cfg config.SessionConfig, logg *logger.Logger) *Store {
	return &Store{
		cfg:      cfg,
		logg:     logg,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create mints a new session and returns it with its token.
func (st *Store) Create() (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.cfg.MaxSessions > 0 && len(st.sessions) >= st.cfg.MaxSessions {
		if !st.evictOldestLocked() {
			return nil, errors.New(errors.CodeRateLimit, "too many active sessions, try again shortly")
		}
	}

	id := uuid.NewString()
	s := newSession(id, st.now())
	st.sessions[id] = s
	return s, nil
}

// Get returns the session for token, refreshing its activity clock.
func (st *Store) Get(token string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[token]
	st.mu.RUnlock()
	if !ok {
		return nil, errors.New(errors.CodeNotFound, "session not found or expired")
	}
	now := st.now()
	if st.cfg.TTL > 0 && now.Sub(s.seen()) > st.cfg.TTL {
		st.Delete(token)
		return nil, errors.New(errors.CodeNotFound, "session not found or expired")
	}
	s.touch(now)
	return s, nil
}

// Delete discards the session for token; unknown tokens are a no-op.
func (st *Store) Delete(token string) {
	st.mu.Lock()
	delete(st.sessions, token)
	st.mu.Unlock()
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops every session idle longer than the TTL and returns how
// many were reaped.
func (st *Store) Sweep() int {
	if st.cfg.TTL <= 0 {
		return 0
	}
	cutoff := st.now().Add(-st.cfg.TTL)

	st.mu.Lock()
	defer st.mu.Unlock()
	reaped := 0
	for token, s := range st.sessions {
		if s.seen().Before(cutoff) {
			delete(st.sessions, token)
			reaped++
		}
	}
	return reaped
}

// RunSweeper sweeps on the configured interval until ctx is done.
func (st *Store) RunSweeper(ctx context.Context) {
	interval := st.cfg.SweepInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(); n > 0 && st.logg != nil {
				swept := st.logg.WithFields(ctx, map[string]any{"reaped": n, "live": st.Len()})
				st.logg.Info(swept, "session.sweep")
			}
		}
	}
}

// evictOldestLocked frees one slot by dropping the least recently seen
// session. Caller holds st.mu.
func (st *Store) evictOldestLocked() bool {
	var (
		oldestToken string
		oldestSeen  time.Time
	)
	for token, s := range st.sessions {
		seen := s.seen()
		if oldestToken == "" || seen.Before(oldestSeen) {
			oldestToken = token
			oldestSeen = seen
		}
	}
	if oldestToken == "" {
		return false
	}
	delete(st.sessions, oldestToken)
	return true
}
