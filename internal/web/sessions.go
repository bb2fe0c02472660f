package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-matcher/internal/ui"
	"go.uber.org/zap"
)

// SessionCookie names the cookie carrying the session id.
const SessionCookie = "sid"

// session is one browser's page state.
type session struct {
	id       string
	shell    *ui.Shell
	lastSeen time.Time
}

// ShellFactory builds the page state for a new session.
type ShellFactory func() *ui.Shell

// sessionRegistry maps session ids to page state and evicts idle sessions.
type sessionRegistry struct {
	newShell ShellFactory
	ttl      time.Duration
	secure   bool
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionRegistry(factory ShellFactory, ttl time.Duration, secure bool, logger *zap.Logger) *sessionRegistry {
	return &sessionRegistry{
		newShell: factory,
		ttl:      ttl,
		secure:   secure,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// resolve returns the session named by the request cookie, creating one
// (and setting the cookie) when it is missing, malformed or expired.
func (reg *sessionRegistry) resolve(w http.ResponseWriter, r *http.Request) *session {
	now := reg.now()

	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			reg.mu.Lock()
			sess, ok := reg.sessions[cookie.Value]
			if ok {
				sess.lastSeen = now
			}
			reg.mu.Unlock()
			if ok {
				return sess
			}
		}
	}

	sess := &session{
		id:       uuid.NewString(),
		shell:    reg.newShell(),
		lastSeen: now,
	}
	reg.mu.Lock()
	reg.sessions[sess.id] = sess
	reg.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.id,
		Path:     "/",
		HttpOnly: true,
		Secure:   reg.secure,
		SameSite: http.SameSiteLaxMode,
	})
	reg.logger.Debug("session created", zap.String("sid", sess.id))
	return sess
}

// sweep drops sessions idle for longer than the TTL.
func (reg *sessionRegistry) sweep() int {
	if reg.ttl <= 0 {
		return 0
	}
	cutoff := reg.now().Add(-reg.ttl)

	reg.mu.Lock()
	defer reg.mu.Unlock()

	removed := 0
	for id, sess := range reg.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(reg.sessions, id)
			removed++
		}
	}
	return removed
}

func (reg *sessionRegistry) count() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.sessions)
}

// run sweeps on interval until ctx is done.
func (reg *sessionRegistry) run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := reg.sweep(); n > 0 {
				reg.logger.Info("evicted idle sessions", zap.Int("count", n))
			}
		case <-ctx.Done():
			return nil
		}
	}
}
