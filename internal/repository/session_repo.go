package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"DrishtiGPT-Learning-Backend/internal/quiz"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SessionContext is the state of one learner: the selected video, the quiz in progress
// and the last summary. Callers hold Lock for the whole of one interaction.
type SessionContext struct {
	ID        string
	CreatedAt time.Time

	mu          sync.Mutex
	VideoID     string
	Quiz        *quiz.Session
	LastSummary string

	lastSeen atomic.Int64
}

func (c *SessionContext) Lock()   { c.mu.Lock() }
func (c *SessionContext) Unlock() { c.mu.Unlock() }

func (c *SessionContext) LastSeen() time.Time {
	return time.Unix(0, c.lastSeen.Load())
}

func (c *SessionContext) touch(now time.Time) {
	c.lastSeen.Store(now.UnixNano())
}

type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*SessionContext
	idle     time.Duration
	now      func() time.Time
	log      *logrus.Entry
}

func NewSessionRepository(idle time.Duration, logger *logrus.Logger) *SessionRepository {
	repo := &SessionRepository{
		sessions: make(map[string]*SessionContext),
		idle:     idle,
		now:      time.Now,
		log:      logger.WithField("component", "session-repo"),
	}
	repo.log.Infof("[Sessions] store initialized, idle expiry %s", idle)
	return repo
}

// Get returns a live session and marks it as seen.
func (r *SessionRepository) Get(id string) (*SessionContext, bool) {
	if id == "" {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	sc, found := r.sessions[id]
	if !found {
		return nil, false
	}
	// touched under the read lock so a concurrent Sweep sees the new time
	sc.touch(r.now())
	return sc, true
}

// GetOrCreate returns the session for id, or a fresh one under a new id when id is
// unknown or expired.
func (r *SessionRepository) GetOrCreate(id string) (*SessionContext, bool) {
	if sc, ok := r.Get(id); ok {
		return sc, false
	}

	now := r.now()
	sc := &SessionContext{
		ID:        uuid.NewString(),
		CreatedAt: now,
		Quiz:      quiz.NewSession(),
	}
	sc.touch(now)

	r.mu.Lock()
	r.sessions[sc.ID] = sc
	count := len(r.sessions)
	r.mu.Unlock()

	r.log.WithField("session_id", sc.ID).Debugf("[Sessions] created, %d active", count)
	return sc, true
}

func (r *SessionRepository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[id]; !exists {
		return false
	}
	delete(r.sessions, id)
	r.log.WithField("session_id", id).Debug("[Sessions] ended")
	return true
}

func (r *SessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than the expiry. A session that is in the
// middle of an interaction is left for the next sweep.
func (r *SessionRepository) Sweep() int {
	cutoff := r.now().Add(-r.idle)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, sc := range r.sessions {
		if !sc.LastSeen().Before(cutoff) {
			continue
		}
		if !sc.mu.TryLock() {
			continue
		}
		if !sc.LastSeen().Before(cutoff) {
			sc.mu.Unlock()
			continue
		}
		delete(r.sessions, id)
		sc.mu.Unlock()
		removed++
	}
	if removed > 0 {
		r.log.Infof("[Sessions] swept %d idle sessions, %d remain", removed, len(r.sessions))
	}
	return removed
}

// RunJanitor sweeps every interval until ctx is cancelled.
func (r *SessionRepository) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
