package admission

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultMaxActive is the default cap on concurrent operator sessions.
const DefaultMaxActive = 2

// DefaultIdleExpiry is how long a session may go without a heartbeat before
// the next TryEnter purges it.
const DefaultIdleExpiry = 10 * time.Minute

// Controller bounds the number of simultaneously active operator sessions.
// Expired sessions are purged lazily on each TryEnter, not by a background
// timer. Every admission decision is computed from a fresh read of the full
// session set; within one process the mutex makes the cap hard.
type Controller struct {
	store      SessionStore
	logger     *zap.Logger
	maxActive  int
	idleExpiry time.Duration

	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

// NewController creates a new Controller. maxActive and idleExpiry fall back
// to the defaults when zero or negative.
func NewController(store SessionStore, logger *zap.Logger, maxActive int, idleExpiry time.Duration) *Controller {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	if maxActive <= 0 {
		maxActive = DefaultMaxActive
	}
	if idleExpiry <= 0 {
		idleExpiry = DefaultIdleExpiry
	}

	return &Controller{
		store:      store,
		logger:     logger,
		maxActive:  maxActive,
		idleExpiry: idleExpiry,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// TryEnter purges idle-expired sessions, then admits the caller if there is
// capacity left. On rejection the result reports the caller's approximate
// queue position (active + 1).
func (c *Controller) TryEnter() (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	active, err := c.purgeExpired()
	if err != nil {
		return Result{}, err
	}

	if len(active) >= c.maxActive {
		res := Result{
			Allowed:  false,
			Active:   len(active),
			Max:      c.maxActive,
			Position: len(active) + 1,
		}
		c.logger.Info("session rejected, no capacity", zap.Int("active", res.Active), zap.Int("max", res.Max), zap.Int("position", res.Position))
		return res, nil
	}

	sess := &Session{
		ID:            c.newID(),
		LastHeartbeat: c.now(),
	}
	if err := c.store.Set(sess); err != nil {
		c.logger.Error("failed to save session", zap.String("session_id", sess.ID), zap.Error(err))
		return Result{}, fmt.Errorf("failed to save session: %w", err)
	}

	res := Result{
		Allowed:   true,
		SessionID: sess.ID,
		Active:    len(active) + 1,
		Max:       c.maxActive,
	}
	c.logger.Info("session admitted", zap.String("session_id", sess.ID), zap.Int("active", res.Active), zap.Int("max", res.Max))
	return res, nil
}

// Heartbeat refreshes the named session's idle-expiry clock. A heartbeat for
// a session that was already purged is a no-op, not an error.
func (c *Controller) Heartbeat(sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sessions, err := c.store.GetAll()
	if err != nil {
		return fmt.Errorf("failed to read sessions: %w", err)
	}
	for _, sess := range sessions {
		if sess.ID == sessionID {
			sess.LastHeartbeat = c.now()
			if err := c.store.Set(sess); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}
			return nil
		}
	}
	return nil
}

// Leave removes the session. Idempotent: leaving twice is not an error.
func (c *Controller) Leave(sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Delete(sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	c.logger.Info("session left", zap.String("session_id", sessionID))
	return nil
}

// Status returns the current active count and the cap without mutating
// anything. Expired-but-unpurged sessions still count until the next
// TryEnter sweeps them.
func (c *Controller) Status() (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sessions, err := c.store.GetAll()
	if err != nil {
		return Status{}, fmt.Errorf("failed to read sessions: %w", err)
	}
	return Status{Active: len(sessions), Max: c.maxActive}, nil
}

// purgeExpired removes sessions whose last heartbeat is older than the idle
// expiry and returns the survivors. Caller must hold c.mu.
func (c *Controller) purgeExpired() ([]*Session, error) {
	sessions, err := c.store.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}

	now := c.now()
	alive := make([]*Session, 0, len(sessions))
	for _, sess := range sessions {
		if now.Sub(sess.LastHeartbeat) >= c.idleExpiry {
			if err := c.store.Delete(sess.ID); err != nil {
				return nil, fmt.Errorf("failed to purge session: %w", err)
			}
			c.logger.Info("session expired", zap.String("session_id", sess.ID))
			continue
		}
		alive = append(alive, sess)
	}
	return alive, nil
}
