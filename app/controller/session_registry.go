package controller

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"shopsmart/catalog"
	"shopsmart/models"
	"shopsmart/session"
	"shopsmart/theme"
)

const (
	// SessionCookie carries the session id.
	SessionCookie = "shopsmart-session"
	// ThemeCookie mirrors the explicit theme choice so it survives new sessions.
	ThemeCookie = theme.StorageKey
	// PrefersColorSchemeHeader is the client hint for the system dark mode.
	PrefersColorSchemeHeader = "Sec-CH-Prefers-Color-Scheme"

	// DefaultIdleTimeout is how long a session survives without requests.
	DefaultIdleTimeout = 30 * time.Minute
	// DefaultMaxSessions bounds the number of live sessions.
	DefaultMaxSessions = 10000
)

// sessionEntry serialises access to one shopper's session.
type sessionEntry struct {
	mu      sync.Mutex
	session *session.Session

	// lastSeen is guarded by SessionRegistry.mu.
	lastSeen time.Time
}

// SessionRegistry maps session cookies to sessions. New sessions start on
// the current catalog; existing sessions keep the snapshot they started with.
// Sessions idle for longer than the idle timeout are dropped, and once the
// registry is full the least recently seen session makes room for a new one.
type SessionRegistry struct {
	catalog atomic.Pointer[catalog.Catalog]
	badges  session.BadgeEvaluator
	logger  *zap.Logger
	now     func() time.Time

	mu          sync.Mutex
	sessions    map[string]*sessionEntry
	idleTimeout time.Duration
	maxSessions int
	lastSweep   time.Time
}

// NewSessionRegistry creates a registry serving c.
func NewSessionRegistry(c *catalog.Catalog, badges session.BadgeEvaluator, logger *zap.Logger) *SessionRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	if badges == nil {
		badges = session.DefaultBadges{}
	}
	reg := &SessionRegistry{
		badges:      badges,
		logger:      logger,
		now:         time.Now,
		sessions:    make(map[string]*sessionEntry),
		idleTimeout: DefaultIdleTimeout,
		maxSessions: DefaultMaxSessions,
	}
	reg.lastSweep = reg.now()
	reg.catalog.Store(c)
	return reg
}

// SetIdleTimeout changes how long a session may go without requests.
// Non-positive values restore DefaultIdleTimeout.
func (reg *SessionRegistry) SetIdleTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultIdleTimeout
	}
	reg.mu.Lock()
	reg.idleTimeout = d
	reg.mu.Unlock()
}

// SetMaxSessions changes the live session bound. Non-positive values
// restore DefaultMaxSessions.
func (reg *SessionRegistry) SetMaxSessions(n int) {
	if n <= 0 {
		n = DefaultMaxSessions
	}
	reg.mu.Lock()
	reg.maxSessions = n
	reg.mu.Unlock()
}

// Sweep drops every session idle for longer than the idle timeout and
// returns how many were dropped.
func (reg *SessionRegistry) Sweep() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.sweepLocked(reg.now())
}

// Run sweeps idle sessions every interval until ctx is done.
func (reg *SessionRegistry) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := reg.Sweep(); n > 0 {
				reg.logger.Info("🧹 Idle sessions dropped", zap.Int("dropped", n), zap.Int("live", reg.Len()))
			}
		}
	}
}

func (reg *SessionRegistry) sweepLocked(now time.Time) int {
	reg.lastSweep = now
	dropped := 0
	for id, entry := range reg.sessions {
		if now.Sub(entry.lastSeen) > reg.idleTimeout {
			delete(reg.sessions, id)
			dropped++
		}
	}
	return dropped
}

func (reg *SessionRegistry) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, entry := range reg.sessions {
		if oldestID == "" || entry.lastSeen.Before(oldest) {
			oldestID, oldest = id, entry.lastSeen
		}
	}
	if oldestID != "" {
		delete(reg.sessions, oldestID)
		reg.logger.Debug("Session evicted to make room", zap.String("session", oldestID))
	}
}

// Catalog returns the catalog new sessions start on.
func (reg *SessionRegistry) Catalog() *catalog.Catalog {
	return reg.catalog.Load()
}

// SetCatalog swaps the catalog for sessions created from now on.
func (reg *SessionRegistry) SetCatalog(c *catalog.Catalog) {
	reg.catalog.Store(c)
	reg.logger.Info("🔄 Catalog swapped for new sessions", zap.Int("products", c.Len()))
}

// Len returns the number of live sessions.
func (reg *SessionRegistry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.sessions)
}

// Do runs fn with the request's session locked, creating the session and
// its cookie when the request has none.
func (reg *SessionRegistry) Do(w http.ResponseWriter, r *http.Request, fn func(s *session.Session)) {
	entry := reg.lookup(w, r)
	entry.mu.Lock()
	defer entry.mu.Unlock()
	fn(entry.session)
}

func (reg *SessionRegistry) lookup(w http.ResponseWriter, r *http.Request) *sessionEntry {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	now := reg.now()
	if now.Sub(reg.lastSweep) >= reg.idleTimeout {
		reg.sweepLocked(now)
	}

	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if entry, ok := reg.sessions[cookie.Value]; ok {
			if now.Sub(entry.lastSeen) <= reg.idleTimeout {
				entry.lastSeen = now
				return entry
			}
			delete(reg.sessions, cookie.Value)
		}
	}

	for len(reg.sessions) >= reg.maxSessions {
		reg.evictOldestLocked()
	}

	var stored string
	if cookie, err := r.Cookie(ThemeCookie); err == nil {
		stored = cookie.Value
	}
	prefersDark := r.Header.Get(PrefersColorSchemeHeader) == string(models.ThemeDark)
	themeCtl := theme.NewController(theme.NewMemoryStore(stored), prefersDark, reg.logger)

	s := session.New(reg.catalog.Load(),
		session.WithTheme(themeCtl),
		session.WithBadges(reg.badges),
		session.WithLogger(reg.logger),
	)
	entry := &sessionEntry{session: s, lastSeen: now}
	reg.sessions[s.ID()] = entry

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    s.ID(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	reg.logger.Info("✓ Session created", zap.String("session", s.ID()), zap.String("theme", string(themeCtl.Current())))
	return entry
}
