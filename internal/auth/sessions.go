package auth

import (
	"database/sql"
	"encoding/gob"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/mrlokans/library-manager/internal/config"
	"github.com/mrlokans/library-manager/internal/entities"
)

// Session data keys
const (
	SessionKeyAdminID  = "admin_id"
	SessionKeyUsername = "username"
	SessionKeyLoginAt  = "login_at"
	SessionKeyFlash    = "flash"
)

func init() {
	gob.Register(time.Time{})
}

// SessionManager wraps scs.SessionManager with application-specific methods.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a session manager persisting to the SQLite
// database behind sqlDB.
func NewSessionManager(sqlDB *sql.DB, cfg config.Auth) (*SessionManager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := newManager(cfg)
	sm.Store = sqlite3store.New(sqlDB)
	return &SessionManager{SessionManager: sm}, nil
}

// NewMemorySessionManager keeps sessions in process memory. Used when the
// database is not SQLite; sessions do not survive a restart.
func NewMemorySessionManager(cfg config.Auth) *SessionManager {
	sm := newManager(cfg)
	sm.Store = memstore.New()
	return &SessionManager{SessionManager: sm}
}

func newManager(cfg config.Auth) *scs.SessionManager {
	sm := scs.New()

	sm.Lifetime = cfg.SessionLifetime
	if sm.Lifetime <= 0 {
		sm.Lifetime = 24 * time.Hour
	}

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	// Lax so that following a link into the app keeps the admin logged in
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return sm
}

// CreateSession stores the admin identity after successful authentication.
func (sm *SessionManager) CreateSession(r *http.Request, admin *entities.Admin) error {
	// Renew token to prevent session fixation
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}

	// Store admin ID as int to match GetInt() retrieval
	sm.Put(r.Context(), SessionKeyAdminID, int(admin.ID))
	sm.Put(r.Context(), SessionKeyUsername, admin.Username)
	sm.Put(r.Context(), SessionKeyLoginAt, time.Now())

	return nil
}

// DestroySession removes all session data and invalidates the session.
func (sm *SessionManager) DestroySession(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// GetAdminID retrieves the admin ID from the session.
// Returns 0 if not authenticated.
func (sm *SessionManager) GetAdminID(r *http.Request) uint {
	return uint(sm.GetInt(r.Context(), SessionKeyAdminID))
}

// GetUsername retrieves the username from the session.
func (sm *SessionManager) GetUsername(r *http.Request) string {
	return sm.GetString(r.Context(), SessionKeyUsername)
}

// IsAuthenticated returns true if the request has a logged-in session.
func (sm *SessionManager) IsAuthenticated(r *http.Request) bool {
	return sm.GetAdminID(r) != 0
}

// Flash queues a message for the next rendered page.
func (sm *SessionManager) Flash(r *http.Request, message string) {
	sm.Put(r.Context(), SessionKeyFlash, message)
}

// PopFlash returns the queued message, if any, and clears it.
func (sm *SessionManager) PopFlash(r *http.Request) string {
	return sm.PopString(r.Context(), SessionKeyFlash)
}

// SessionData holds the session information for a request.
type SessionData struct {
	AdminID  uint
	Username string
	LoginAt  time.Time
}

// GetSessionData retrieves all session data at once.
func (sm *SessionManager) GetSessionData(r *http.Request) *SessionData {
	adminID := sm.GetAdminID(r)
	if adminID == 0 {
		return nil
	}

	loginAt, _ := sm.Get(r.Context(), SessionKeyLoginAt).(time.Time)

	return &SessionData{
		AdminID:  adminID,
		Username: sm.GetUsername(r),
		LoginAt:  loginAt,
	}
}
