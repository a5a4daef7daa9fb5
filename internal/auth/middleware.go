package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextKeyIdentity holds the logged-in admin for the current request.
const ContextKeyIdentity = "auth_identity"

// Identity is the admin a request is acting as.
type Identity struct {
	AdminID  uint
	Username string
}

// Middleware is the session gate in front of every non-public route.
type Middleware struct {
	service        *Service
	sessionManager *SessionManager
	publicPaths    map[string]bool
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service, sessionManager *SessionManager) *Middleware {
	publicPaths := map[string]bool{
		"/health":      true,
		"/ping":        true,
		"/login":       true,
		"/favicon.ico": true,
	}

	return &Middleware{
		service:        service,
		sessionManager: sessionManager,
		publicPaths:    publicPaths,
	}
}

// Handler returns a Gin middleware that redirects anonymous requests to the
// login page and puts the admin Identity into the context otherwise.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		if identity, ok := m.trySessionAuth(c); ok {
			c.Set(ContextKeyIdentity, identity)
			c.Next()
			return
		}

		c.Redirect(http.StatusFound, LoginURL(c.Request.URL.Path))
		c.Abort()
	}
}

// trySessionAuth resolves the session to an admin that still exists.
func (m *Middleware) trySessionAuth(c *gin.Context) (Identity, bool) {
	if m.sessionManager == nil {
		return Identity{}, false
	}

	adminID := m.sessionManager.GetAdminID(c.Request)
	if adminID == 0 {
		return Identity{}, false
	}

	admin, err := m.service.GetAdminByID(c.Request.Context(), adminID)
	if err != nil {
		return Identity{}, false
	}

	return Identity{AdminID: admin.ID, Username: admin.Username}, true
}

// isPublicPath checks if a path should be accessible without authentication.
func (m *Middleware) isPublicPath(path string) bool {
	if m.publicPaths[path] {
		return true
	}
	return strings.HasPrefix(path, "/static/")
}

// LoginURL is the login page that returns to path after success.
func LoginURL(path string) string {
	if !isLocalPath(path) || path == "/" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(path)
}

// GetIdentity retrieves the logged-in admin from the context.
func GetIdentity(c *gin.Context) (Identity, bool) {
	if v, exists := c.Get(ContextKeyIdentity); exists {
		if identity, ok := v.(Identity); ok {
			return identity, true
		}
	}
	return Identity{}, false
}

// GetUsername returns the logged-in admin's username, or "" when anonymous.
func GetUsername(c *gin.Context) string {
	identity, _ := GetIdentity(c)
	return identity.Username
}

// IsAuthenticated returns true if the gate let the request through with an identity.
func IsAuthenticated(c *gin.Context) bool {
	_, ok := GetIdentity(c)
	return ok
}
