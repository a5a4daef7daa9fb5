package http

import (
	"github.com/mrlokans/library-manager/internal/auth"
	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/lending"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database     *database.Database
	BookStore    BookStore
	StudentStore StudentStore
	Lending      *lending.Service

	// Authentication. The session gate is installed when AuthService is set.
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	CSRFSecret     []byte // CSRF protection is off when empty
	SecureCookies  bool

	// UI paths, empty means the embedded copies
	TemplatesPath string
	StaticPath    string

	// Currency symbol printed in front of fines
	Currency string

	// Application info
	Version string
}
