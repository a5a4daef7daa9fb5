// Package auth guards the web UI behind a single administrator login.
//
// Sessions are server-side (alexedwards/scs). The cookie carries an opaque
// token; the admin id and username live in the session store, which is the
// application's SQLite database or process memory when running on PostgreSQL.
//
// # Configuration
//
//	AUTH_SESSION_SECRET=<hex-32-bytes>  # CSRF key, random per process if empty
//	AUTH_SESSION_LIFETIME=24h           # Session duration
//	AUTH_BCRYPT_COST=10                 # bcrypt cost factor
//	AUTH_SECURE_COOKIES=true            # HTTPS-only cookies
//	AUTH_DEFAULT_USERNAME=admin         # Seeded when the admin table is empty
//	AUTH_DEFAULT_PASSWORD=admin123
//
// # Usage
//
//	authService := auth.NewService(admins.NewRepository(db.DB), cfg.Auth)
//	sessions, _ := auth.NewSessionManager(sqlDB, cfg.Auth)
//	router.Use(sessions.SessionLoadSave())
//	router.Use(auth.NewMiddleware(authService, sessions).Handler())
//
// Read the logged-in admin in handlers:
//
//	identity, ok := auth.GetIdentity(c)
package auth
