package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-manager/internal/auth"
	"github.com/mrlokans/library-manager/internal/config"
	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/database/admins"
	"github.com/mrlokans/library-manager/internal/database/books"
	"github.com/mrlokans/library-manager/internal/database/loans"
	"github.com/mrlokans/library-manager/internal/database/students"
	http_controllers "github.com/mrlokans/library-manager/internal/http"
	"github.com/mrlokans/library-manager/internal/lending"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

// Migrate creates the tables and seeds the default admin.
func Migrate(cfg *config.Config) error {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	created, err := auth.NewService(admins.NewRepository(db.DB), cfg.Auth).EnsureDefaultAdmin(context.Background())
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		log.Printf("Created default admin %q", cfg.Auth.DefaultUsername)
	}
	log.Printf("Database is up to date (%s)", cfg.Database.Driver)
	return nil
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Library Manager v%s", version)

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	authService := auth.NewService(admins.NewRepository(db.DB), cfg.Auth)
	created, err := authService.EnsureDefaultAdmin(context.Background())
	if err != nil {
		log.Fatalf("Failed to seed default admin: %v", err)
	}
	if created {
		log.Printf("Created default admin %q, change its password", cfg.Auth.DefaultUsername)
	}

	sessionManager, err := newSessionManager(db, cfg)
	if err != nil {
		log.Fatalf("Failed to create session manager: %v", err)
	}

	if cfg.Auth.SessionSecret == "" {
		log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
	}
	csrfSecret, err := auth.CSRFKey(cfg.Auth.SessionSecret)
	if err != nil {
		log.Fatalf("Failed to derive CSRF key: %v", err)
	}

	bookRepo := books.NewRepository(db.DB)
	studentRepo := students.NewRepository(db.DB)
	lendingService := lending.NewService(
		loans.NewRepository(db.DB),
		bookRepo,
		lending.Policy{FinePerDay: cfg.Library.FinePerDay},
	)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:       db,
		BookStore:      bookRepo,
		StudentStore:   studentRepo,
		Lending:        lendingService,
		AuthService:    authService,
		SessionManager: sessionManager,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
		TemplatesPath:  cfg.UI.TemplatesPath,
		StaticPath:     cfg.UI.StaticPath,
		Currency:       cfg.Library.Currency,
		Version:        version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	})
}

// newSessionManager keeps sessions in the sqlite database so logins survive
// restarts. The sqlite3store schema is sqlite-only, so other drivers use memory.
func newSessionManager(db *database.Database, cfg *config.Config) (*auth.SessionManager, error) {
	if db.Driver != config.DatabaseDriverSQLite {
		log.Printf("Sessions are kept in memory for the %s driver", db.Driver)
		return auth.NewMemorySessionManager(cfg.Auth), nil
	}
	sqlDB, err := db.SQLDB()
	if err != nil {
		return nil, err
	}
	return auth.NewSessionManager(sqlDB, cfg.Auth)
}
