package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-manager/internal/auth"
	"github.com/mrlokans/library-manager/internal/web"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware())
	}

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.AuthService != nil && cfg.SessionManager != nil {
		router.Use(auth.NewMiddleware(cfg.AuthService, cfg.SessionManager).Handler())
	}

	router.SetHTMLTemplate(template.Must(web.LoadTemplates(cfg.TemplatesPath)))

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	} else {
		router.StaticFS("/static", http.FS(web.Static()))
	}

	ui := newPages(cfg.SessionManager, cfg.Currency)
	router.NoRoute(ui.noRoute)

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	if cfg.AuthService != nil && cfg.SessionManager != nil {
		auth.NewAuthController(cfg.AuthService, cfg.SessionManager).RegisterRoutes(router)
	}

	// Deletes are also reachable by GET, so refuse them from other sites
	sameOrigin := auth.SameOriginMiddleware()

	menu := NewMenuController(ui)
	router.GET("/", menu.Home)
	router.GET("/books", menu.BooksMenu)
	router.GET("/students", menu.StudentsMenu)
	router.GET("/issued_books", menu.IssuedMenu)

	if cfg.BookStore != nil {
		books := NewBooksController(cfg.BookStore, ui)
		router.GET("/add_book", books.AddPage)
		router.POST("/add_book", books.Add)
		router.GET("/view_books", books.List)
		router.GET("/update_book/:id", books.EditPage)
		router.POST("/update_book/:id", books.Update)
		router.GET("/delete_book/:id", sameOrigin, books.Delete)
		router.POST("/delete_book/:id", books.Delete)
	}

	if cfg.StudentStore != nil {
		students := NewStudentsController(cfg.StudentStore, ui)
		router.GET("/add_student", students.AddPage)
		router.POST("/add_student", students.Add)
		router.GET("/view_students", students.List)
		router.GET("/update_student/:id", students.EditPage)
		router.POST("/update_student/:id", students.Update)
		router.GET("/delete_student/:id", sameOrigin, students.Delete)
		router.POST("/delete_student/:id", students.Delete)
	}

	if cfg.Lending != nil && cfg.StudentStore != nil {
		loans := NewLoansController(cfg.Lending, cfg.StudentStore, ui)
		router.GET("/add_issued", loans.AddPage)
		router.POST("/add_issued", loans.Add)
		router.GET("/view_issued", loans.List)
		router.GET("/update_issued/:id", loans.EditPage)
		router.POST("/update_issued/:id", loans.Update)
		router.GET("/delete_issued/:id", sameOrigin, loans.Delete)
		router.POST("/delete_issued/:id", loans.Delete)
		router.GET("/return_book/:id", loans.ReturnPage)
		router.POST("/return_book/:id", loans.Return)
	}

	return router
}
