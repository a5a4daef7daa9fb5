package auth

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/database/admins"
)

const testLoginTemplate = `{{define "login.html"}}login next={{.Next}} error={{.Error}}{{end}}`

func setupTestRouter(t *testing.T) (*gin.Engine, *Service, *database.Database) {
	t.Helper()

	db := setupTestDB(t)
	sqlDB, err := db.SQLDB()
	if err != nil {
		t.Fatalf("failed to get SQL DB: %v", err)
	}

	svc := NewService(admins.NewRepository(db.DB), testAuthConfig())
	if _, err := svc.EnsureDefaultAdmin(context.Background()); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	sm, err := NewSessionManager(sqlDB, testAuthConfig())
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.New("").Parse(testLoginTemplate)))
	router.Use(sm.SessionLoadSave())
	router.Use(NewMiddleware(svc, sm).Handler())
	NewAuthController(svc, sm).RegisterRoutes(router)

	router.GET("/protected", func(c *gin.Context) {
		c.String(http.StatusOK, "hello "+GetUsername(c))
	})

	return router, svc, db
}

func postLogin(router *gin.Engine, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	t.Fatalf("No session cookie in response: %v", w.Header().Values("Set-Cookie"))
	return nil
}

func get(router *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIntegration_LoginPageIsPublic(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := get(router, "/login?next=/books")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "next=/books") {
		t.Errorf("Expected next to be carried into the form, got %s", w.Body.String())
	}
}

func TestIntegration_LoginPageSanitizesNext(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := get(router, "/login?next=//evil.com")

	if !strings.Contains(w.Body.String(), "next=/ ") {
		t.Errorf("Expected next to fall back to /, got %s", w.Body.String())
	}
}

func TestIntegration_FailedLoginIsGeneric(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	wrongPassword := postLogin(router, url.Values{"username": {"admin"}, "password": {"nope"}})
	unknownUser := postLogin(router, url.Values{"username": {"ghost"}, "password": {"admin123"}})

	for name, w := range map[string]*httptest.ResponseRecorder{"wrong password": wrongPassword, "unknown user": unknownUser} {
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected the form to be redisplayed, got %d", name, w.Code)
		}
		if !strings.Contains(w.Body.String(), "error=Invalid username or password") {
			t.Errorf("%s: expected generic error, got %s", name, w.Body.String())
		}
	}

	protected := get(router, "/protected")
	if protected.Code != http.StatusFound {
		t.Errorf("Expected gate to stay closed, got %d", protected.Code)
	}
}

func TestIntegration_SessionLoginLogoutFlow(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	// Step 1: Login and follow next
	loginW := postLogin(router, url.Values{"username": {"admin"}, "password": {"admin123"}, "next": {"/protected"}})
	if loginW.Code != http.StatusFound {
		t.Fatalf("Login failed: %d - %s", loginW.Code, loginW.Body.String())
	}
	if location := loginW.Header().Get("Location"); location != "/protected" {
		t.Errorf("Expected redirect to /protected, got %s", location)
	}
	cookie := sessionCookie(t, loginW)

	// Step 2: Access protected route with session cookie
	protectedW := get(router, "/protected", cookie)
	if protectedW.Code != http.StatusOK {
		t.Fatalf("Protected route with session cookie returned %d, expected 200", protectedW.Code)
	}
	if protectedW.Body.String() != "hello admin" {
		t.Errorf("Expected identity in context, got %s", protectedW.Body.String())
	}

	// Step 3: The login page bounces a logged-in admin home
	loginPage := get(router, "/login", cookie)
	if loginPage.Code != http.StatusFound || loginPage.Header().Get("Location") != "/" {
		t.Errorf("Expected redirect home from /login, got %d %s", loginPage.Code, loginPage.Header().Get("Location"))
	}

	// Step 4: Logout
	logoutW := get(router, "/logout", cookie)
	if logoutW.Code != http.StatusFound || logoutW.Header().Get("Location") != "/login" {
		t.Errorf("Expected redirect to /login after logout, got %d %s", logoutW.Code, logoutW.Header().Get("Location"))
	}

	// Step 5: The old cookie no longer opens the gate
	afterLogout := get(router, "/protected", cookie)
	if afterLogout.Code != http.StatusFound {
		t.Errorf("Expected redirect after logout, got %d", afterLogout.Code)
	}
}

func TestIntegration_LoginRenewsSessionToken(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	first := postLogin(router, url.Values{"username": {"admin"}, "password": {"admin123"}})
	before := sessionCookie(t, first)

	second := postLogin(router, url.Values{"username": {"admin"}, "password": {"admin123"}}, before)
	after := sessionCookie(t, second)

	if before.Value == after.Value {
		t.Error("Expected a fresh session token on login")
	}
}

func TestIntegration_DeletedAdminLosesAccess(t *testing.T) {
	router, svc, db := setupTestRouter(t)

	cookie := sessionCookie(t, postLogin(router, url.Values{"username": {"admin"}, "password": {"admin123"}}))

	admin, err := svc.Authenticate(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if err := db.DB.Delete(admin).Error; err != nil {
		t.Fatalf("failed to delete admin: %v", err)
	}

	if w := get(router, "/protected", cookie); w.Code != http.StatusFound {
		t.Errorf("Expected redirect once the admin row is gone, got %d", w.Code)
	}
}
