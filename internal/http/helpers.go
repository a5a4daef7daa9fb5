package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-manager/internal/auth"
	"github.com/mrlokans/library-manager/internal/database"
)

// Page templates that are not tied to a single controller.
const (
	notFoundTemplate = "not_found.html"
	errorTemplate    = "error.html"
)

// pages renders HTML templates with the data every page layout expects.
// It is shared by all UI controllers.
type pages struct {
	sessions *auth.SessionManager
	currency string
}

func newPages(sessions *auth.SessionManager, currency string) *pages {
	return &pages{sessions: sessions, currency: currency}
}

// data returns the base template data for a page: title, current admin,
// CSRF field, currency and any pending flash message.
func (p *pages) data(c *gin.Context, title string) gin.H {
	authData := GetAuthTemplateData(c)
	data := gin.H{
		"Title":       title,
		"CurrentUser": authData.Username,
		"CSRFField":   authData.CSRFField,
		"Currency":    p.currency,
	}
	if p.sessions != nil {
		if msg := p.sessions.PopFlash(c.Request); msg != "" {
			data["Flash"] = msg
		}
	}
	return data
}

// render merges extra into the base data and renders the template.
func (p *pages) render(c *gin.Context, status int, name, title string, extra gin.H) {
	data := p.data(c, title)
	for k, v := range extra {
		data[k] = v
	}
	c.HTML(status, name, data)
}

// flash queues a message for the next page. It is a no-op without sessions.
func (p *pages) flash(c *gin.Context, message string) {
	if p.sessions != nil {
		p.sessions.Flash(c.Request, message)
	}
}

// redirect answers a successful form submission.
func (p *pages) redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// --- Error Response Helpers ---

// respondBadRequest renders the error page with a 400 status.
func (p *pages) respondBadRequest(c *gin.Context, message string) {
	p.render(c, http.StatusBadRequest, errorTemplate, "Bad Request", gin.H{"Message": message})
}

// respondNotFound renders the 404 page for a missing resource.
func (p *pages) respondNotFound(c *gin.Context, resource string) {
	message := ""
	if resource != "" {
		message = resource + " not found."
	}
	p.render(c, http.StatusNotFound, notFoundTemplate, "Not Found", gin.H{"Message": message})
}

// respondInternalError logs the error and renders a generic 500 page.
// The actual error is logged but not exposed to the client.
func (p *pages) respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	p.render(c, http.StatusInternalServerError, errorTemplate, "Error", nil)
}

// respondStoreError maps a repository error to a 404 or a 500 page.
func (p *pages) respondStoreError(c *gin.Context, err error, resource, context string) {
	if errors.Is(err, database.ErrNotFound) {
		p.respondNotFound(c, resource)
		return
	}
	p.respondInternalError(c, err, context)
}

// noRoute is the handler for unknown paths.
func (p *pages) noRoute(c *gin.Context) {
	p.respondNotFound(c, "")
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 page and returns 0, false.
func (p *pages) parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		p.respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}
