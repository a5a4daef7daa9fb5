package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-manager/internal/auth"
)

// AuthTemplateData holds authentication info for templates.
type AuthTemplateData struct {
	LoggedIn  bool          // Whether the session gate found an admin
	Username  string        // Current admin's username (empty if not logged in)
	CSRFField template.HTML // Hidden token input (empty when CSRF is off)
}

// GetAuthTemplateData collects what the page layout needs about the current admin.
func GetAuthTemplateData(c *gin.Context) AuthTemplateData {
	identity, ok := auth.GetIdentity(c)
	return AuthTemplateData{
		LoggedIn:  ok,
		Username:  identity.Username,
		CSRFField: auth.CSRFTokenField(c),
	}
}
