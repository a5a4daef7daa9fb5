package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MenuController renders the home page and the section menus.
type MenuController struct {
	pages *pages
}

func NewMenuController(pages *pages) *MenuController {
	return &MenuController{pages: pages}
}

func (controller *MenuController) Home(c *gin.Context) {
	controller.pages.render(c, http.StatusOK, "index.html", "Library", nil)
}

func (controller *MenuController) BooksMenu(c *gin.Context) {
	controller.pages.render(c, http.StatusOK, "books_menu.html", "Books", nil)
}

func (controller *MenuController) StudentsMenu(c *gin.Context) {
	controller.pages.render(c, http.StatusOK, "students_menu.html", "Students", nil)
}

func (controller *MenuController) IssuedMenu(c *gin.Context) {
	controller.pages.render(c, http.StatusOK, "issued_menu.html", "Issued Books", nil)
}
