package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	bookFormTemplate  = "book_form.html"
	viewBooksTemplate = "view_books.html"
	viewBooksPath     = "/view_books"
)

type BooksController struct {
	store BookStore
	pages *pages
}

func NewBooksController(store BookStore, pages *pages) *BooksController {
	return &BooksController{
		store: store,
		pages: pages,
	}
}

func (controller *BooksController) AddPage(c *gin.Context) {
	controller.renderForm(c, http.StatusOK, "Add Book", "/add_book", bookForm{}, "")
}

func (controller *BooksController) Add(c *gin.Context) {
	var form bookForm
	if msg, ok := bindForm(c, &form); !ok {
		controller.renderForm(c, http.StatusBadRequest, "Add Book", "/add_book", form, msg)
		return
	}

	if _, err := controller.store.Create(c.Request.Context(), form.Name, form.Author, form.Category); err != nil {
		controller.pages.respondInternalError(c, err, "create book")
		return
	}

	controller.pages.flash(c, "Book added.")
	controller.pages.redirect(c, viewBooksPath)
}

func (controller *BooksController) List(c *gin.Context) {
	query := c.Query("q")
	books, err := controller.store.List(c.Request.Context(), query)
	if err != nil {
		controller.pages.respondInternalError(c, err, "list books")
		return
	}

	controller.pages.render(c, http.StatusOK, viewBooksTemplate, "Books", gin.H{
		"Books": books,
		"Query": query,
	})
}

func (controller *BooksController) EditPage(c *gin.Context) {
	id, ok := controller.pages.parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.store.GetByID(c.Request.Context(), id)
	if err != nil {
		controller.pages.respondStoreError(c, err, "Book", "get book")
		return
	}

	form := bookForm{Name: book.Name, Author: book.Author, Category: book.Category}
	controller.renderForm(c, http.StatusOK, "Edit Book", editPath("/update_book/", id), form, "")
}

func (controller *BooksController) Update(c *gin.Context) {
	id, ok := controller.pages.parseIDParam(c, "id")
	if !ok {
		return
	}

	var form bookForm
	if msg, ok := bindForm(c, &form); !ok {
		controller.renderForm(c, http.StatusBadRequest, "Edit Book", editPath("/update_book/", id), form, msg)
		return
	}

	if err := controller.store.Update(c.Request.Context(), id, form.Name, form.Author, form.Category); err != nil {
		controller.pages.respondStoreError(c, err, "Book", "update book")
		return
	}

	controller.pages.flash(c, "Book updated.")
	controller.pages.redirect(c, viewBooksPath)
}

// Delete removes the book immediately. Loans that reference it stay in
// issued_books but drop out of the loan listing.
func (controller *BooksController) Delete(c *gin.Context) {
	id, ok := controller.pages.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.store.Delete(c.Request.Context(), id); err != nil {
		controller.pages.respondStoreError(c, err, "Book", "delete book")
		return
	}

	controller.pages.flash(c, "Book deleted.")
	controller.pages.redirect(c, viewBooksPath)
}

func (controller *BooksController) renderForm(c *gin.Context, status int, title, action string, form bookForm, errMsg string) {
	data := gin.H{
		"Action": action,
		"Form":   form,
	}
	if errMsg != "" {
		data["Error"] = errMsg
	}
	controller.pages.render(c, status, bookFormTemplate, title, data)
}

func editPath(prefix string, id uint) string {
	return prefix + strconv.FormatUint(uint64(id), 10)
}
