package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	studentFormTemplate  = "student_form.html"
	viewStudentsTemplate = "view_students.html"
	viewStudentsPath     = "/view_students"
)

type StudentsController struct {
	store StudentStore
	pages *pages
}

func NewStudentsController(store StudentStore, pages *pages) *StudentsController {
	return &StudentsController{
		store: store,
		pages: pages,
	}
}

func (controller *StudentsController) AddPage(c *gin.Context) {
	controller.renderForm(c, http.StatusOK, "Add Student", "/add_student", studentForm{}, "")
}

func (controller *StudentsController) Add(c *gin.Context) {
	var form studentForm
	year, msg, ok := controller.bind(c, &form)
	if !ok {
		controller.renderForm(c, http.StatusBadRequest, "Add Student", "/add_student", form, msg)
		return
	}

	if _, err := controller.store.Create(c.Request.Context(), form.Name, form.Department, year); err != nil {
		controller.pages.respondInternalError(c, err, "create student")
		return
	}

	controller.pages.flash(c, "Student added.")
	controller.pages.redirect(c, viewStudentsPath)
}

func (controller *StudentsController) List(c *gin.Context) {
	query := c.Query("q")
	students, err := controller.store.List(c.Request.Context(), query)
	if err != nil {
		controller.pages.respondInternalError(c, err, "list students")
		return
	}

	controller.pages.render(c, http.StatusOK, viewStudentsTemplate, "Students", gin.H{
		"Students": students,
		"Query":    query,
	})
}

func (controller *StudentsController) EditPage(c *gin.Context) {
	id, ok := controller.pages.parseIDParam(c, "id")
	if !ok {
		return
	}

	student, err := controller.store.GetByID(c.Request.Context(), id)
	if err != nil {
		controller.pages.respondStoreError(c, err, "Student", "get student")
		return
	}

	form := studentForm{
		Name:       student.Name,
		Department: student.Department,
		Year:       strconv.Itoa(student.Year),
	}
	controller.renderForm(c, http.StatusOK, "Edit Student", editPath("/update_student/", id), form, "")
}

func (controller *StudentsController) Update(c *gin.Context) {
	id, ok := controller.pages.parseIDParam(c, "id")
	if !ok {
		return
	}

	var form studentForm
	year, msg, ok := controller.bind(c, &form)
	if !ok {
		controller.renderForm(c, http.StatusBadRequest, "Edit Student", editPath("/update_student/", id), form, msg)
		return
	}

	if err := controller.store.Update(c.Request.Context(), id, form.Name, form.Department, year); err != nil {
		controller.pages.respondStoreError(c, err, "Student", "update student")
		return
	}

	controller.pages.flash(c, "Student updated.")
	controller.pages.redirect(c, viewStudentsPath)
}

// Delete removes the student immediately, even with outstanding loans.
func (controller *StudentsController) Delete(c *gin.Context) {
	id, ok := controller.pages.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.store.Delete(c.Request.Context(), id); err != nil {
		controller.pages.respondStoreError(c, err, "Student", "delete student")
		return
	}

	controller.pages.flash(c, "Student deleted.")
	controller.pages.redirect(c, viewStudentsPath)
}

func (controller *StudentsController) bind(c *gin.Context, form *studentForm) (int, string, bool) {
	if msg, ok := bindForm(c, form); !ok {
		return 0, msg, false
	}
	year, err := form.year()
	if err != nil {
		return 0, err.Error(), false
	}
	return year, "", true
}

func (controller *StudentsController) renderForm(c *gin.Context, status int, title, action string, form studentForm, errMsg string) {
	data := gin.H{
		"Action": action,
		"Form":   form,
	}
	if errMsg != "" {
		data["Error"] = errMsg
	}
	controller.pages.render(c, status, studentFormTemplate, title, data)
}
