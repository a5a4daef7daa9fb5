package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/lending"
)

// bookForm accepts empty fields.
type bookForm struct {
	Name     string `form:"name"`
	Author   string `form:"author"`
	Category string `form:"category"`
}

type studentForm struct {
	Name       string `form:"name" binding:"required"`
	Department string `form:"department" binding:"required"`
	Year       string `form:"year" binding:"required"`
}

// year parses the year field. Any integer is accepted.
func (f studentForm) year() (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(f.Year))
	if err != nil {
		return 0, errors.New("Year must be a whole number.")
	}
	return year, nil
}

type loanForm struct {
	StudentID uint   `form:"student_id" binding:"required"`
	BookID    uint   `form:"book_id" binding:"required"`
	IssueDate string `form:"issue_date" binding:"required,datetime=2006-01-02"`
	DueDate   string `form:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

func loanFormFrom(loan *entities.Loan) loanForm {
	return loanForm{
		StudentID: loan.StudentID,
		BookID:    loan.BookID,
		IssueDate: entities.FormatDate(&loan.IssueDate),
		DueDate:   entities.FormatDate(loan.DueDate),
	}
}

// assignment converts the validated form into a lending assignment.
func (f loanForm) assignment() (lending.Assignment, error) {
	issueDate, err := lending.ParseDate(f.IssueDate)
	if err != nil {
		return lending.Assignment{}, err
	}
	dueDate, err := lending.ParseOptionalDate(f.DueDate)
	if err != nil {
		return lending.Assignment{}, err
	}
	return lending.Assignment{
		StudentID: f.StudentID,
		BookID:    f.BookID,
		IssueDate: issueDate,
		DueDate:   dueDate,
	}, nil
}

type returnForm struct {
	ReturnDate string `form:"return_date" binding:"required,datetime=2006-01-02"`
}

var fieldLabels = map[string]string{
	"Name":       "Name",
	"Department": "Department",
	"Year":       "Year",
	"StudentID":  "Student",
	"BookID":     "Book",
	"IssueDate":  "Issue date",
	"DueDate":    "Due date",
	"ReturnDate": "Return date",
}

// bindForm binds the posted form into dst and turns binding failures into a
// message fit for showing above the form.
func bindForm(c *gin.Context, dst any) (string, bool) {
	if err := c.ShouldBind(dst); err != nil {
		return formErrorMessage(err), false
	}
	return "", true
}

func formErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid form input."
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, fieldErrorMessage(fe))
	}
	return strings.Join(messages, " ")
}

func fieldErrorMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "datetime":
		return label + " must be a date in YYYY-MM-DD format."
	default:
		return label + " is invalid."
	}
}
