package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/lending"
	"github.com/mrlokans/library-manager/internal/web"
)

const (
	loanFormTemplate   = "loan_form.html"
	viewIssuedTemplate = "view_issued.html"
	returnTemplate     = "return_book.html"
	viewIssuedPath     = "/view_issued"

	alreadyIssuedMessage = "Book is already issued"
)

// LoansController serves the issued_books pages.
type LoansController struct {
	lending  *lending.Service
	students StudentStore
	pages    *pages
}

func NewLoansController(service *lending.Service, students StudentStore, pages *pages) *LoansController {
	return &LoansController{
		lending:  service,
		students: students,
		pages:    pages,
	}
}

func (controller *LoansController) AddPage(c *gin.Context) {
	form := loanForm{IssueDate: controller.today()}
	controller.renderForm(c, http.StatusOK, "Issue Book", "/add_issued", form, nil, "")
}

func (controller *LoansController) Add(c *gin.Context) {
	var form loanForm
	if msg, ok := bindForm(c, &form); !ok {
		controller.renderForm(c, http.StatusBadRequest, "Issue Book", "/add_issued", form, nil, msg)
		return
	}
	assignment, err := form.assignment()
	if err != nil {
		controller.renderForm(c, http.StatusBadRequest, "Issue Book", "/add_issued", form, nil, err.Error())
		return
	}

	if _, err := controller.lending.Issue(c.Request.Context(), assignment); err != nil {
		if errors.Is(err, lending.ErrBookAlreadyIssued) {
			controller.renderForm(c, http.StatusConflict, "Issue Book", "/add_issued", form, nil, alreadyIssuedMessage)
			return
		}
		controller.pages.respondInternalError(c, err, "issue book")
		return
	}

	controller.pages.flash(c, "Book issued.")
	controller.pages.redirect(c, viewIssuedPath)
}

func (controller *LoansController) List(c *gin.Context) {
	loans, err := controller.lending.List(c.Request.Context())
	if err != nil {
		controller.pages.respondInternalError(c, err, "list loans")
		return
	}

	controller.pages.render(c, http.StatusOK, viewIssuedTemplate, "Issued Books", gin.H{
		"Loans":      loans,
		"Today":      controller.lending.Today(),
		"FinePerDay": controller.lending.Policy().FinePerDay,
	})
}

func (controller *LoansController) EditPage(c *gin.Context) {
	loan, ok := controller.loadLoan(c)
	if !ok {
		return
	}

	controller.renderForm(c, http.StatusOK, "Edit Issued Book", editPath("/update_issued/", loan.ID), loanFormFrom(loan), loan, "")
}

func (controller *LoansController) Update(c *gin.Context) {
	loan, ok := controller.loadLoan(c)
	if !ok {
		return
	}
	action := editPath("/update_issued/", loan.ID)

	var form loanForm
	if msg, ok := bindForm(c, &form); !ok {
		controller.renderForm(c, http.StatusBadRequest, "Edit Issued Book", action, form, loan, msg)
		return
	}
	assignment, err := form.assignment()
	if err != nil {
		controller.renderForm(c, http.StatusBadRequest, "Edit Issued Book", action, form, loan, err.Error())
		return
	}

	if err := controller.lending.Update(c.Request.Context(), loan.ID, assignment); err != nil {
		if errors.Is(err, lending.ErrBookAlreadyIssued) {
			controller.renderForm(c, http.StatusConflict, "Edit Issued Book", action, form, loan, alreadyIssuedMessage)
			return
		}
		controller.pages.respondStoreError(c, err, "Issued book", "update loan")
		return
	}

	controller.pages.flash(c, "Issued book updated.")
	controller.pages.redirect(c, viewIssuedPath)
}

func (controller *LoansController) Delete(c *gin.Context) {
	id, ok := controller.pages.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.lending.Delete(c.Request.Context(), id); err != nil {
		controller.pages.respondStoreError(c, err, "Issued book", "delete loan")
		return
	}

	controller.pages.flash(c, "Issued book deleted.")
	controller.pages.redirect(c, viewIssuedPath)
}

func (controller *LoansController) ReturnPage(c *gin.Context) {
	view, ok := controller.loadView(c)
	if !ok {
		return
	}

	controller.renderReturn(c, http.StatusOK, view, controller.today(), "")
}

// Return records the return date and the fine, then reports the fine in a
// flash message on the listing.
func (controller *LoansController) Return(c *gin.Context) {
	view, ok := controller.loadView(c)
	if !ok {
		return
	}

	var form returnForm
	if msg, ok := bindForm(c, &form); !ok {
		controller.renderReturn(c, http.StatusBadRequest, view, form.ReturnDate, msg)
		return
	}
	returnDate, err := lending.ParseDate(form.ReturnDate)
	if err != nil {
		controller.renderReturn(c, http.StatusBadRequest, view, form.ReturnDate, err.Error())
		return
	}

	receipt, err := controller.lending.Return(c.Request.Context(), view.ID, returnDate)
	if err != nil {
		controller.pages.respondStoreError(c, err, "Issued book", "return book")
		return
	}

	controller.pages.flash(c, "Book returned. Fine: "+controller.pages.currency+web.FormatMoney(receipt.Fine))
	controller.pages.redirect(c, viewIssuedPath)
}

func (controller *LoansController) loadLoan(c *gin.Context) (*entities.Loan, bool) {
	id, ok := controller.pages.parseIDParam(c, "id")
	if !ok {
		return nil, false
	}

	loan, err := controller.lending.Get(c.Request.Context(), id)
	if err != nil {
		controller.pages.respondStoreError(c, err, "Issued book", "get loan")
		return nil, false
	}
	return loan, true
}

func (controller *LoansController) loadView(c *gin.Context) (*entities.LoanView, bool) {
	id, ok := controller.pages.parseIDParam(c, "id")
	if !ok {
		return nil, false
	}

	view, err := controller.lending.GetView(c.Request.Context(), id)
	if err != nil {
		controller.pages.respondStoreError(c, err, "Issued book", "get loan")
		return nil, false
	}
	return view, true
}

// renderForm shows the issue/edit form. For an edit, loan is the stored loan
// and its book stays selectable even though it is issued.
func (controller *LoansController) renderForm(c *gin.Context, status int, title, action string, form loanForm, loan *entities.Loan, errMsg string) {
	ctx := c.Request.Context()

	students, err := controller.students.List(ctx, "")
	if err != nil {
		controller.pages.respondInternalError(c, err, "list students")
		return
	}

	var books []entities.Book
	if loan != nil {
		books, err = controller.lending.EditCandidates(ctx, loan)
	} else {
		books, err = controller.lending.IssueCandidates(ctx)
	}
	if err != nil {
		controller.pages.respondInternalError(c, err, "list available books")
		return
	}

	data := gin.H{
		"Action":   action,
		"Form":     form,
		"Students": students,
		"Books":    books,
	}
	if errMsg != "" {
		data["Error"] = errMsg
	}
	controller.pages.render(c, status, loanFormTemplate, title, data)
}

func (controller *LoansController) renderReturn(c *gin.Context, status int, view *entities.LoanView, returnDate, errMsg string) {
	data := gin.H{
		"Loan":       view,
		"ReturnDate": returnDate,
		"FinePerDay": controller.lending.Policy().FinePerDay,
	}
	if errMsg != "" {
		data["Error"] = errMsg
	}
	controller.pages.render(c, status, returnTemplate, "Return Book", data)
}

func (controller *LoansController) today() string {
	return controller.lending.Today().Format(entities.DateLayout)
}
