package entities

import (
	"time"

	"gorm.io/datatypes"
)

type LoanState string

const (
	LoanStateOpen   LoanState = "open"
	LoanStateClosed LoanState = "closed"
)

// Loan is an issued_books record. StudentID and BookID are plain columns:
// no foreign key constraint is created, so deleting a student or book leaves
// the loan dangling.
type Loan struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	StudentID  uint            `gorm:"index" json:"student_id"`
	BookID     uint            `gorm:"index" json:"book_id"`
	IssueDate  datatypes.Date  `json:"issue_date"`
	DueDate    *datatypes.Date `json:"due_date,omitempty"`
	ReturnDate *datatypes.Date `json:"return_date,omitempty"`
	Fine       float64         `gorm:"default:0" json:"fine"`
}

func (Loan) TableName() string {
	return "issued_books"
}

func (l Loan) State() LoanState {
	if l.ReturnDate == nil {
		return LoanStateOpen
	}
	return LoanStateClosed
}

func (l Loan) IsOpen() bool {
	return l.State() == LoanStateOpen
}

// EffectiveDueDate is the due date, or the issue date for loans issued
// without one.
func (l Loan) EffectiveDueDate() time.Time {
	if l.DueDate != nil && !time.Time(*l.DueDate).IsZero() {
		return time.Time(*l.DueDate)
	}
	return time.Time(l.IssueDate)
}

// LoanView is a loan joined with the names of its student and book.
type LoanView struct {
	Loan
	StudentName string `json:"student_name"`
	BookName    string `json:"book_name"`
}

// Overdue reports whether an open loan is past its effective due date on the given day.
func (v LoanView) Overdue(today time.Time) bool {
	if !v.IsOpen() {
		return false
	}
	return TruncateToDay(v.EffectiveDueDate()).Before(TruncateToDay(today))
}
