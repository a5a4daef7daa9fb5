// Package lending implements the loan lifecycle: issuing a book to a student,
// editing the assignment, recording the return with its fine, and deleting.
package lending

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/datatypes"

	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/entities"
)

// ErrBookAlreadyIssued is returned when a book already has an open loan.
var ErrBookAlreadyIssued = errors.New("book is already issued")

// LoanStore defines the loan persistence the service needs.
type LoanStore interface {
	Create(ctx context.Context, loan *entities.Loan) error
	GetByID(ctx context.Context, id uint) (*entities.Loan, error)
	GetView(ctx context.Context, id uint) (*entities.LoanView, error)
	List(ctx context.Context) ([]entities.LoanView, error)
	UpdateAssignment(ctx context.Context, id, studentID, bookID uint, issueDate datatypes.Date, dueDate *datatypes.Date) error
	RecordReturn(ctx context.Context, id uint, returnDate datatypes.Date, fine float64) error
	Delete(ctx context.Context, id uint) error
}

// BookCatalog lists books that can be lent out.
type BookCatalog interface {
	ListAvailable(ctx context.Context, includeID uint) ([]entities.Book, error)
}

// Assignment is who borrows which book and when.
type Assignment struct {
	StudentID uint
	BookID    uint
	IssueDate datatypes.Date
	DueDate   *datatypes.Date
}

// Receipt describes a recorded return.
type Receipt struct {
	LoanID     uint
	ReturnDate datatypes.Date
	Fine       float64

	// AlreadyReturned is set when an earlier return was overwritten.
	AlreadyReturned bool
}

// Service coordinates loans and books.
type Service struct {
	loans  LoanStore
	books  BookCatalog
	policy Policy
	now    func() time.Time
}

// NewService creates a lending service charging fines per policy.
func NewService(loans LoanStore, books BookCatalog, policy Policy) *Service {
	return &Service{
		loans:  loans,
		books:  books,
		policy: policy,
		now:    time.Now,
	}
}

// Policy returns the fine policy in effect.
func (s *Service) Policy() Policy {
	return s.policy
}

// Today is the current calendar day, used as the default return date.
func (s *Service) Today() time.Time {
	return entities.TruncateToDay(s.now())
}

// Issue opens a new loan.
func (s *Service) Issue(ctx context.Context, a Assignment) (*entities.Loan, error) {
	loan := &entities.Loan{
		StudentID: a.StudentID,
		BookID:    a.BookID,
		IssueDate: a.IssueDate,
		DueDate:   a.DueDate,
	}
	if err := s.loans.Create(ctx, loan); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrBookAlreadyIssued
		}
		return nil, fmt.Errorf("failed to issue book %d: %w", a.BookID, err)
	}
	log.Printf("Issued book %d to student %d (loan %d)", a.BookID, a.StudentID, loan.ID)
	return loan, nil
}

// Update rewrites a loan's assignment. The return date and fine are kept.
func (s *Service) Update(ctx context.Context, id uint, a Assignment) error {
	err := s.loans.UpdateAssignment(ctx, id, a.StudentID, a.BookID, a.IssueDate, a.DueDate)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, database.ErrDuplicate):
		return ErrBookAlreadyIssued
	case errors.Is(err, database.ErrNotFound):
		return err
	default:
		return fmt.Errorf("failed to update loan %d: %w", id, err)
	}
}

// Return closes a loan on returnDate and charges the fine for any days past
// the effective due date. A loan that was already returned is overwritten.
func (s *Service) Return(ctx context.Context, id uint, returnDate datatypes.Date) (*Receipt, error) {
	loan, err := s.loans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	receipt := &Receipt{
		LoanID:          id,
		ReturnDate:      returnDate,
		Fine:            s.policy.FineFor(*loan, time.Time(returnDate)),
		AlreadyReturned: !loan.IsOpen(),
	}
	if receipt.AlreadyReturned {
		log.Printf("Warning: loan %d was already returned on %s, overwriting", id, entities.FormatDate(loan.ReturnDate))
	}

	if err := s.loans.RecordReturn(ctx, id, returnDate, receipt.Fine); err != nil {
		return nil, fmt.Errorf("failed to record return of loan %d: %w", id, err)
	}
	log.Printf("Loan %d returned on %s with fine %.2f", id, time.Time(returnDate).Format(entities.DateLayout), receipt.Fine)
	return receipt, nil
}

// Delete removes a loan regardless of state.
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.loans.Delete(ctx, id)
}

// Get returns the raw loan row.
func (s *Service) Get(ctx context.Context, id uint) (*entities.Loan, error) {
	return s.loans.GetByID(ctx, id)
}

// GetView returns a loan with student and book names.
func (s *Service) GetView(ctx context.Context, id uint) (*entities.LoanView, error) {
	return s.loans.GetView(ctx, id)
}

// List returns every visible loan ordered by ID.
func (s *Service) List(ctx context.Context) ([]entities.LoanView, error) {
	return s.loans.List(ctx)
}

// IssueCandidates lists books with no open loan.
func (s *Service) IssueCandidates(ctx context.Context) ([]entities.Book, error) {
	return s.books.ListAvailable(ctx, 0)
}

// EditCandidates lists books available for an existing loan, which always
// includes the loan's current book.
func (s *Service) EditCandidates(ctx context.Context, loan *entities.Loan) ([]entities.Book, error) {
	return s.books.ListAvailable(ctx, loan.BookID)
}
