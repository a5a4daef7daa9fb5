// Package loans provides database operations for issued_books records.
//
// The joined listing uses inner joins on students and books, so a loan whose
// student or book has been deleted is not returned by List or GetView.
package loans

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/entities"
)

const viewColumns = "i.id, i.student_id, i.book_id, i.issue_date, i.due_date, i.return_date, i.fine, " +
	"s.name AS student_name, b.name AS book_name"

// Repository handles all loan database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new loans repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an open loan. A second open loan for the same book is
// rejected by the open-loan index with database.ErrDuplicate.
func (r *Repository) Create(ctx context.Context, loan *entities.Loan) error {
	loan.ReturnDate = nil
	loan.Fine = 0
	return database.TranslateError(r.db.WithContext(ctx).Create(loan).Error)
}

// GetByID retrieves the raw loan row.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Loan, error) {
	var loan entities.Loan
	if err := r.db.WithContext(ctx).Take(&loan, id).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &loan, nil
}

// UpdateAssignment overwrites who borrowed what and when. Return date and
// fine are left untouched.
func (r *Repository) UpdateAssignment(ctx context.Context, id, studentID, bookID uint, issueDate datatypes.Date, dueDate *datatypes.Date) error {
	result := r.db.WithContext(ctx).Model(&entities.Loan{}).Where("id = ?", id).Updates(map[string]any{
		"student_id": studentID,
		"book_id":    bookID,
		"issue_date": issueDate,
		"due_date":   dueDate,
	})
	if result.Error != nil {
		return database.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// RecordReturn closes a loan with the given return date and fine.
func (r *Repository) RecordReturn(ctx context.Context, id uint, returnDate datatypes.Date, fine float64) error {
	result := r.db.WithContext(ctx).Model(&entities.Loan{}).Where("id = ?", id).Updates(map[string]any{
		"return_date": returnDate,
		"fine":        fine,
	})
	if result.Error != nil {
		return database.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// Delete removes a loan in any state.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Loan{}, id)
	if result.Error != nil {
		return database.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *Repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("issued_books AS i").
		Select(viewColumns).
		Joins("JOIN students s ON s.id = i.student_id").
		Joins("JOIN books b ON b.id = i.book_id")
}

// List returns every loan with a surviving student and book, ordered by loan ID.
func (r *Repository) List(ctx context.Context) ([]entities.LoanView, error) {
	views := []entities.LoanView{}
	if err := r.joined(ctx).Order("i.id ASC").Scan(&views).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return views, nil
}

// GetView returns one loan with student and book names.
func (r *Repository) GetView(ctx context.Context, id uint) (*entities.LoanView, error) {
	var view entities.LoanView
	result := r.joined(ctx).Where("i.id = ?", id).Limit(1).Scan(&view)
	if result.Error != nil {
		return nil, database.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, database.ErrNotFound
	}
	return &view, nil
}
