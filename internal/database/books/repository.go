// Package books provides database operations for the book catalogue.
//
// Availability is not stored: List and ListAvailable derive it on every call
// from the open loans in issued_books.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	list, err := repo.List(ctx, "herbert")
package books

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/entities"
)

const (
	statusColumn = "CASE WHEN l.id IS NOT NULL THEN '" + string(entities.BookStatusIssued) +
		"' ELSE '" + string(entities.BookStatusAvailable) + "' END AS status"

	openLoanJoin = "LEFT JOIN issued_books l ON l.book_id = b.id AND l.return_date IS NULL"

	openLoanBooks = "SELECT book_id FROM issued_books WHERE return_date IS NULL AND book_id IS NOT NULL"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a book. Empty fields are accepted.
func (r *Repository) Create(ctx context.Context, name, author, category string) (*entities.Book, error) {
	book := &entities.Book{Name: name, Author: author, Category: category}
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return book, nil
}

// GetByID retrieves a book by its ID.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.WithContext(ctx).Take(&book, id).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &book, nil
}

// List returns books ordered by ID with their derived status. A non-empty
// search matches name, author or category (case-insensitive partial match).
func (r *Repository) List(ctx context.Context, search string) ([]entities.BookWithStatus, error) {
	query := r.db.WithContext(ctx).
		Table("books AS b").
		Select("b.id, b.name, b.author, b.category, " + statusColumn).
		Joins(openLoanJoin)

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"LOWER(b.name) LIKE LOWER(?) OR LOWER(b.author) LIKE LOWER(?) OR LOWER(b.category) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}

	books := []entities.BookWithStatus{}
	err := query.Order("b.id ASC").Scan(&books).Error
	return books, err
}

// ListAvailable returns books with no open loan. When includeID is non-zero
// that book is returned as well, even if it is issued, so a loan being edited
// keeps its own book selectable.
func (r *Repository) ListAvailable(ctx context.Context, includeID uint) ([]entities.Book, error) {
	query := r.db.WithContext(ctx).Where("id NOT IN (" + openLoanBooks + ")")
	if includeID != 0 {
		query = query.Or("id = ?", includeID)
	}

	books := []entities.Book{}
	err := query.Order("id ASC").Find(&books).Error
	return books, err
}

// Update overwrites a book's fields.
func (r *Repository) Update(ctx context.Context, id uint, name, author, category string) error {
	result := r.db.WithContext(ctx).Model(&entities.Book{}).Where("id = ?", id).Updates(map[string]any{
		"name":     name,
		"author":   author,
		"category": category,
	})
	if result.Error != nil {
		return database.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// Delete removes a book. Loans referencing it are left in place.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Book{}, id)
	if result.Error != nil {
		return database.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}
