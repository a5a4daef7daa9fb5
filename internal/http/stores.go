package http

import (
	"context"

	"github.com/mrlokans/library-manager/internal/entities"
)

// BookStore is the book persistence used by BooksController.
type BookStore interface {
	Create(ctx context.Context, name, author, category string) (*entities.Book, error)
	GetByID(ctx context.Context, id uint) (*entities.Book, error)
	List(ctx context.Context, search string) ([]entities.BookWithStatus, error)
	Update(ctx context.Context, id uint, name, author, category string) error
	Delete(ctx context.Context, id uint) error
}

// StudentStore is the student persistence used by StudentsController and the
// loan forms.
type StudentStore interface {
	Create(ctx context.Context, name, department string, year int) (*entities.Student, error)
	GetByID(ctx context.Context, id uint) (*entities.Student, error)
	List(ctx context.Context, search string) ([]entities.Student, error)
	Update(ctx context.Context, id uint, name, department string, year int) error
	Delete(ctx context.Context, id uint) error
}
