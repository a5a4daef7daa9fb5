// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, table creation, open-loan index
//	├── admins/          # Administrator lookup for login
//	├── books/           # Book CRUD and the availability projection
//	├── students/        # Student CRUD
//	└── loans/           # issued_books CRUD and the joined listing
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./library.db")
//
//	booksRepo := books.NewRepository(db.DB)
//	loansRepo := loans.NewRepository(db.DB)
//
//	list, err := booksRepo.List(ctx, "dune")
//
// Every repository method takes a context and scopes its statement with
// WithContext, so a connection is borrowed from the pool for the duration
// of one statement and released on every return path.
//
// Lookups of a missing row return ErrNotFound.
package database
