// Package students provides database operations for student records.
package students

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/entities"
)

// Repository handles all student database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new students repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a student. Year is stored as given.
func (r *Repository) Create(ctx context.Context, name, department string, year int) (*entities.Student, error) {
	student := &entities.Student{Name: name, Department: department, Year: year}
	if err := r.db.WithContext(ctx).Create(student).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return student, nil
}

// GetByID retrieves a student by ID.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Student, error) {
	var student entities.Student
	if err := r.db.WithContext(ctx).Take(&student, id).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &student, nil
}

// List returns students ordered by ID, optionally filtered by a
// case-insensitive partial match on name or department.
func (r *Repository) List(ctx context.Context, search string) ([]entities.Student, error) {
	query := r.db.WithContext(ctx)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(department) LIKE LOWER(?)", pattern, pattern)
	}

	students := []entities.Student{}
	err := query.Order("id ASC").Find(&students).Error
	return students, err
}

// Update overwrites a student's fields.
func (r *Repository) Update(ctx context.Context, id uint, name, department string, year int) error {
	result := r.db.WithContext(ctx).Model(&entities.Student{}).Where("id = ?", id).Updates(map[string]any{
		"name":       name,
		"department": department,
		"year":       year,
	})
	if result.Error != nil {
		return database.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// Delete removes a student. Loans referencing the student are left in place.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Student{}, id)
	if result.Error != nil {
		return database.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}
