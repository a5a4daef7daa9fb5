// Package admins provides database operations for the administrator account.
package admins

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/entities"
)

// Repository handles admin table access.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new admins repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByUsername retrieves an admin by exact username match.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*entities.Admin, error) {
	var admin entities.Admin
	err := r.db.WithContext(ctx).Where("username = ?", username).Take(&admin).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &admin, nil
}

// GetByID retrieves an admin by ID.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Admin, error) {
	var admin entities.Admin
	if err := r.db.WithContext(ctx).Take(&admin, id).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &admin, nil
}

// Count returns the number of admin rows.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Admin{}).Count(&count).Error
	return count, err
}

// Create inserts an admin. The password must already be hashed.
func (r *Repository) Create(ctx context.Context, admin *entities.Admin) error {
	return database.TranslateError(r.db.WithContext(ctx).Create(admin).Error)
}
