package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mrlokans/library-manager/internal/config"
	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/entities"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrUsernameRequired   = errors.New("username is required")
)

// AdminRepository defines the interface for admin data access.
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*entities.Admin, error)
	GetByID(ctx context.Context, id uint) (*entities.Admin, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, admin *entities.Admin) error
}

// Service handles admin authentication.
type Service struct {
	admins AdminRepository
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(admins AdminRepository, cfg config.Auth) *Service {
	return &Service{
		admins: admins,
		config: cfg,
	}
}

// Authenticate checks credentials against the admin table.
// Unknown usernames and wrong passwords both return ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*entities.Admin, error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}

	if err := CheckPassword(password, admin.Password); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return admin, nil
}

// GetAdminByID retrieves an admin by ID.
func (s *Service) GetAdminByID(ctx context.Context, id uint) (*entities.Admin, error) {
	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}

// CreateAdmin stores a new admin with a hashed password.
func (s *Service) CreateAdmin(ctx context.Context, username, password string) (*entities.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &entities.Admin{Username: username, Password: passwordHash}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}

// EnsureDefaultAdmin seeds the configured default admin when the admin
// table is empty. It reports whether an admin was created.
func (s *Service) EnsureDefaultAdmin(ctx context.Context) (bool, error) {
	count, err := s.admins.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	admin, err := s.CreateAdmin(ctx, s.config.DefaultUsername, s.config.DefaultPassword)
	if err != nil {
		return false, err
	}
	log.Printf("Created default admin %q, change its password before exposing the server", admin.Username)
	return true, nil
}
