package store

import (
	"context"
	"errors"
	"fmt"

	"newsboard/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserStore persists accounts
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a new UserStore
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a user. A taken username fails with ErrConflict and leaves
// the existing row untouched.
func (s *UserStore) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	user := models.User{Username: username, PasswordHash: passwordHash}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("Username already used.")
		}
		return nil, err
	}
	return &user, nil
}

// Register hashes the password and creates the account
func (s *UserStore) Register(ctx context.Context, username, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.Create(ctx, username, string(hash))
}

// Authenticate checks a username and password pair
func (s *UserStore) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.FindByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return nil, unauthorized("Incorrect username")
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, unauthorized("Incorrect Password")
	}
	return user, nil
}

// FindByUsername returns the user with the given username
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).Take(&user).Error; err != nil {
		if isRecordNotFound(err) {
			return nil, notFound("User not found.")
		}
		return nil, err
	}
	return &user, nil
}

// FindByID returns the user with the given id
func (s *UserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Take(&user, id).Error; err != nil {
		if isRecordNotFound(err) {
			return nil, notFound("User not found.")
		}
		return nil, err
	}
	return &user, nil
}
