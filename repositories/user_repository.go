package repositories

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dchahine/chatline_backend/models"
)

// ErrUserNotFound means no profile exists for the phone number.
var ErrUserNotFound = errors.New("user not found")

// UserRepository stores profile records keyed by phone number.
type UserRepository interface {
	// Upsert writes the full profile, creating or replacing the record
	// for user.PhoneNumber, and returns the stored profile.
	Upsert(ctx context.Context, user models.User) (models.User, error)
	// Update applies a partial update and returns the updated profile.
	// Fields left nil keep their stored values. Returns ErrUserNotFound
	// when no record exists for phone.
	Update(ctx context.Context, phone string, update models.ProfileUpdate) (models.User, error)
	// GetByPhone returns the profile for phone or ErrUserNotFound.
	GetByPhone(ctx context.Context, phone string) (models.User, error)
}

// MemoryUserRepository keeps profiles in process memory.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

// NewMemoryUserRepository creates an empty in-memory user repository
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]models.User)}
}

func (r *MemoryUserRepository) Upsert(ctx context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if existing, ok := r.users[user.PhoneNumber]; ok {
		user.CreatedAt = existing.CreatedAt
	} else {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	r.users[user.PhoneNumber] = user
	return user, nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, phone string, update models.ProfileUpdate) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[phone]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.About != nil {
		user.About = *update.About
	}
	if update.PicturePath != nil {
		user.PicturePath = *update.PicturePath
	}
	user.UpdatedAt = time.Now()
	r.users[phone] = user
	return user, nil
}

func (r *MemoryUserRepository) GetByPhone(ctx context.Context, phone string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[phone]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}
