package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/paddyguard/paddyguard-backend/internal/models"
)

// MemoryDirectory keeps records in insertion order in memory. Used by
// tests and useful as a throwaway backend in development.
type MemoryDirectory struct {
	mu    sync.Mutex
	users []models.User
	seed  AdminSeed
}

func NewMemoryDirectory(seed AdminSeed) *MemoryDirectory {
	return &MemoryDirectory{seed: seed}
}

func (d *MemoryDirectory) Initialize(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, u := range d.users {
		if u.Role == models.RoleAdmin {
			return nil
		}
	}
	d.users = append(d.users, models.User{
		ID:           uuid.New(),
		CreatedAt:    time.Now(),
		Email:        d.seed.Email,
		Mobile:       d.seed.Mobile,
		PasswordHash: d.seed.PasswordHash,
		Role:         models.RoleAdmin,
	})
	return nil
}

func (d *MemoryDirectory) CreateUser(ctx context.Context, email, mobile, passwordHash string) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, u := range d.users {
		if u.Email == email {
			return nil, ErrDuplicateEmail
		}
	}
	for _, u := range d.users {
		if u.Mobile == mobile {
			return nil, ErrDuplicateMobile
		}
	}
	user := models.User{
		ID:           uuid.New(),
		CreatedAt:    time.Now(),
		Email:        email,
		Mobile:       mobile,
		PasswordHash: passwordHash,
		Role:         models.RoleFarmer,
	}
	d.users = append(d.users, user)
	out := user
	return &out, nil
}

func (d *MemoryDirectory) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, u := range d.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, ErrUserNotFound
}

func (d *MemoryDirectory) FindByMobile(ctx context.Context, mobile string) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, u := range d.users {
		if u.Mobile == mobile {
			out := u
			return &out, nil
		}
	}
	return nil, ErrUserNotFound
}

func (d *MemoryDirectory) UpdatePassword(ctx context.Context, mobile, passwordHash string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.users {
		if d.users[i].Mobile == mobile {
			d.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return ErrUserNotFound
}

func (d *MemoryDirectory) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []models.User
	for _, u := range d.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

// Count reports the total number of records; used by tests to assert a
// failed registration left the directory unchanged.
func (d *MemoryDirectory) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.users)
}
