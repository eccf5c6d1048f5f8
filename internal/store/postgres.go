package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/paddyguard/paddyguard-backend/internal/models"
)

// PostgresDirectory backs the user directory with a users table.
type PostgresDirectory struct {
	db   *sql.DB
	seed AdminSeed
}

func NewPostgresDirectory(db *sql.DB, seed AdminSeed) *PostgresDirectory {
	return &PostgresDirectory{db: db, seed: seed}
}

func (d *PostgresDirectory) Initialize(ctx context.Context) error {
	var count int
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role = $1`, models.RoleAdmin,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count admin records: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO users (id, created_at, email, mobile, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.New(), time.Now(), d.seed.Email, d.seed.Mobile, d.seed.PasswordHash, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to seed admin record: %w", err)
	}
	log.Println("✅ Admin record seeded")
	return nil
}

func (d *PostgresDirectory) CreateUser(ctx context.Context, email, mobile, passwordHash string) (*models.User, error) {
	// Uniqueness pre-checks so duplicates surface as their own outcomes
	// instead of a generic constraint violation.
	var existing string
	err := d.db.QueryRowContext(ctx, `SELECT email FROM users WHERE email = $1`, email).Scan(&existing)
	if err == nil {
		return nil, ErrDuplicateEmail
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	err = d.db.QueryRowContext(ctx, `SELECT mobile FROM users WHERE mobile = $1`, mobile).Scan(&existing)
	if err == nil {
		return nil, ErrDuplicateMobile
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		CreatedAt:    time.Now(),
		Email:        email,
		Mobile:       mobile,
		PasswordHash: passwordHash,
		Role:         models.RoleFarmer,
	}
	_, err = d.db.ExecContext(ctx, `
		INSERT INTO users (id, created_at, email, mobile, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, user.CreatedAt, user.Email, user.Mobile, user.PasswordHash, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (d *PostgresDirectory) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return d.findBy(ctx, "email", email)
}

func (d *PostgresDirectory) FindByMobile(ctx context.Context, mobile string) (*models.User, error) {
	return d.findBy(ctx, "mobile", mobile)
}

func (d *PostgresDirectory) findBy(ctx context.Context, column, value string) (*models.User, error) {
	var user models.User
	err := d.db.QueryRowContext(ctx, `
		SELECT id, created_at, email, mobile, password_hash, role
		FROM users WHERE `+column+` = $1
	`, value).Scan(&user.ID, &user.CreatedAt, &user.Email, &user.Mobile, &user.PasswordHash, &user.Role)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *PostgresDirectory) UpdatePassword(ctx context.Context, mobile, passwordHash string) error {
	res, err := d.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1 WHERE mobile = $2`, passwordHash, mobile)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (d *PostgresDirectory) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, created_at, email, mobile, password_hash, role
		FROM users WHERE role = $1 ORDER BY created_at ASC
	`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.CreatedAt, &user.Email, &user.Mobile, &user.PasswordHash, &user.Role); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
