package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"freetrack/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)

	// refresh helpers
	UpdateRefresh(userID int, token string, expiresAt time.Time) error
	RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error)
	ClearRefresh(userID int) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `id, email, full_name, password_hash, refresh_token, refresh_expires_at, created_at`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.RefreshToken, &u.RefreshExpiresAt, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
                INSERT INTO users (email, full_name, password_hash, created_at)
                VALUES ($1, $2, $3, $4)
                RETURNING id
        `
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if err := r.DB.QueryRow(q, user.Email, user.FullName, user.PasswordHash, user.CreatedAt).Scan(&user.ID); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id=$1`, id))
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE LOWER(email)=LOWER($1)`, email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *userRepository) UpdateRefresh(userID int, token string, expiresAt time.Time) error {
	const q = `UPDATE users SET refresh_token=$1, refresh_expires_at=$2 WHERE id=$3`
	if _, err := r.DB.Exec(q, token, expiresAt, userID); err != nil {
		return fmt.Errorf("update refresh token: %w", err)
	}
	return nil
}

// RotateRefresh swaps a still-valid refresh token for a new one in a single
// statement so a stolen old token cannot be replayed after rotation.
func (r *userRepository) RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	const q = `
                UPDATE users
                SET refresh_token=$1, refresh_expires_at=$2
                WHERE refresh_token=$3 AND refresh_expires_at > NOW()
                RETURNING ` + userColumns
	u, err := scanUser(r.DB.QueryRow(q, newToken, newExpiresAt, oldToken))
	if err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}
	return u, nil
}

func (r *userRepository) ClearRefresh(userID int) error {
	const q = `UPDATE users SET refresh_token=NULL, refresh_expires_at=NULL WHERE id=$1`
	if _, err := r.DB.Exec(q, userID); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	return nil
}
