package models

import "time"

type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	PasswordHash string `json:"-"`

	// Opaque refresh token stored server-side.
	RefreshToken     *string    `json:"-"`
	RefreshExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
