package models

import "time"

// Contact is a person attached to a client (recruiter, tech lead, manager).
type Contact struct {
	ID        int       `json:"id"`
	OwnerID   int       `json:"owner_id"`
	ClientID  int       `json:"client_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}
