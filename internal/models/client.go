package models

import "time"

// Client is a company a mission is (or may be) run for.
type Client struct {
	ID        int       `json:"id"`
	OwnerID   int       `json:"owner_id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Website   string    `json:"website"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}
