package models

import "time"

// Source kinds.
const (
	SourceJobBoard   = "job_board"
	SourceCooptation = "cooptation"
	SourceDirect     = "direct"
	SourceESN        = "esn"
	SourceOther      = "other"
)

var ValidSourceKinds = map[string]bool{
	SourceJobBoard:   true,
	SourceCooptation: true,
	SourceDirect:     true,
	SourceESN:        true,
	SourceOther:      true,
}

// Source is where a mission opportunity came from.
type Source struct {
	ID        int       `json:"id"`
	OwnerID   int       `json:"owner_id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
}
