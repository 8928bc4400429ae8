package domain

import "time"

// Profile holds the public nickname of a user. The nickname can be set once.
type Profile struct {
	UserID    string    `json:"user_id"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"created_at"`
}

// Locked reports whether the nickname has already been chosen.
func (p *Profile) Locked() bool {
	return p != nil && p.Nickname != ""
}
