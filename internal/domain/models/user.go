package models

import "time"

// User is owned by the authentication subsystem; the core only ever reads
// id, role and department. Secret fields (password hashes and the like)
// never cross into this struct.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"createdAt"`
}
