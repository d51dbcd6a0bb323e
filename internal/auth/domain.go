package auth

import "time"

// User represents a registered account. The password hash is the only
// credential material ever persisted.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
