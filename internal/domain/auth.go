package domain

import "time"

// Identity is the caller decoded from a verified bearer token.
type Identity struct {
	Username string
	IsAdmin  bool
	IssuedAt time.Time
}
