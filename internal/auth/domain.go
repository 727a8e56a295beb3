package auth

import "time"

// User is the operator signed into the dashboard.
type User struct {
	Username string
	SignedAt time.Time
}
