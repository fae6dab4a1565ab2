package entity

import (
	"time"
)

// User is an account that can upload and download books.
// Password holds a bcrypt hash, never the plain text.
type User struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
	CreatedAt   time.Time
}
