package entity

import "time"

// Session binds an opaque bearer token to a user. Sessions do not expire;
// they live until logout or until the backing store forgets them.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
}
