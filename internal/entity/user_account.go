package entity

import "time"

// MaxNameLen is the longest display name accepted at registration.
const MaxNameLen = 20

// UserAccount is one registered player. UserID is the messenger identity,
// Name is the pseudonym picked at registration; both are unique.
type UserAccount struct {
	ID        int
	Name      string
	UserID    string
	Score     int
	Category  *string
	CreatedAt time.Time
}

// HasCategory reports whether the user already picked a quiz category.
func (u UserAccount) HasCategory() bool {
	return u.Category != nil && *u.Category != ""
}
