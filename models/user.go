package models

import "time"

// Role names seeded at bootstrap.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// User is an account holder. Email is stored lowercase and must be unique.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	UserName     string    `json:"userName"`
	AvatarURL    string    `json:"avatarUrl"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user carries the Admin role.
func (u *User) IsAdmin() bool {
	for _, r := range u.Roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}
