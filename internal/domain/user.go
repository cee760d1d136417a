package domain

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	IPAddress    string     `json:"ip_address"`
	Role         string     `json:"role"`
	ProfilePic   *string    `json:"profile_pic,omitempty"`
	Bio          *string    `json:"bio,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LastSeen     *time.Time `json:"last_seen,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
