package domain

import "time"

const (
	// AdminUserID is the non-deletable administrator. It implicitly holds
	// every permission in the catalog.
	AdminUserID uint = 1
	// SellerUserID is the optional seller account created at bootstrap.
	SellerUserID uint = 2
)

// User models an authenticated actor in the system.
type User struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Permissions  []string  `json:"permissions"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin reports whether u is the administrator.
func (u *User) IsAdmin() bool {
	return u != nil && u.ID == AdminUserID
}
