package model

import "time"

// User roles. Role is a closed set with "user" as the default.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an account in the `users` table. The password is stored
// only as a bcrypt hash; the plaintext never touches this struct.
//
// Fields:
//
//	ID           – primary key identifier.
//	Name         – display name (2–100 chars).
//	Email        – unique login email, stored lowercased.
//	PasswordHash – bcrypt hash of the password; never serialized.
//	Role         – authorization role (admin or user).
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// SafeUser is the externally visible projection of a User: every field
// except the password hash.
type SafeUser struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Safe returns the user without its password hash for external exposure.
func (u User) Safe() SafeUser {
	return SafeUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
