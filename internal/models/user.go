package models

import "time"

// Role names carried in a user's Roles list.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account that can authenticate against the catalog API.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security; handlers blank it before responding
	FullName  string    `json:"full_name" gorm:"type:varchar(255)" validate:"required,min=1"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	Roles     []string  `json:"roles" gorm:"serializer:json"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
