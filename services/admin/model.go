package admin

import "time"

// Role is an admin capability level checked once per entry point.
type Role string

const (
	RoleSuperAdmin       Role = "SUPER_ADMIN"
	RoleContentModerator Role = "CONTENT_MODERATOR"
	RoleAnalyst          Role = "ANALYST"
)

// Valid reports whether the role is one of the known capability levels.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleContentModerator, RoleAnalyst:
		return true
	default:
		return false
	}
}

// User is an internal operator. Only the argon2 password hash is stored.
type User struct {
	ID           string     `gorm:"column:user_id;primaryKey"`
	Username     string     `gorm:"column:username;uniqueIndex;not null"`
	Email        string     `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Role         Role       `gorm:"column:role;not null"`
	LastLogin    *time.Time `gorm:"column:last_login"`
	IsActive     bool       `gorm:"column:is_active;default:true"`
}

// TableName sets the table name for the User model.
func (User) TableName() string { return "admin_users" }

// Session is a bearer token with a fixed absolute expiry. The token itself is
// the primary lookup key, so it must be unguessable and unique.
type Session struct {
	Token     string    `gorm:"column:token;primaryKey"`
	UserID    string    `gorm:"column:user_id;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
}

// TableName sets the table name for the Session model.
func (Session) TableName() string { return "admin_sessions" }

// ValidAt reports whether the session is still usable at the given instant.
// There is no grace period past expiry.
func (s *Session) ValidAt(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
