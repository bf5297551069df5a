package entity

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// CanManageTasks reports whether the user may create, reassign or delete
// tasks. Employees only work on tasks assigned to them.
func (u *User) CanManageTasks() bool {
	return u != nil && (u.Role == RoleAdmin || u.Role == RoleManager)
}

// JWT Claims
type JWTClaims struct {
	UserID string `json:"sub"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}
