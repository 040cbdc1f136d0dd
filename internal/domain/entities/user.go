package entities

type Role string

const RoleAdmin Role = "admin"

// User is the authenticated dashboard operator.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Claims is what a validated session token carries.
type Claims struct {
	UserID string
	Email  string
	Role   Role
	Exp    int64
}
