package models

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStudent Role = "STUDENT"
	RoleGuest   Role = "GUEST"
)

// User is an identity record. Identifier is the student ID for students and
// the username for admins, unique across all users (case-insensitive).
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	Password   string `json:"-"`
	Role       Role   `json:"role"`
	StudentID  string `json:"studentId,omitempty"`
}
