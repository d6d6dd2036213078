package models

// Role enum
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleTherapist Role = "therapist"
)

// User represents a staff account. Accounts are provisioned through the
// Google identity exchange, so there is no password credential.
type User struct {
	BaseModel
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name  string `gorm:"size:150" json:"name"`
	Role  Role   `gorm:"size:20;default:'therapist'" json:"role"`
}
