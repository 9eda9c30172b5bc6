package entity

type Role string

const (
	RoleAnalyst Role = "analyst"
	RoleAdmin   Role = "admin"
)

// User is an operator allowed to manage companies and requests.
type User struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"size:100;not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	Role         Role   `gorm:"size:20;not null;default:'analyst'"`
	CreatedAt    int64  `gorm:"not null;autoCreateTime:milli"`
}
