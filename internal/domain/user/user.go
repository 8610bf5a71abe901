package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleStudent  = "student"
	RoleLecturer = "lecturer"
)

func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleLecturer
}

// User is a registered account. Password always holds the bcrypt hash; the
// plaintext never touches the row. TwoFactorSecret may be set while
// TwoFactorEnabled is still false (setup pending confirmation).
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password string    `gorm:"not null;column:password" json:"-"`
	Role     string    `gorm:"not null;column:role" json:"role"`

	TwoFactorSecret  string `gorm:"column:two_factor_secret" json:"-"`
	TwoFactorEnabled bool   `gorm:"not null;default:false;column:two_factor_enabled" json:"two_factor_enabled"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }
