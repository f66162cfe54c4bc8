package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sokoni/depot-api/internal/domain/enum"
	"gorm.io/gorm"
)

// User represents a user in the system. The password hash is opaque to the
// rest of the core; authorization decisions only consume the role.
type User struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name               string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Password           string    `gorm:"size:255;not null" json:"-"`
	Role               enum.Role `gorm:"size:50;not null" json:"role"`
	MustChangePassword bool      `gorm:"not null;default:true" json:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	// Relationships
	Sales []Sale `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role.IsAdmin()
}
