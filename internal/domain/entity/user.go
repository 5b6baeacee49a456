package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the account table shared with the identity service. This
// service only reads it to show who is on an appointment.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID    int       `gorm:"not null;index" json:"role_id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name"`
	IsActive  *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Actor is the authenticated user a request acts on behalf of. It is passed
// explicitly into usecases and collaborators instead of living in globals.
type Actor struct {
	UserID uuid.UUID
	RoleID int
}

func (a Actor) IsDoctor() bool {
	return a.RoleID == RoleIDDoctor
}

func (a Actor) IsAdmin() bool {
	return a.RoleID == RoleIDAdmin
}
