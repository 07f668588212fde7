package entity

import (
	"time"

	"github.com/google/uuid"
)

// Admin represents an administrator account
type Admin struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username  string    `gorm:"type:varchar(80);uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}

func (a *Admin) AccountID() uuid.UUID {
	return a.ID
}

func (a *Admin) AccountRole() Role {
	return RoleAdmin
}

func (a *Admin) AccountEmail() string {
	return a.Email
}

func (a *Admin) CredentialHash() string {
	return a.Password
}

// CanLogin always returns true; admin accounts carry no active flag
func (a *Admin) CanLogin() bool {
	return true
}
