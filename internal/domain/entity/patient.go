package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents a patient account with demographics
type Patient struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string        `gorm:"type:varchar(100);not null" json:"name"`
	Email     string        `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string        `gorm:"type:text;not null" json:"-"`
	Phone     string        `gorm:"type:varchar(20);index" json:"phone,omitempty"`
	Age       int           `gorm:"not null;default:0" json:"age"`
	Gender    string        `gorm:"type:varchar(10)" json:"gender,omitempty"`
	Address   string        `gorm:"type:text" json:"address,omitempty"`
	Status    AccountStatus `gorm:"type:varchar(10);not null;default:'active';index" json:"status"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// IsActive checks if the account may be used
func (p *Patient) IsActive() bool {
	return p.Status == AccountActive
}

// Deactivate soft-deletes the account
func (p *Patient) Deactivate() {
	p.Status = AccountInactive
}

func (p *Patient) AccountID() uuid.UUID {
	return p.ID
}

func (p *Patient) AccountRole() Role {
	return RolePatient
}

func (p *Patient) AccountEmail() string {
	return p.Email
}

func (p *Patient) CredentialHash() string {
	return p.Password
}

func (p *Patient) CanLogin() bool {
	return p.IsActive()
}
