package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountStatus is the explicit lifecycle state of a doctor or patient
// account. Deactivation flips the status, rows are never deleted.
type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountInactive AccountStatus = "inactive"
)

// Doctor represents a doctor account with its professional profile
type Doctor struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name            string          `gorm:"type:varchar(100);not null" json:"name"`
	Email           string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password        string          `gorm:"type:text;not null" json:"-"`
	Phone           string          `gorm:"type:varchar(20)" json:"phone,omitempty"`
	DepartmentID    int             `gorm:"not null;index" json:"department_id"`
	Experience      int             `gorm:"not null;default:0" json:"experience"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`
	Status          AccountStatus   `gorm:"type:varchar(10);not null;default:'active';index" json:"status"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Department   Department         `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Appointments []Appointment      `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
	Availability []AvailabilitySlot `gorm:"foreignKey:DoctorID" json:"availability,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// IsActive checks if the account may be used
func (d *Doctor) IsActive() bool {
	return d.Status == AccountActive
}

// Deactivate soft-deletes the account
func (d *Doctor) Deactivate() {
	d.Status = AccountInactive
}

func (d *Doctor) AccountID() uuid.UUID {
	return d.ID
}

func (d *Doctor) AccountRole() Role {
	return RoleDoctor
}

func (d *Doctor) AccountEmail() string {
	return d.Email
}

func (d *Doctor) CredentialHash() string {
	return d.Password
}

func (d *Doctor) CanLogin() bool {
	return d.IsActive()
}
