package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditLog represents a system audit trail entry. The actor columns are
// not foreign-keyed because accounts live in three role-specific tables.
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorID   *uuid.UUID `gorm:"type:uuid;index" json:"actor_id,omitempty"`
	ActorRole string     `gorm:"type:varchar(10)" json:"actor_role,omitempty"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

// Common audit actions
const (
	AuditActionLogin                = "auth.login"
	AuditActionLogout               = "auth.logout"
	AuditActionPatientRegister      = "patient.register"
	AuditActionPatientDeactivate    = "patient.deactivate"
	AuditActionPatientProfileUpdate = "patient.profile_update"
	AuditActionDoctorCreate         = "doctor.create"
	AuditActionDoctorUpdate         = "doctor.update"
	AuditActionDoctorDeactivate     = "doctor.deactivate"
	AuditActionDepartmentCreate     = "department.create"
	AuditActionDepartmentUpdate     = "department.update"
	AuditActionAvailabilityUpsert   = "availability.upsert"
	AuditActionAppointmentBook      = "appointment.book"
	AuditActionAppointmentCancel    = "appointment.cancel"
	AuditActionAppointmentComplete  = "appointment.complete"
)
