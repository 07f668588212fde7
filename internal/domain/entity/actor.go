package entity

import "github.com/google/uuid"

// Role tags the three account types in the system
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// IsValid reports whether the role is one of the known tags
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleDoctor || r == RolePatient
}

// Actor is the authenticated identity performing an operation.
// Handlers build it from the request context and pass it explicitly
// into every usecase call.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// IsAdmin checks if the actor carries the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsDoctor checks if the actor carries the doctor role
func (a Actor) IsDoctor() bool {
	return a.Role == RoleDoctor
}

// IsPatient checks if the actor carries the patient role
func (a Actor) IsPatient() bool {
	return a.Role == RolePatient
}

// Authenticatable is implemented by the three account entities so the
// login flow can verify credentials through one capability interface,
// selected by an explicit role tag instead of branching on strings.
type Authenticatable interface {
	AccountID() uuid.UUID
	AccountRole() Role
	AccountEmail() string
	CredentialHash() string
	CanLogin() bool
}
