package entity

import "testing"

func TestDoctorAccountLifecycle(t *testing.T) {
	doctor := &Doctor{Status: AccountActive, Email: "doc@hospital.com"}

	if !doctor.IsActive() || !doctor.CanLogin() {
		t.Fatal("active doctor should be able to log in")
	}

	doctor.Deactivate()

	if doctor.IsActive() {
		t.Error("deactivated doctor should not be active")
	}
	if doctor.CanLogin() {
		t.Error("deactivated doctor should not be able to log in")
	}
	if doctor.AccountRole() != RoleDoctor {
		t.Errorf("AccountRole() = %s, want %s", doctor.AccountRole(), RoleDoctor)
	}
}

func TestPatientAccountLifecycle(t *testing.T) {
	patient := &Patient{Status: AccountActive, Email: "pat@hospital.com"}

	if !patient.CanLogin() {
		t.Fatal("active patient should be able to log in")
	}

	patient.Deactivate()

	if patient.CanLogin() {
		t.Error("deactivated patient should not be able to log in")
	}
	if patient.AccountRole() != RolePatient {
		t.Errorf("AccountRole() = %s, want %s", patient.AccountRole(), RolePatient)
	}
}

func TestAdminAlwaysLogsIn(t *testing.T) {
	admin := &Admin{Email: "admin@hospital.com"}
	if !admin.CanLogin() {
		t.Error("admins have no deactivated state and always log in")
	}
	if admin.AccountRole() != RoleAdmin {
		t.Errorf("AccountRole() = %s, want %s", admin.AccountRole(), RoleAdmin)
	}
}
