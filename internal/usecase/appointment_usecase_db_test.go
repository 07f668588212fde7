package usecase

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"hospital-appointment-system/internal/delivery/dto"
	"hospital-appointment-system/internal/domain/entity"
	"hospital-appointment-system/internal/infrastructure/database"
	persistence "hospital-appointment-system/internal/repository"
	"hospital-appointment-system/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// These tests run against a disposable Postgres pointed at by
// TEST_DATABASE_DSN, e.g.
//
//	TEST_DATABASE_DSN="host=localhost user=postgres password=postgres dbname=hospital_test port=5432 sslmode=disable"
//
// and are skipped when the variable is unset. Each test truncates all
// tables, so never point the DSN at a real database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	err = db.Exec("TRUNCATE treatments, appointments, availability_slots, audit_logs, doctors, patients, admins, departments RESTART IDENTITY CASCADE").Error
	if err != nil {
		t.Fatalf("reset tables: %v", err)
	}
	return db
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type bookingFixture struct {
	usecase  AppointmentUsecase
	doctor   *entity.Doctor
	patient  *entity.Patient
	patient2 *entity.Patient
}

func newBookingFixture(t *testing.T, db *gorm.DB) *bookingFixture {
	t.Helper()

	departmentRepo := persistence.NewDepartmentRepository()
	doctorRepo := persistence.NewDoctorRepository()
	patientRepo := persistence.NewPatientRepository()

	department := &entity.Department{Name: "Cardiology"}
	if err := departmentRepo.Create(db, department); err != nil {
		t.Fatalf("seed department: %v", err)
	}

	doctor := &entity.Doctor{
		Name:            "Dr. Maya Ortiz",
		Email:           "maya.ortiz@hospital.com",
		Password:        "not-a-real-hash",
		DepartmentID:    department.ID,
		Experience:      8,
		ConsultationFee: decimal.NewFromInt(150),
		Status:          entity.AccountActive,
	}
	if err := doctorRepo.Create(db, doctor); err != nil {
		t.Fatalf("seed doctor: %v", err)
	}

	patient := &entity.Patient{Name: "Jordan Smith", Email: "jordan@example.com", Password: "x", Status: entity.AccountActive}
	if err := patientRepo.Create(db, patient); err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	patient2 := &entity.Patient{Name: "Riley Chen", Email: "riley@example.com", Password: "x", Status: entity.AccountActive}
	if err := patientRepo.Create(db, patient2); err != nil {
		t.Fatalf("seed second patient: %v", err)
	}

	log := quietLogger()
	uc := NewAppointmentUsecase(
		db,
		log,
		persistence.NewAppointmentRepository(),
		persistence.NewTreatmentRepository(),
		doctorRepo,
		patientRepo,
		service.NewAuditService(log, persistence.NewAuditLogRepository()),
	)

	return &bookingFixture{usecase: uc, doctor: doctor, patient: patient, patient2: patient2}
}

func countTreatments(t *testing.T, db *gorm.DB, appointmentID uuid.UUID) int64 {
	t.Helper()
	var n int64
	err := db.Model(&entity.Treatment{}).Where("appointment_id = ?", appointmentID).Count(&n).Error
	if err != nil {
		t.Fatalf("count treatments: %v", err)
	}
	return n
}

func TestBookRejectsDoubleBookingUntilCancelled(t *testing.T) {
	db := openTestDB(t)
	f := newBookingFixture(t, db)
	ctx := context.Background()

	date := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	req := &dto.BookAppointmentRequest{DoctorID: f.doctor.ID, Date: date, Time: "10:00", Reason: "checkup"}

	booked, err := f.usecase.Book(ctx, entity.Actor{ID: f.patient.ID, Role: entity.RolePatient}, req)
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if booked.Status != string(entity.AppointmentBooked) {
		t.Fatalf("status = %q, want %q", booked.Status, entity.AppointmentBooked)
	}

	_, err = f.usecase.Book(ctx, entity.Actor{ID: f.patient2.ID, Role: entity.RolePatient}, req)
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("second booking error = %v, want ErrSlotTaken", err)
	}

	// A conflicting insert that slips past the pre-check is stopped by
	// the partial unique index and maps to the same conflict error.
	parsedDate, _ := time.Parse("2006-01-02", date)
	direct := &entity.Appointment{
		PatientID: f.patient2.ID,
		DoctorID:  f.doctor.ID,
		Date:      parsedDate,
		Time:      "10:00",
		Status:    entity.AppointmentBooked,
	}
	err = persistence.NewAppointmentRepository().Create(db, direct)
	if err == nil {
		t.Fatal("direct conflicting insert succeeded, expected unique violation")
	}
	if !isDuplicateKeyError(err, "booked_slot") {
		t.Fatalf("direct insert error = %v, not recognized as slot conflict", err)
	}

	// Cancelling frees the slot for a new booking.
	if err := f.usecase.Cancel(ctx, entity.Actor{ID: f.patient.ID, Role: entity.RolePatient}, booked.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	rebooked, err := f.usecase.Book(ctx, entity.Actor{ID: f.patient2.ID, Role: entity.RolePatient}, req)
	if err != nil {
		t.Fatalf("rebooking after cancel failed: %v", err)
	}

	var bookedRows int64
	err = db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND status = ?", f.doctor.ID, entity.AppointmentBooked).
		Count(&bookedRows).Error
	if err != nil {
		t.Fatalf("count booked rows: %v", err)
	}
	if bookedRows != 1 {
		t.Fatalf("booked rows = %d, want 1", bookedRows)
	}
	if rebooked.PatientID != f.patient2.ID {
		t.Fatalf("slot holder = %s, want %s", rebooked.PatientID, f.patient2.ID)
	}
}

func TestCompleteWritesExactlyOneTreatment(t *testing.T) {
	db := openTestDB(t)
	f := newBookingFixture(t, db)
	ctx := context.Background()

	today := time.Now().UTC().Format("2006-01-02")
	booked, err := f.usecase.Book(ctx, entity.Actor{ID: f.patient.ID, Role: entity.RolePatient},
		&dto.BookAppointmentRequest{DoctorID: f.doctor.ID, Date: today, Time: "09:00"})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	doctorActor := entity.Actor{ID: f.doctor.ID, Role: entity.RoleDoctor}
	completed, err := f.usecase.Complete(ctx, doctorActor, booked.ID, &dto.CompleteAppointmentRequest{
		Diagnosis:    "arrhythmia",
		Prescription: "beta blockers",
	})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.Appointment.Status != string(entity.AppointmentCompleted) {
		t.Fatalf("status = %q, want %q", completed.Appointment.Status, entity.AppointmentCompleted)
	}
	if completed.Notice != "" {
		t.Fatalf("unexpected notice for same-day completion: %q", completed.Notice)
	}
	if n := countTreatments(t, db, booked.ID); n != 1 {
		t.Fatalf("treatments after complete = %d, want 1", n)
	}

	// Repeating the transition must not produce a second treatment.
	_, err = f.usecase.Complete(ctx, doctorActor, booked.ID, &dto.CompleteAppointmentRequest{
		Diagnosis:    "arrhythmia",
		Prescription: "beta blockers",
	})
	if !errors.Is(err, ErrAppointmentNotActive) {
		t.Fatalf("second complete error = %v, want ErrAppointmentNotActive", err)
	}
	if err := f.usecase.Cancel(ctx, doctorActor, booked.ID); !errors.Is(err, ErrAppointmentNotActive) {
		t.Fatalf("cancel after complete error = %v, want ErrAppointmentNotActive", err)
	}
	if n := countTreatments(t, db, booked.ID); n != 1 {
		t.Fatalf("treatments after retries = %d, want 1", n)
	}
}

func TestCompleteRollsBackStatusWhenTreatmentInsertFails(t *testing.T) {
	db := openTestDB(t)
	f := newBookingFixture(t, db)
	ctx := context.Background()

	today := time.Now().UTC().Format("2006-01-02")
	booked, err := f.usecase.Book(ctx, entity.Actor{ID: f.patient.ID, Role: entity.RolePatient},
		&dto.BookAppointmentRequest{DoctorID: f.doctor.ID, Date: today, Time: "11:00"})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	// Occupy the one-treatment-per-appointment constraint so the insert
	// inside Complete fails after the status update.
	err = persistence.NewTreatmentRepository().Create(db, &entity.Treatment{
		AppointmentID: booked.ID,
		Diagnosis:     "stray record",
		Prescription:  "none",
	})
	if err != nil {
		t.Fatalf("seed conflicting treatment: %v", err)
	}

	_, err = f.usecase.Complete(ctx, entity.Actor{ID: f.doctor.ID, Role: entity.RoleDoctor}, booked.ID,
		&dto.CompleteAppointmentRequest{Diagnosis: "arrhythmia", Prescription: "beta blockers"})
	if err == nil {
		t.Fatal("complete succeeded despite treatment insert failure")
	}

	reloaded, err := persistence.NewAppointmentRepository().FindByID(db, booked.ID)
	if err != nil {
		t.Fatalf("reload appointment: %v", err)
	}
	if reloaded == nil || !reloaded.IsBooked() {
		t.Fatalf("appointment status after failed complete = %v, want Booked", reloaded)
	}
	if n := countTreatments(t, db, booked.ID); n != 1 {
		t.Fatalf("treatments = %d, want only the pre-existing row", n)
	}
}
