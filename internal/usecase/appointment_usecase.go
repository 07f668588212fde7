package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital-appointment-system/internal/converter"
	"hospital-appointment-system/internal/delivery/dto"
	"hospital-appointment-system/internal/domain/entity"
	"hospital-appointment-system/internal/domain/repository"
	"hospital-appointment-system/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrSlotTaken            = errors.New("time slot is already booked")
	ErrNotAppointmentActor  = errors.New("appointment does not belong to you")
	ErrAppointmentNotActive = errors.New("appointment is no longer booked")
	ErrFutureAppointment    = errors.New("cannot complete an appointment scheduled for a future date")
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrDoctorInactive       = errors.New("doctor is not accepting appointments")
	ErrInvalidDate          = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTime          = errors.New("invalid time format, use HH:MM")
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type AppointmentUsecase interface {
	Book(ctx context.Context, actor entity.Actor, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) error
	Complete(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.CompleteAppointmentRequest) (*dto.CompleteAppointmentResponse, error)
	ListForPatient(ctx context.Context, actor entity.Actor) (*dto.AppointmentListResponse, error)
	ListForDoctor(ctx context.Context, actor entity.Actor) (*dto.AppointmentListResponse, error)
	ListAll(ctx context.Context) (*dto.AppointmentListResponse, error)
	ListUpcoming(ctx context.Context) (*dto.AppointmentListResponse, error)
	TreatmentHistory(ctx context.Context, actor entity.Actor) (*dto.AppointmentListResponse, error)
	PatientHistory(ctx context.Context, actor entity.Actor, patientID uuid.UUID) (*dto.PatientHistoryResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	treatmentRepo   repository.TreatmentRepository
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	treatmentRepo repository.TreatmentRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		treatmentRepo:   treatmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		auditService:    auditService,
	}
}

// Book creates a Booked appointment for the acting patient.
//
// The slot is occupied only by Booked rows: a Cancelled or Completed
// appointment at the same (doctor, date, time) does not block. The
// pre-check below gives a friendly error for the common case; the
// partial unique index on the appointments table is what actually
// closes the race between two simultaneous bookings, so a constraint
// violation at insert time is translated to the same conflict error.
func (u *appointmentUsecase) Book(ctx context.Context, actor entity.Actor, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if _, err := time.Parse(timeLayout, req.Time); err != nil {
		return nil, ErrInvalidTime
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.IsActive() {
		return nil, ErrDoctorInactive
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.appointmentRepo.FindBookedAt(tx, req.DoctorID, date, req.Time)
	if err != nil {
		u.log.Warnf("Failed conflict check for doctor %s at %s %s: %+v", req.DoctorID, req.Date, req.Time, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	appointment := &entity.Appointment{
		PatientID: actor.ID,
		DoctorID:  req.DoctorID,
		Date:      date,
		Time:      req.Time,
		Reason:    req.Reason,
		Status:    entity.AppointmentBooked,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isDuplicateKeyError(err, "booked_slot") {
			return nil, ErrSlotTaken
		}
		if isForeignKeyError(err, "patient") {
			return nil, ErrAccountNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &actor, entity.AuditActionAppointmentBook, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"doctor_id":      req.DoctorID.String(),
		"date":           req.Date,
		"time":           req.Time,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment booked: id=%s, doctor=%s, date=%s %s", appointment.ID, req.DoctorID, req.Date, req.Time)
	return u.reload(ctx, appointment)
}

// Cancel transitions a Booked appointment to Cancelled. Only the owning
// patient or the assigned doctor may cancel; a second cancel is
// rejected, never silently accepted.
func (u *appointmentUsecase) Cancel(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if !appointment.CancellableBy(actor) {
		return ErrNotAppointmentActor
	}

	if !appointment.IsBooked() {
		return ErrAppointmentNotActive
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.UpdateStatusFromBooked(tx, appointmentID, entity.AppointmentCancelled)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointmentID, err)
		return err
	}
	if affected == 0 {
		// Lost the race against another transition
		return ErrAppointmentNotActive
	}

	if err := u.auditService.Record(tx, &actor, entity.AuditActionAppointmentCancel, entity.JSON{
		"appointment_id": appointmentID.String(),
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Appointment cancelled: id=%s, by=%s/%s", appointmentID, actor.Role, actor.ID)
	return nil
}

// Complete transitions a Booked appointment to Completed and writes its
// treatment record in the same transaction. Only the assigned doctor
// may complete. Appointments dated in the future are rejected;
// appointments dated in the past are completed with an informational
// notice.
func (u *appointmentUsecase) Complete(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.CompleteAppointmentRequest) (*dto.CompleteAppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !actor.IsDoctor() || !appointment.AssignedToDoctor(actor.ID) {
		return nil, ErrNotAppointmentActor
	}

	if !appointment.IsBooked() {
		return nil, ErrAppointmentNotActive
	}

	today := time.Now().UTC()
	if appointment.IsFutureDated(today) {
		return nil, ErrFutureAppointment
	}

	notice := ""
	if appointment.IsPastDated(today) {
		notice = fmt.Sprintf("appointment was scheduled for %s and has been completed as a past visit", appointment.Date.Format(dateLayout))
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.UpdateStatusFromBooked(tx, appointmentID, entity.AppointmentCompleted)
	if err != nil {
		u.log.Warnf("Failed to complete appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAppointmentNotActive
	}

	treatment := &entity.Treatment{
		AppointmentID: appointmentID,
		Diagnosis:     req.Diagnosis,
		Prescription:  req.Prescription,
		Notes:         req.Notes,
	}

	if err := u.treatmentRepo.Create(tx, treatment); err != nil {
		u.log.Warnf("Failed to create treatment for appointment %s: %+v", appointmentID, err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &actor, entity.AuditActionAppointmentComplete, entity.JSON{
		"appointment_id": appointmentID.String(),
		"treatment_id":   treatment.ID,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment completed: id=%s, doctor=%s", appointmentID, actor.ID)

	full, err := u.reload(ctx, appointment)
	if err != nil {
		return nil, err
	}
	return &dto.CompleteAppointmentResponse{
		Appointment: full,
		Notice:      notice,
	}, nil
}

func (u *appointmentUsecase) ListForPatient(ctx context.Context, actor entity.Actor) (*dto.AppointmentListResponse, error) {
	patientID := actor.ID
	return u.list(ctx, &entity.AppointmentFilter{PatientID: &patientID})
}

func (u *appointmentUsecase) ListForDoctor(ctx context.Context, actor entity.Actor) (*dto.AppointmentListResponse, error) {
	doctorID := actor.ID
	return u.list(ctx, &entity.AppointmentFilter{DoctorID: &doctorID})
}

func (u *appointmentUsecase) ListAll(ctx context.Context) (*dto.AppointmentListResponse, error) {
	return u.list(ctx, nil)
}

// ListUpcoming returns Booked appointments dated today or later, oldest
// first, for the admin view.
func (u *appointmentUsecase) ListUpcoming(ctx context.Context) (*dto.AppointmentListResponse, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	return u.list(ctx, &entity.AppointmentFilter{
		Status:   entity.AppointmentBooked,
		DateFrom: &today,
	})
}

// TreatmentHistory returns the acting patient's Completed appointments
// with their treatment records, newest first.
func (u *appointmentUsecase) TreatmentHistory(ctx context.Context, actor entity.Actor) (*dto.AppointmentListResponse, error) {
	patientID := actor.ID
	return u.list(ctx, &entity.AppointmentFilter{
		PatientID: &patientID,
		Status:    entity.AppointmentCompleted,
	})
}

// PatientHistory returns a patient's Completed appointments for the
// acting doctor's case review.
func (u *appointmentUsecase) PatientHistory(ctx context.Context, actor entity.Actor, patientID uuid.UUID) (*dto.PatientHistoryResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrAccountNotFound
	}

	// Doctors only see patients they have actually had appointments with.
	if actor.Role == entity.RoleDoctor {
		shared, err := u.appointmentRepo.FindByFilter(u.db.WithContext(ctx), &entity.AppointmentFilter{
			DoctorID:  &actor.ID,
			PatientID: &patientID,
		})
		if err != nil {
			u.log.Warnf("Failed to check doctor-patient relation: %+v", err)
			return nil, err
		}
		if len(shared) == 0 {
			return nil, ErrNotAppointmentActor
		}
	}

	appointments, err := u.appointmentRepo.FindByFilter(u.db.WithContext(ctx), &entity.AppointmentFilter{
		PatientID: &patientID,
		Status:    entity.AppointmentCompleted,
	})
	if err != nil {
		u.log.Warnf("Failed to load history for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.PatientHistoryResponse{
		Patient:      converter.PatientToResponse(patient),
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) list(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByFilter(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) reload(ctx context.Context, appointment *entity.Appointment) (*dto.AppointmentResponse, error) {
	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		// Return the bare row if the reload fails
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}
