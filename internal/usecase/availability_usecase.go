package usecase

import (
	"context"
	"errors"
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

var ErrInvalidTimeWindow = errors.New("end time must be after start time")

// slotLookaheadDays is the window shown to patients when browsing a
// doctor's open slots.
const slotLookaheadDays = 7

type AvailabilityUsecase interface {
	Upsert(ctx context.Context, actor entity.Actor, req *dto.UpsertAvailabilityRequest) (*dto.AvailabilityResponse, error)
	ListForDoctor(ctx context.Context, actor entity.Actor) (*dto.AvailabilityListResponse, error)
	ListOpenSlots(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityListResponse, error)
}

type availabilityUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	slotRepo     repository.AvailabilitySlotRepository
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	slotRepo repository.AvailabilitySlotRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:           db,
		log:          log,
		slotRepo:     slotRepo,
		doctorRepo:   doctorRepo,
		auditService: auditService,
	}
}

// Upsert declares the acting doctor's working window for a date. One
// row exists per (doctor, date); writing again replaces the window and
// re-marks it available.
func (u *availabilityUsecase) Upsert(ctx context.Context, actor entity.Actor, req *dto.UpsertAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if _, err := time.Parse(timeLayout, req.StartTime); err != nil {
		return nil, ErrInvalidTime
	}
	if _, err := time.Parse(timeLayout, req.EndTime); err != nil {
		return nil, ErrInvalidTime
	}
	if req.EndTime <= req.StartTime {
		return nil, ErrInvalidTimeWindow
	}

	slot := &entity.AvailabilitySlot{
		DoctorID:    actor.ID,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: true,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.slotRepo.Upsert(tx, slot); err != nil {
		u.log.Warnf("Failed to upsert slot for doctor %s on %s: %+v", actor.ID, req.Date, err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &actor, entity.AuditActionAvailabilityUpsert, entity.JSON{
		"date":       req.Date,
		"start_time": req.StartTime,
		"end_time":   req.EndTime,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	// Reload to pick up the row id when the write updated in place
	stored, err := u.slotRepo.FindByDoctorAndDate(u.db.WithContext(ctx), actor.ID, date)
	if err != nil || stored == nil {
		return converter.AvailabilityToResponse(slot), nil
	}
	return converter.AvailabilityToResponse(stored), nil
}

// ListForDoctor returns the acting doctor's slots from today onward.
func (u *availabilityUsecase) ListForDoctor(ctx context.Context, actor entity.Actor) (*dto.AvailabilityListResponse, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	slots, err := u.slotRepo.FindByDoctorFrom(u.db.WithContext(ctx), actor.ID, today)
	if err != nil {
		u.log.Warnf("Failed to list slots for doctor %s: %+v", actor.ID, err)
		return nil, err
	}

	return &dto.AvailabilityListResponse{
		Slots: converter.AvailabilitiesToResponses(slots),
		Total: len(slots),
	}, nil
}

// ListOpenSlots returns an active doctor's available windows over the
// next week, for the patient booking view.
func (u *availabilityUsecase) ListOpenSlots(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityListResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.IsActive() {
		return nil, ErrDoctorInactive
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	weekLater := today.AddDate(0, 0, slotLookaheadDays)

	slots, err := u.slotRepo.FindAvailableInRange(u.db.WithContext(ctx), doctorID, today, weekLater)
	if err != nil {
		u.log.Warnf("Failed to list open slots for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AvailabilityListResponse{
		Slots: converter.AvailabilitiesToResponses(slots),
		Total: len(slots),
	}, nil
}
