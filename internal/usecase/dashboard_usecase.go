package usecase

import (
	"context"
	"time"

	"hospital-appointment-system/internal/converter"
	"hospital-appointment-system/internal/delivery/dto"
	"hospital-appointment-system/internal/domain/entity"
	"hospital-appointment-system/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DashboardUsecase interface {
	AdminDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error)
	DoctorDashboard(ctx context.Context, actor entity.Actor) (*dto.DoctorDashboardResponse, error)
	PatientDashboard(ctx context.Context, actor entity.Actor) (*dto.PatientDashboardResponse, error)
}

type dashboardUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	departmentRepo  repository.DepartmentRepository
	appointmentRepo repository.AppointmentRepository
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	departmentRepo repository.DepartmentRepository,
	appointmentRepo repository.AppointmentRepository,
) DashboardUsecase {
	return &dashboardUsecase{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		departmentRepo:  departmentRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (u *dashboardUsecase) AdminDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	db := u.db.WithContext(ctx)

	totalDoctors, err := u.doctorRepo.CountActive(db)
	if err != nil {
		u.log.Warnf("Failed to count doctors: %+v", err)
		return nil, err
	}

	totalPatients, err := u.patientRepo.CountActive(db)
	if err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}

	totalAppointments, err := u.appointmentRepo.CountAll(db)
	if err != nil {
		u.log.Warnf("Failed to count appointments: %+v", err)
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	upcoming, err := u.appointmentRepo.CountUpcomingBooked(db, today)
	if err != nil {
		u.log.Warnf("Failed to count upcoming appointments: %+v", err)
		return nil, err
	}

	return &dto.AdminDashboardResponse{
		TotalDoctors:         totalDoctors,
		TotalPatients:        totalPatients,
		TotalAppointments:    totalAppointments,
		UpcomingAppointments: upcoming,
	}, nil
}

// DoctorDashboard shows the doctor's Booked appointments for the next
// week alongside every patient they have ever had an appointment with.
func (u *dashboardUsecase) DoctorDashboard(ctx context.Context, actor entity.Actor) (*dto.DoctorDashboardResponse, error) {
	db := u.db.WithContext(ctx)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	weekLater := today.AddDate(0, 0, slotLookaheadDays)

	appointments, err := u.appointmentRepo.FindByFilter(db, &entity.AppointmentFilter{
		DoctorID: &actor.ID,
		Status:   entity.AppointmentBooked,
		DateFrom: &today,
		DateTo:   &weekLater,
	})
	if err != nil {
		u.log.Warnf("Failed to list appointments for doctor %s: %+v", actor.ID, err)
		return nil, err
	}

	patients, err := u.patientRepo.FindDistinctByDoctor(db, actor.ID)
	if err != nil {
		u.log.Warnf("Failed to list patients for doctor %s: %+v", actor.ID, err)
		return nil, err
	}

	return &dto.DoctorDashboardResponse{
		Appointments:  converter.AppointmentsToResponses(appointments),
		Patients:      converter.PatientsToResponses(patients),
		TotalPatients: len(patients),
	}, nil
}

// PatientDashboard shows the departments directory plus the patient's
// own upcoming Booked appointments.
func (u *dashboardUsecase) PatientDashboard(ctx context.Context, actor entity.Actor) (*dto.PatientDashboardResponse, error) {
	db := u.db.WithContext(ctx)

	departments, err := u.departmentRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to list departments: %+v", err)
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	appointments, err := u.appointmentRepo.FindByFilter(db, &entity.AppointmentFilter{
		PatientID: &actor.ID,
		Status:    entity.AppointmentBooked,
		DateFrom:  &today,
	})
	if err != nil {
		u.log.Warnf("Failed to list appointments for patient %s: %+v", actor.ID, err)
		return nil, err
	}

	return &dto.PatientDashboardResponse{
		Departments:  converter.DepartmentsToResponses(departments),
		Appointments: converter.AppointmentsToResponses(appointments),
	}, nil
}
