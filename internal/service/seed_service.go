package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"hospital-appointment-system/config"
	"hospital-appointment-system/internal/domain/entity"
	"hospital-appointment-system/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedService creates the default admin account and the sample
// departments on first startup. Both are skipped when rows already
// exist, so re-running is harmless.
type SeedService struct {
	db             *gorm.DB
	log            *logrus.Logger
	cfg            config.SeedConfig
	adminRepo      repository.AdminRepository
	departmentRepo repository.DepartmentRepository
}

func NewSeedService(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.SeedConfig,
	adminRepo repository.AdminRepository,
	departmentRepo repository.DepartmentRepository,
) *SeedService {
	return &SeedService{
		db:             db,
		log:            log,
		cfg:            cfg,
		adminRepo:      adminRepo,
		departmentRepo: departmentRepo,
	}
}

// Run seeds the admin account and departments if absent.
func (s *SeedService) Run() error {
	if err := s.seedAdmin(); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	if err := s.seedDepartments(); err != nil {
		return fmt.Errorf("failed to seed departments: %w", err)
	}
	return nil
}

func (s *SeedService) seedAdmin() error {
	count, err := s.adminRepo.Count(s.db)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := s.cfg.AdminPassword
	if password == "" {
		password = generatePassword()
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &entity.Admin{
		Username: s.cfg.AdminUsername,
		Email:    s.cfg.AdminEmail,
		Password: string(hashed),
	}

	if err := s.adminRepo.Create(s.db, admin); err != nil {
		return err
	}

	if s.cfg.AdminPassword == "" {
		s.log.Infof("Admin account created: username=%s, password=%s (change it)", admin.Username, password)
	} else {
		s.log.Infof("Admin account created: username=%s", admin.Username)
	}
	return nil
}

func (s *SeedService) seedDepartments() error {
	count, err := s.departmentRepo.Count(s.db)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	departments := []entity.Department{
		{Name: "Cardiology", Description: "Heart and cardiovascular system"},
		{Name: "Neurology", Description: "Brain and nervous system"},
		{Name: "Orthopedics", Description: "Bones and joints"},
		{Name: "Pediatrics", Description: "Children health"},
		{Name: "Dermatology", Description: "Skin conditions"},
	}

	for i := range departments {
		if err := s.departmentRepo.Create(s.db, &departments[i]); err != nil {
			return err
		}
	}

	s.log.Infof("Sample departments created: %d", len(departments))
	return nil
}

func generatePassword() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
