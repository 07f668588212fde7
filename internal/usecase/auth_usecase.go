package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hospital-appointment-system/internal/converter"
	"hospital-appointment-system/internal/delivery/dto"
	"hospital-appointment-system/internal/domain/entity"
	"hospital-appointment-system/internal/domain/repository"
	"hospital-appointment-system/internal/service"
	"hospital-appointment-system/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDeactivated = errors.New("account has been deactivated")
	ErrInvalidRole        = errors.New("unknown role")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAccountNotFound    = errors.New("account not found")
)

type AuthUsecase interface {
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, actor entity.Actor, tokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, actor entity.Actor) (*dto.SessionResponse, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	adminRepo    repository.AdminRepository
	doctorRepo   repository.DoctorRepository
	patientRepo  repository.PatientRepository
	jwtService   *jwt.JWTService
	redisClient  *redis.Client
	auditService service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	adminRepo repository.AdminRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		adminRepo:    adminRepo,
		doctorRepo:   doctorRepo,
		patientRepo:  patientRepo,
		jwtService:   jwtService,
		redisClient:  redisClient,
		auditService: auditService,
	}
}

func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	patient := &entity.Patient{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Phone:    req.Phone,
		Age:      req.Age,
		Gender:   req.Gender,
		Address:  req.Address,
		Status:   entity.AccountActive,
	}

	if err := u.patientRepo.Create(tx, patient); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	actor := entity.Actor{ID: patient.ID, Role: entity.RolePatient}
	if err := u.auditService.Record(tx, &actor, entity.AuditActionPatientRegister, entity.JSON{
		"email": patient.Email,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

// Login verifies the credential against the account table selected by
// the explicit role tag. All three account types satisfy the
// Authenticatable interface, so the verification path is shared.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	role := entity.Role(req.Role)
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	account, err := u.findAccount(u.db.WithContext(ctx), role, req.Email)
	if err != nil {
		u.log.Warnf("Failed to look up %s account: %+v", role, err)
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.CredentialHash()), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !account.CanLogin() {
		return nil, ErrAccountDeactivated
	}

	tokens, err := u.issueTokens(ctx, account.AccountID(), account.AccountEmail(), role)
	if err != nil {
		return nil, err
	}

	actor := entity.Actor{ID: account.AccountID(), Role: role}
	if err := u.auditService.Record(u.db.WithContext(ctx), &actor, entity.AuditActionLogin, entity.JSON{
		"email": account.AccountEmail(),
	}); err != nil {
		return nil, err
	}

	return tokens, nil
}

func (u *authUsecase) Logout(ctx context.Context, actor entity.Actor, tokenID string) error {
	accessKey := fmt.Sprintf("access_token:%s:%s", actor.ID.String(), tokenID)
	if err := u.redisClient.Del(ctx, accessKey).Err(); err != nil {
		u.log.Warnf("Failed to delete access token: %+v", err)
		return err
	}

	// Revoke all refresh tokens for the account
	refreshPattern := fmt.Sprintf("refresh_token:%s:*", actor.ID.String())
	refreshKeys, err := u.redisClient.Keys(ctx, refreshPattern).Result()
	if err != nil {
		u.log.Warnf("Failed to list refresh token keys: %+v", err)
		return err
	}
	if len(refreshKeys) > 0 {
		if err := u.redisClient.Del(ctx, refreshKeys...).Err(); err != nil {
			u.log.Warnf("Failed to delete refresh tokens: %+v", err)
			return err
		}
	}

	return u.auditService.Record(u.db.WithContext(ctx), &actor, entity.AuditActionLogout, nil)
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := fmt.Sprintf("refresh_token:%s:%s", claims.UserID.String(), claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrInvalidToken
	}

	// Deactivation must cut the refresh loop, not just the next login
	account, err := u.findAccountByID(u.db.WithContext(ctx), claims.Role, claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to look up %s account for refresh: %+v", claims.Role, err)
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidToken
	}
	if !account.CanLogin() {
		return nil, ErrAccountDeactivated
	}

	// Rotate: the old refresh token is single-use
	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to rotate refresh token: %+v", err)
		return nil, err
	}

	return u.issueTokens(ctx, claims.UserID, claims.Email, claims.Role)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, actor entity.Actor) (*dto.SessionResponse, error) {
	db := u.db.WithContext(ctx)

	switch actor.Role {
	case entity.RoleAdmin:
		admin, err := u.adminRepo.FindByID(db, actor.ID)
		if err != nil {
			return nil, err
		}
		if admin == nil {
			return nil, ErrAccountNotFound
		}
		return &dto.SessionResponse{
			ID:        admin.ID,
			Name:      admin.Username,
			Email:     admin.Email,
			Role:      string(entity.RoleAdmin),
			CreatedAt: admin.CreatedAt,
		}, nil
	case entity.RoleDoctor:
		doctor, err := u.doctorRepo.FindByID(db, actor.ID)
		if err != nil {
			return nil, err
		}
		if doctor == nil {
			return nil, ErrAccountNotFound
		}
		return &dto.SessionResponse{
			ID:        doctor.ID,
			Name:      doctor.Name,
			Email:     doctor.Email,
			Role:      string(entity.RoleDoctor),
			CreatedAt: doctor.CreatedAt,
		}, nil
	case entity.RolePatient:
		patient, err := u.patientRepo.FindByID(db, actor.ID)
		if err != nil {
			return nil, err
		}
		if patient == nil {
			return nil, ErrAccountNotFound
		}
		return &dto.SessionResponse{
			ID:        patient.ID,
			Name:      patient.Name,
			Email:     patient.Email,
			Role:      string(entity.RolePatient),
			CreatedAt: patient.CreatedAt,
		}, nil
	default:
		return nil, ErrInvalidRole
	}
}

// findAccount performs the typed lookup for the role tag. A nil return
// with nil error means no account holds that email.
func (u *authUsecase) findAccount(db *gorm.DB, role entity.Role, email string) (entity.Authenticatable, error) {
	switch role {
	case entity.RoleAdmin:
		admin, err := u.adminRepo.FindByEmail(db, email)
		if err != nil || admin == nil {
			return nil, err
		}
		return admin, nil
	case entity.RoleDoctor:
		doctor, err := u.doctorRepo.FindByEmail(db, email)
		if err != nil || doctor == nil {
			return nil, err
		}
		return doctor, nil
	case entity.RolePatient:
		patient, err := u.patientRepo.FindByEmail(db, email)
		if err != nil || patient == nil {
			return nil, err
		}
		return patient, nil
	default:
		return nil, ErrInvalidRole
	}
}

// findAccountByID is the by-id counterpart of findAccount, used when
// the role and id come from verified token claims.
func (u *authUsecase) findAccountByID(db *gorm.DB, role entity.Role, id uuid.UUID) (entity.Authenticatable, error) {
	switch role {
	case entity.RoleAdmin:
		admin, err := u.adminRepo.FindByID(db, id)
		if err != nil || admin == nil {
			return nil, err
		}
		return admin, nil
	case entity.RoleDoctor:
		doctor, err := u.doctorRepo.FindByID(db, id)
		if err != nil || doctor == nil {
			return nil, err
		}
		return doctor, nil
	case entity.RolePatient:
		patient, err := u.patientRepo.FindByID(db, id)
		if err != nil || patient == nil {
			return nil, err
		}
		return patient, nil
	default:
		return nil, ErrInvalidRole
	}
}

func (u *authUsecase) issueTokens(ctx context.Context, userID uuid.UUID, email string, role entity.Role) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(userID, email, role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(userID, email, role)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessKey := fmt.Sprintf("access_token:%s:%s", userID.String(), accessTokenID)
	if err := u.redisClient.Set(ctx, accessKey, "1", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, err
	}

	refreshKey := fmt.Sprintf("refresh_token:%s:%s", userID.String(), refreshTokenID)
	if err := u.redisClient.Set(ctx, refreshKey, "1", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
