package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinic-booking-api/internal/converter"
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/domain/repository"
	"clinic-booking-api/pkg/jwt"

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
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("account is deactivated")
	ErrInvalidDateFormat  = errors.New("invalid date format, use YYYY-MM-DD")
)

type AuthUsecase interface {
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, accessTokenID, refreshTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	userRepo           repository.UserRepository
	patientProfileRepo repository.PatientProfileRepository
	jwtService         *jwt.JWTService
	redisClient        *redis.Client
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientProfileRepo repository.PatientProfileRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) AuthUsecase {
	return &authUsecase{
		db:                 db,
		log:                log,
		userRepo:           userRepo,
		patientProfileRepo: patientProfileRepo,
		jwtService:         jwtService,
		redisClient:        redisClient,
	}
}

func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	var birthDate time.Time
	if req.BirthDate != "" {
		parsed, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		birthDate = parsed
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	active := true
	user := &entity.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
		RoleID:   entity.RoleIDPatient,
		IsActive: &active,
	}

	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	patientProfile := &entity.PatientProfile{
		UserID:      user.ID,
		PhoneNumber: req.PhoneNumber,
		BirthDate:   birthDate,
		Address:     req.Address,
	}

	if err := u.patientProfileRepo.Create(ctx, tx, patientProfile); err != nil {
		u.log.Warnf("Failed to create patient profile: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	user.PatientProfile = patientProfile
	response := converter.UserToResponse(user)
	response.Role = entity.RolePatient

	u.log.Infof("Patient registered: id=%s, email=%s", user.ID, user.Email)
	return response, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, u.db, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if user.IsActive != nil && !*user.IsActive {
		return nil, ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.storeTokens(ctx, user.ID, accessTokenID, refreshTokenID); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, accessTokenID, refreshTokenID string) error {
	// Pattern matching to find and delete the token keys
	accessPattern := fmt.Sprintf("access_token:*:%s", accessTokenID)
	refreshPattern := fmt.Sprintf("refresh_token:*:%s", refreshTokenID)

	for _, pattern := range []string{accessPattern, refreshPattern} {
		keys, err := u.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			u.log.Warnf("Failed to get token keys: %+v", err)
			return err
		}
		if len(keys) > 0 {
			if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
				u.log.Warnf("Failed to delete tokens: %+v", err)
				return err
			}
		}
	}

	return nil
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
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	// Rotate: the old refresh token is single-use
	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(claims.UserID, claims.Email, claims.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(claims.UserID, claims.Email, claims.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.storeTokens(ctx, claims.UserID, accessTokenID, refreshTokenID); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) storeTokens(ctx context.Context, userID uuid.UUID, accessTokenID, refreshTokenID string) error {
	accessKey := fmt.Sprintf("access_token:%s:%s", userID.String(), accessTokenID)
	refreshKey := fmt.Sprintf("refresh_token:%s:%s", userID.String(), refreshTokenID)

	if err := u.redisClient.Set(ctx, accessKey, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return err
	}

	if err := u.redisClient.Set(ctx, refreshKey, "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return err
	}

	return nil
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
