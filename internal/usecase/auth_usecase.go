package usecase

import (
	"context"
	"errors"
	"fmt"

	"clinic-appointment-api/internal/converter"
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/delivery/http/middleware"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/domain/repository"
	"clinic-appointment-api/internal/service"
	"clinic-appointment-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthUsecase interface {
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error)
	RegisterDoctor(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context) (*dto.UserResponse, error)
}

type authUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	jwtService   *jwt.JWTService
	redisClient  *redis.Client
	auditService service.AuditService
}

func NewAuthUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		log:          log,
		userRepo:     userRepo,
		jwtService:   jwtService,
		redisClient:  redisClient,
		auditService: auditService,
	}
}

func accessTokenKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", userID, tokenID)
}

func refreshTokenKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("refresh_token:%s:%s", userID, tokenID)
}

// isDuplicateKeyError reports whether err is a unique violation on the users
// email index.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error) {
	hashed, err := hashPassword(req.Password)
	if err != nil {
		u.log.Errorf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		RoleID:   entity.RoleIDPatient,
		Email:    req.Email,
		Password: hashed,
		FullName: req.FullName,
		IsActive: true,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Errorf("Failed to register patient: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, &user.ID, entity.AuditActionUserRegister,
		"user", user.ID.String(), converter.UserToResponse(user))

	u.log.Infof("Patient registered: id=%s, email=%s", user.ID, user.Email)
	return converter.UserToResponse(user), nil
}

// RegisterDoctor creates the user row and its doctor profile in one
// transaction so a failed profile insert never leaves a profileless doctor.
func (u *authUsecase) RegisterDoctor(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.UserResponse, error) {
	hashed, err := hashPassword(req.Password)
	if err != nil {
		u.log.Errorf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		RoleID:   entity.RoleIDDoctor,
		Email:    req.Email,
		Password: hashed,
		FullName: req.FullName,
		IsActive: true,
	}
	profile := &entity.DoctorProfile{
		Specialization:  req.Specialization,
		Biography:       req.Biography,
		ConsultationFee: req.ConsultationFee,
	}

	if err := u.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Errorf("Failed to register doctor: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, &user.ID, entity.AuditActionUserRegister,
		"user", user.ID.String(), converter.UserToResponse(user))

	u.log.Infof("Doctor registered: id=%s, email=%s, specialization=%s",
		user.ID, user.Email, req.Specialization)
	return converter.UserToResponse(user), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	u.auditService.LogCreate(ctx, &user.ID, entity.AuditActionUserLogin,
		"user", user.ID.String(), entity.JSON{"email": user.Email})

	u.log.Infof("User logged in: id=%s, email=%s", user.ID, user.Email)
	return tokens, nil
}

// issueTokens generates an access/refresh pair and records both token IDs in
// redis; the middleware treats a missing access key as a revoked session.
func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, accessID, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		u.log.Errorf("Failed to generate access token: %+v", err)
		return nil, err
	}
	refreshToken, refreshID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		u.log.Errorf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.redisClient.Set(ctx, accessTokenKey(user.ID, accessID), "1", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Errorf("Failed to store access token: %+v", err)
		return nil, err
	}
	if err := u.redisClient.Set(ctx, refreshTokenKey(user.ID, refreshID), "1", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Errorf("Failed to store refresh token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

// Logout revokes the current access token and, when the client supplies its
// refresh token, that one too.
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return ErrRequesterMissing
	}
	tokenID, ok := middleware.GetTokenIDFromContext(ctx)
	if !ok {
		return ErrRequesterMissing
	}

	if err := u.redisClient.Del(ctx, accessTokenKey(userID, tokenID)).Err(); err != nil {
		u.log.Errorf("Failed to revoke access token: %+v", err)
		return err
	}

	if refreshToken != "" {
		claims, err := u.jwtService.ValidateToken(refreshToken)
		if err == nil && claims.TokenType == jwt.RefreshToken && claims.UserID == userID {
			if err := u.redisClient.Del(ctx, refreshTokenKey(userID, claims.TokenID)).Err(); err != nil {
				u.log.Warnf("Failed to revoke refresh token: %+v", err)
			}
		}
	}

	u.auditService.LogDelete(ctx, &userID, entity.AuditActionUserLogout,
		"user", userID.String(), nil)

	u.log.Infof("User logged out: id=%s", userID)
	return nil
}

// RefreshToken rotates the token pair: the presented refresh token is
// consumed and a fresh pair issued.
func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil || claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	key := refreshTokenKey(claims.UserID, claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, key).Result()
	if err != nil {
		u.log.Errorf("Failed to check refresh token: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	user, err := u.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", claims.UserID, err)
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrUserNotFound
	}

	if err := u.redisClient.Del(ctx, key).Err(); err != nil {
		u.log.Errorf("Failed to consume refresh token: %+v", err)
		return nil, err
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrRequesterMissing
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}
