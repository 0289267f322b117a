package usecase

import (
	"context"
	"errors"
	"time"

	"go-consult-api/config"
	"go-consult-api/internal/delivery/dto"
	"go-consult-api/internal/domain/entity"
	"go-consult-api/internal/domain/repository"
	"go-consult-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountDisabled    = errors.New("account is disabled")
)

// defaultAdminPassword is used at bootstrap when ADMIN_PASSWORD is not set.
// Deployments are expected to override it.
const defaultAdminPassword = "ChangeMe123!"

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID, tokenID string) error
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
	CreateDefaultAdmin(ctx context.Context)
}

type authUsecase struct {
	log        *logrus.Logger
	userRepo   repository.UserRepository
	tokenStore repository.TokenStore
	jwtService *jwt.JWTService
	admin      config.AdminConfig
}

func NewAuthUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	tokenStore repository.TokenStore,
	jwtService *jwt.JWTService,
	admin config.AdminConfig,
) AuthUsecase {
	return &authUsecase{
		log:        log,
		userRepo:   userRepo,
		tokenStore: tokenStore,
		jwtService: jwtService,
		admin:      admin,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:        uuid.New().String(),
		Email:     req.Email,
		Password:  string(hashedPassword),
		FullName:  req.FullName,
		Role:      req.Role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	return toUserResponse(user), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, tokenID, err := u.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		u.log.Warnf("Failed to generate token: %+v", err)
		return nil, err
	}

	if err := u.tokenStore.Save(ctx, user.ID, tokenID, u.jwtService.GetExpiry()); err != nil {
		u.log.Warnf("Failed to store token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		Token:     token,
		Role:      user.Role,
		ExpiresIn: int64(u.jwtService.GetExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, userID, tokenID string) error {
	if err := u.tokenStore.Delete(ctx, userID, tokenID); err != nil {
		u.log.Warnf("Failed to delete token: %+v", err)
		return err
	}
	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

// CreateDefaultAdmin ensures the well-known admin account exists. It is
// idempotent and never fails startup: errors are logged and swallowed so an
// admin-bootstrap problem cannot take down unrelated traffic.
func (u *authUsecase) CreateDefaultAdmin(ctx context.Context) {
	_, err := u.userRepo.FindByEmail(ctx, u.admin.Email)
	if err == nil {
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		u.log.Warnf("Failed to check default admin: %+v", err)
		return
	}

	password := u.admin.Password
	if password == "" {
		password = defaultAdminPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash default admin password: %+v", err)
		return
	}

	now := time.Now()
	admin := &entity.User{
		ID:        uuid.New().String(),
		Email:     u.admin.Email,
		Password:  string(hashedPassword),
		FullName:  "Administrator",
		Role:      entity.RoleAdmin,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.userRepo.Create(ctx, admin); err != nil {
		// A concurrent bootstrap may have won the race; either way the
		// account exists or the failure is non-fatal.
		if !errors.Is(err, repository.ErrDuplicate) {
			u.log.Warnf("Failed to create default admin: %+v", err)
		}
		return
	}

	u.log.Infof("Default admin account %s created", u.admin.Email)
}

func toUserResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
