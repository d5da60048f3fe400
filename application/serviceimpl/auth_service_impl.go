package serviceimpl

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
	"taskboard-api/domain/repositories"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/apperrors"
	"taskboard-api/pkg/config"
	"taskboard-api/pkg/logger"
	"taskboard-api/pkg/utils"
)

type AuthServiceImpl struct {
	userRepo  repositories.UserRepository
	jwtSecret string
	jwtExpire time.Duration
}

func NewAuthService(userRepo repositories.UserRepository, cfg *config.JWTConfig) services.AuthService {
	return &AuthServiceImpl{
		userRepo:  userRepo,
		jwtSecret: cfg.Secret,
		jwtExpire: time.Duration(cfg.ExpireMinutes) * time.Minute,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("Email already registered")
	}

	role := req.Role
	if role == "" {
		role = models.RoleMember
	}

	password := req.Password
	if len(password) > 72 {
		// bcrypt ignores input past 72 bytes
		password = password[:72]
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		FullName:     req.FullName,
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ErrorContext(ctx, "User registration failed", "email", req.Email, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, services.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.WarnContext(ctx, "Login rejected", "user_id", user.ID)
		return "", nil, services.ErrInvalidCredentials
	}

	token, err := s.GenerateJWT(user)
	if err != nil {
		return "", nil, err
	}

	logger.InfoContext(ctx, "User logged in", "user_id", user.ID)
	return token, user, nil
}

func (s *AuthServiceImpl) GenerateJWT(user *models.User) (string, error) {
	return utils.GenerateToken(user, s.jwtSecret, s.jwtExpire)
}
