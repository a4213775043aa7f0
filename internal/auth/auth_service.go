package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "go-rrhh/internal/auth/errors"
	"go-rrhh/internal/domain"
	"go-rrhh/internal/shared/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type TokenConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, username, password string) (TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error)
	GetMe(ctx context.Context, identity domain.Identity) (AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	ResolveIdentity(ctx context.Context, userID, username string) domain.Identity
}

type service struct {
	repo   Repository
	cfg    TokenConfig
	logger *zap.Logger
}

func NewService(repo Repository, cfg TokenConfig, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &service{repo: repo, cfg: cfg, logger: l}
}

func (s *service) Login(ctx context.Context, username, password string) (TokenResponse, error) {
	user, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("login lookup failed", zap.Error(err))
		}
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}
	if !user.Active {
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	resp, err := s.issueTokens(user)
	if err != nil {
		return TokenResponse{}, err
	}
	s.logger.Info("login success", zap.String("username", user.Username))
	return resp, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error) {
	claims, err := token.Parse(s.cfg.Secret, refreshToken, token.TypeRefresh)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return TokenResponse{}, autherrors.ErrTokenExpired
		}
		return TokenResponse{}, autherrors.ErrInvalidToken
	}

	user, err := s.repo.GetByUsername(ctx, claims.Username)
	if err != nil || !user.Active {
		return TokenResponse{}, autherrors.ErrInvalidToken
	}
	return s.issueTokens(user)
}

func (s *service) GetMe(ctx context.Context, identity domain.Identity) (AuthResponse, error) {
	var (
		user *User
		err  error
	)
	if identity.UserID != nil {
		user, err = s.repo.GetByID(ctx, *identity.UserID)
	} else {
		user, err = s.repo.GetByUsername(ctx, identity.Username)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrUserNotFound
		}
		return AuthResponse{}, err
	}
	return mapToResponse(user), nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return AuthResponse{}, autherrors.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AuthResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	user := &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hashed),
		Role:         strings.ToLower(strings.TrimSpace(req.Role)),
		Active:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error("register user persist failed", zap.String("username", username), zap.Error(err))
		return AuthResponse{}, err
	}

	s.logger.Info("user registered", zap.String("username", username), zap.String("role", user.Role))
	return mapToResponse(user), nil
}

// ResolveIdentity turns token claims into an audit identity. A missing or
// malformed user id is looked up by username; when that fails too the
// identity keeps only the username and callers record no acting user.
func (s *service) ResolveIdentity(ctx context.Context, userID, username string) domain.Identity {
	identity := domain.Identity{Username: username}
	if id, err := uuid.Parse(strings.TrimSpace(userID)); err == nil {
		identity.UserID = &id
		return identity
	}
	if username == "" {
		return identity
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		s.logger.Warn("resolve identity by username failed",
			zap.String("username", username),
			zap.Error(err),
		)
		return identity
	}
	identity.UserID = &user.ID
	return identity
}

func (s *service) issueTokens(user *User) (TokenResponse, error) {
	claims := token.Claims{
		UserID:   user.ID.String(),
		Username: user.Username,
		Role:     user.Role,
	}

	claims.Type = token.TypeAccess
	access, err := token.Issue(s.cfg.Secret, claims, s.cfg.AccessTTL)
	if err != nil {
		s.logger.Error("issue access token failed", zap.Error(err))
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed
	}

	claims.Type = token.TypeRefresh
	refresh, err := token.Issue(s.cfg.Secret, claims, s.cfg.RefreshTTL)
	if err != nil {
		s.logger.Error("issue refresh token failed", zap.Error(err))
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return TokenResponse{
		User:         mapToResponse(user),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func mapToResponse(u *User) AuthResponse {
	return AuthResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
