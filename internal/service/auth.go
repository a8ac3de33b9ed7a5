package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Skotchmaster/coderr/internal/models"
	"github.com/Skotchmaster/coderr/internal/repo"
	"github.com/Skotchmaster/coderr/internal/transport"
	pkg_hash "github.com/Skotchmaster/coderr/pkg/hash"
	"github.com/Skotchmaster/coderr/pkg/logging"
	"github.com/Skotchmaster/coderr/pkg/tokens"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	Repo      *repo.GormRepo
	Sessions  SessionStore
	Events    *Emitter
	JWTSecret []byte
	TokenTTL  time.Duration
}

type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

func (s *AuthService) Register(ctx context.Context, req transport.RegistrationRequest) (*AuthResult, error) {
	u, err := s.createAccount(ctx, req, false)
	if err != nil {
		return nil, err
	}
	s.Events.Emit(ctx, TopicUsers, "user_registered", u.ID, u.ID, map[string]any{"username": u.Username, "type": u.Role})
	return s.issue(ctx, u)
}

// CreateAdmin creates an administrator account with its profile; it does not log in.
func (s *AuthService) CreateAdmin(ctx context.Context, req transport.RegistrationRequest) (*models.User, error) {
	req.RepeatedPassword = req.Password
	u, err := s.createAccount(ctx, req, true)
	if err != nil {
		return nil, err
	}
	s.Events.Emit(ctx, TopicUsers, "admin_created", u.ID, 0, map[string]any{"username": u.Username})
	return u, nil
}

func (s *AuthService) createAccount(ctx context.Context, req transport.RegistrationRequest, admin bool) (*models.User, error) {
	l := logging.FromContext(ctx).With(zap.String("svc", "auth.register"))

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Type == "" {
		req.Type = models.RoleCustomer
	}
	if err := ValidateStruct(req); err != nil {
		return nil, err
	}

	verr := &ValidationError{}
	if req.Password != req.RepeatedPassword {
		verr.Add("repeated_password", "passwords do not match")
	}
	taken, err := s.Repo.UsernameTaken(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		verr.Add("username", "a user with that username already exists")
	}
	taken, err = s.Repo.EmailTaken(ctx, req.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		verr.Add("email", "this email address is already in use")
	}
	if !verr.Empty() {
		return nil, verr
	}

	pwHash, err := pkg_hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", zap.String("reason", "cannot hash the password"), zap.Error(err))
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: pwHash,
		Role:         req.Type,
		IsAdmin:      admin,
	}

	err = s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		if err := tx.CreateUser(ctx, user); err != nil {
			return err
		}
		return tx.CreateProfile(ctx, &models.Profile{UserID: user.ID})
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, NewValidationError("username", "username or email already exists")
		}
		return nil, err
	}

	l.Info("register_success", zap.Uint("user_id", user.ID))
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*AuthResult, error) {
	l := logging.FromContext(ctx).With(zap.String("svc", "auth.login"), zap.String("username", req.Username))

	if err := ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.Repo.GetUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", zap.String("reason", "unknown username"))
			return nil, fmt.Errorf("%w: %w", ErrValidation, ErrInvalidCredentials)
		}
		return nil, err
	}
	if !pkg_hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_failed", zap.String("reason", "wrong password"))
		return nil, fmt.Errorf("%w: %w", ErrValidation, ErrInvalidCredentials)
	}

	return s.issue(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, jti string) error {
	if jti == "" {
		return ErrUnauthenticated
	}
	return s.Sessions.Revoke(ctx, jti)
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (*AuthResult, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	token, claims, err := tokens.NewAccessToken(s.JWTSecret, user.ID, user.Role, user.IsAdmin, ttl)
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.Create(ctx, claims.ID, user.ID, claims.ExpiresAt.Time); err != nil {
		return nil, err
	}

	return &AuthResult{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      user,
	}, nil
}
