// internal/service/auth_service.go
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/repository"
	"github.com/taskdeck/taskdeck/pkg/apperror"
	"github.com/taskdeck/taskdeck/pkg/auth"
)

// AuthService handles registration and login.
type AuthService struct {
	users           UserStore
	tokenManager    *auth.TokenManager
	passwordManager *auth.PasswordManager
	logger          *slog.Logger
}

func NewAuthService(users UserStore, tokenManager *auth.TokenManager, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:           users,
		tokenManager:    tokenManager,
		passwordManager: auth.NewPasswordManager(),
		logger:          logger,
	}
}

// Register creates a new user account. Username and mail must be unused.
func (s *AuthService) Register(ctx context.Context, username, mail, password string) (*models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	mail = strings.ToLower(strings.TrimSpace(mail))

	if err := auth.ValidateUsername(username); err != nil {
		return nil, apperror.Validation("invalid username: %v", err)
	}
	if err := auth.ValidateMail(mail); err != nil {
		return nil, apperror.Validation("invalid mail: %v", err)
	}
	if password == "" {
		return nil, apperror.Validation("password is required")
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, apperror.Validation("this username already exists")
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	if _, err := s.users.GetByMail(ctx, mail); err == nil {
		return nil, apperror.Validation("this mail already exists")
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	passwordHash, err := s.passwordManager.HashPassword(password)
	if err != nil {
		return nil, apperror.Validation("invalid password: %v", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Mail:         mail,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", slog.String("username", username))
	return user, nil
}

// Login verifies the credentials and issues an identity token whose subject
// is the user's mail.
func (s *AuthService) Login(ctx context.Context, mail, password string) (string, error) {
	mail = strings.ToLower(strings.TrimSpace(mail))

	user, err := s.users.GetByMail(ctx, mail)
	if err != nil {
		if repository.IsNotFound(err) {
			s.logger.Warn("login failed", slog.String("mail", mail), slog.String("reason", "user not found"))
			return "", apperror.Unauthenticated("mail or password is incorrect")
		}
		return "", err
	}

	if err := s.passwordManager.ComparePassword(user.PasswordHash, password); err != nil {
		s.logger.Warn("login failed", slog.String("mail", mail), slog.String("reason", "invalid password"))
		return "", apperror.Unauthenticated("mail or password is incorrect")
	}

	token, err := s.tokenManager.Issue(user.Mail)
	if err != nil {
		return "", err
	}

	s.logger.Info("login succeeded", slog.String("mail", mail))
	return token, nil
}
