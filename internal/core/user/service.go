// Package user implements registration, login and profile reads.
package user

import (
	"context"
	"database/sql"
	"errors"
	"regexp"

	"fordinner/internal/core/auth"
	"fordinner/internal/infrastructure/config"
	"fordinner/internal/models"
	"fordinner/internal/pkg/common"
	"fordinner/internal/repository/repomanager"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	bcryptCost        = 10
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service handles user identity operations.
type Service struct {
	db  *sql.DB
	rm  repomanager.RepositoryManager
	cfg *config.Config
}

// RegisterRequest carries the registration input.
type RegisterRequest struct {
	Email     string
	Password  string
	Username  *string
	FirstName *string
	LastName  *string
}

// AuthResult is a signed token plus the authenticated user.
type AuthResult struct {
	Token string
	User  *models.User
}

// NewService creates the user service.
func NewService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config) *Service {
	return &Service{db: db, rm: rm, cfg: cfg}
}

// Register validates the input, hashes the password and creates the
// user, answering with a fresh session token.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.NewValidationError("email and password are required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, common.NewValidationError("password must be at least 6 characters long")
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, common.NewValidationError("invalid email format")
	}

	repo := s.rm.Users(s.db)

	// Duplicate checks up front so email and username conflicts answer
	// with distinct messages.
	if _, err := repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, common.ErrEmailTaken
	} else if !errors.Is(err, common.ErrUserNotFound) {
		return nil, err
	}

	if req.Username != nil {
		taken, err := repo.UsernameExists(ctx, *req.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, common.ErrUsernameTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := repo.Create(ctx, &models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	common.LogInfo("user registered",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
	)

	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials, stamps last_login and answers with a
// fresh session token.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, common.NewValidationError("email and password are required")
	}

	repo := s.rm.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return nil, common.ErrBadCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrBadCredentials
	}

	if err := repo.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	common.LogInfo("user logged in",
		zap.String("user_id", user.ID),
	)

	return &AuthResult{Token: token, User: user}, nil
}

// GetProfile reads one user by id. Ids not shaped like ours are
// rejected before touching the store.
func (s *Service) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, common.ErrUserNotFound
	}
	return s.rm.Users(s.db).GetByID(ctx, userID)
}

func (s *Service) issueToken(user *models.User) (string, error) {
	return auth.GenerateToken(user.ID, user.Email, user.Username,
		[]byte(s.cfg.JWT.Secret), s.cfg.JWT.Validity)
}
