package application

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/philly/quillpost/internal/platform/apperror"
	"github.com/philly/quillpost/internal/platform/eventbus"
	"github.com/philly/quillpost/internal/platform/events"
	"github.com/philly/quillpost/internal/platform/logger"
	"github.com/philly/quillpost/internal/platform/password"
	"github.com/philly/quillpost/internal/users/domain"
	"github.com/philly/quillpost/internal/users/ports"
)

var (
	ErrValidationFailed = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidCredentialsData,
		"Registration failed.",
		http.StatusInternalServerError,
	)

	ErrEmailAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		apperror.BusinessCodeEmailAlreadyRegistered,
		"Email already registered. Try logging in.",
		http.StatusBadRequest,
	)

	ErrRegistrationFailed = apperror.New(
		apperror.CodeInternalError,
		apperror.BusinessCodeGeneral,
		"Registration failed.",
		http.StatusInternalServerError,
	)

	ErrEmailNotFound = apperror.New(
		apperror.CodeUnauthorized,
		apperror.BusinessCodeEmailNotFound,
		"Email not found.",
		http.StatusUnauthorized,
	)

	ErrIncorrectPassword = apperror.New(
		apperror.CodeUnauthorized,
		apperror.BusinessCodeIncorrectPassword,
		"Incorrect password.",
		http.StatusBadRequest,
	)

	ErrLoginFailed = apperror.New(
		apperror.CodeInternalError,
		apperror.BusinessCodeGeneral,
		"Error logging in.",
		http.StatusInternalServerError,
	)
)

// PasswordHasher hashes and verifies passwords. Compare returns
// password.ErrMismatch for a wrong password.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

var _ PasswordHasher = (*password.Hasher)(nil)

// AuthService implements registration and the stateless credential check.
// Login issues no session or token.
type AuthService struct {
	repo     ports.UserRepository
	hasher   PasswordHasher
	eventBus *eventbus.Bus
	logger   logger.Logger
}

func NewAuthService(repo ports.UserRepository, hasher PasswordHasher, eventBus *eventbus.Bus, logger logger.Logger) *AuthService {
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Register creates an account for email. The lookup before hashing only
// saves a bcrypt round for known duplicates; the repository's ErrEmailTaken
// is what actually guarantees one user per email.
func (s *AuthService) Register(ctx context.Context, email, plain string) (*domain.User, error) {
	if err := domain.ValidateCredentials(email, plain); err != nil {
		return nil, ErrValidationFailed.WithDetails(err.Error())
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error(ctx, "failed to look up user", "error", err)
		return nil, ErrRegistrationFailed.WithInner(err)
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}

	hash, err := s.hasher.Hash(plain)
	if err != nil {
		s.logger.Error(ctx, "failed to hash password", "error", err)
		return nil, ErrRegistrationFailed.WithInner(err)
	}

	user, err := domain.NewUser(email, hash)
	if err != nil {
		return nil, ErrValidationFailed.WithDetails(err.Error())
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ports.ErrEmailTaken) {
			return nil, ErrEmailAlreadyRegistered
		}
		s.logger.Error(ctx, "failed to create user", "error", err)
		return nil, ErrRegistrationFailed.WithInner(err)
	}

	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.UserRegisteredTopic,
		Payload: events.UserRegisteredEvent{
			UserID:     user.ID,
			OccurredAt: time.Now(),
		},
	})

	return user, nil
}

// Login verifies email and password against the stored hash.
func (s *AuthService) Login(ctx context.Context, email, plain string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error(ctx, "failed to look up user", "error", err)
		return ErrLoginFailed.WithInner(err)
	}
	if user == nil {
		return ErrEmailNotFound
	}

	if err := s.hasher.Compare(user.PasswordHash, plain); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return ErrIncorrectPassword
		}
		s.logger.Error(ctx, "failed to compare password", "error", err, "userID", user.ID)
		return ErrLoginFailed.WithInner(err)
	}

	return nil
}
