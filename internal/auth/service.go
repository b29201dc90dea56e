package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/plotpoint/internal/config"
	"github.com/mrlokans/plotpoint/internal/database/shelves"
	"github.com/mrlokans/plotpoint/internal/database/users"
	"github.com/mrlokans/plotpoint/internal/entities"
)

var (
	ErrUsernameRequired   = errors.New("username is required")
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)

// Service handles registration and login.
type Service struct {
	db             *gorm.DB
	users          *users.Repository
	config         config.Auth
	defaultShelves []string
	limiter        *LoginLimiter
}

// NewService creates a new authentication service. Every registered account
// receives defaultShelves.
func NewService(db *gorm.DB, cfg config.Auth, defaultShelves []string) *Service {
	return &Service{
		db:             db,
		users:          users.NewRepository(db),
		config:         cfg,
		defaultShelves: defaultShelves,
		limiter:        NewLoginLimiter(cfg.MaxLoginAttempts, cfg.LockoutDuration),
	}
}

// MinPasswordLength returns the configured minimum, for prompts.
func (s *Service) MinPasswordLength() int {
	return s.config.MinPasswordLength
}

// UsernameAvailable reports whether username can be registered.
func (s *Service) UsernameAvailable(username string) (bool, error) {
	exists, err := s.users.UsernameExists(username)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return !exists, nil
}

// Register creates an account with its default shelves. Nothing is stored
// unless both succeed.
func (s *Service) Register(username, password string, isAdmin bool) (*entities.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrUsernameRequired
	}
	if err := ValidatePassword(password, s.config.MinPasswordLength); err != nil {
		return nil, err
	}

	available, err := s.UsernameAvailable(username)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrUserExists
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost, s.config.MinPasswordLength)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var user *entities.User
	err = s.db.Transaction(func(tx *gorm.DB) error {
		created, err := s.users.WithTx(tx).CreateUser(username, passwordHash, isAdmin)
		if err != nil {
			return err
		}
		if err := shelves.NewRepository(tx).CreateShelves(created.ID, s.defaultShelves); err != nil {
			return fmt.Errorf("failed to create shelves: %w", err)
		}
		user = created
		return nil
	})
	if errors.Is(err, users.ErrUsernameTaken) {
		return nil, ErrUserExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login validates credentials and opens a session. Unknown users and wrong
// passwords are both reported as ErrInvalidCredentials.
func (s *Service) Login(username, password string) (*Session, error) {
	if allowed, retryAfter := s.limiter.Allow(username); !allowed {
		return nil, fmt.Errorf("%w: try again in %s", ErrTooManyAttempts, retryAfter.Round(time.Second))
	}

	user, err := s.users.GetUserByUsername(username)
	if errors.Is(err, users.ErrUserNotFound) {
		s.limiter.RecordFailure(username)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			s.limiter.RecordFailure(username)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	s.limiter.RecordSuccess(username)
	return newSession(user), nil
}

// GetUser reloads the account behind a session.
func (s *Service) GetUser(session *Session) (*entities.User, error) {
	if !session.Active() {
		return nil, ErrInvalidCredentials
	}
	return s.users.GetUserByID(session.UserID)
}
