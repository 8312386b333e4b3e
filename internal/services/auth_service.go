package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/task-tracker-api/internal/auth"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials   = errors.New("no active account found with the given credentials")
	ErrInvalidToken         = errors.New("token is invalid or expired")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")

	ErrUsernameRequired = newValidationError("username", "This field may not be blank.")
	ErrUsernameTooLong  = newValidationError("username", fmt.Sprintf("Ensure this field has no more than %d characters.", constants.MaxUsernameLength))
	ErrUsernameInvalid  = newValidationError("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	ErrUsernameTaken    = newValidationError("username", "A user with that username already exists.")
	ErrPasswordRequired = newValidationError("password", "This field may not be blank.")
	ErrPasswordTooLong  = newValidationError("password", fmt.Sprintf("Ensure this field has no more than %d bytes.", constants.MaxPasswordBytes))
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// TokenIssuer is the credential service the auth flow depends on.
type TokenIssuer interface {
	Issue(user *models.User) (auth.TokenPair, error)
	Refresh(refreshToken string) (string, error)
}

// AuthService handles registration, credentials and user lookup.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterInput represents the information needed to create a user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new user with a bcrypt password hash.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	switch {
	case username == "":
		return nil, ErrUsernameRequired
	case utf8.RuneCountInString(username) > constants.MaxUsernameLength:
		return nil, ErrUsernameTooLong
	case !usernamePattern.MatchString(username):
		return nil, ErrUsernameInvalid
	}
	switch {
	case strings.TrimSpace(input.Password) == "":
		return nil, ErrPasswordRequired
	case len(input.Password) > constants.MaxPasswordBytes:
		// bcrypt only reads the first 72 bytes and refuses longer input
		return nil, ErrPasswordTooLong
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// ObtainToken verifies credentials and issues an access/refresh pair.
func (s *AuthService) ObtainToken(input LoginInput) (auth.TokenPair, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.TokenPair{}, ErrInvalidCredentials
		}
		return auth.TokenPair{}, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return auth.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.tokens.Issue(user)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return pair, nil
}

// RefreshToken exchanges a refresh token for a new access token.
func (s *AuthService) RefreshToken(refreshToken string) (string, error) {
	access, err := s.tokens.Refresh(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return "", ErrInvalidToken
		}
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}
	return access, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// DeleteUser removes a user together with the tasks and comments they own.
func (s *AuthService) DeleteUser(id uint64) error {
	if _, err := s.GetUser(id); err != nil {
		return err
	}

	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
