package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker-api/internal/models"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken  = errors.New("token is invalid or expired")
	ErrMissingSecret = errors.New("JWT secret must not be empty")
)

// Claims is the payload carried by both access and refresh tokens.
type Claims struct {
	UserID    uint64 `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair is returned when a user obtains credentials.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenService issues and verifies HS256 bearer tokens.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

// Issue creates a fresh access/refresh pair for user.
func (s *TokenService) Issue(user *models.User) (TokenPair, error) {
	access, err := s.sign(user.ID, TokenTypeAccess, s.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.sign(user.ID, TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// Verify checks an access token and returns the user id it was issued for.
func (s *TokenService) Verify(tokenString string) (uint64, error) {
	claims, err := s.parse(tokenString, TokenTypeAccess)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *TokenService) Refresh(refreshToken string) (string, error) {
	claims, err := s.parse(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", err
	}
	return s.sign(claims.UserID, TokenTypeAccess, s.accessTTL)
}

func (s *TokenService) sign(userID uint64, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (s *TokenService) parse(tokenString, tokenType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != tokenType || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
