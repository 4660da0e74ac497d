package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token type claim values. A refresh token presented where an access
// token is expected (or vice versa) is rejected.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenExpired   = errors.New("token has expired")
	ErrWrongType      = errors.New("wrong token type")
	ErrInvalidSubject = errors.New("invalid subject claim")
)

// Claims carries the author id as the registered subject claim plus a
// type discriminator.
type Claims struct {
	Type string `json:"type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// Manager issues and validates signed token pairs.
type Manager struct {
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewManager creates new JWT manager.
func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// GeneratePair issues an access/refresh token pair for an author.
func (m *Manager) GeneratePair(authorID uuid.UUID) (access, refresh string, err error) {
	access, err = m.generate(authorID, TypeAccess, m.accessTTL)
	if err != nil {
		return "", "", fmt.Errorf("generate access token: %w", err)
	}
	refresh, err = m.generate(authorID, TypeRefresh, m.refreshTTL)
	if err != nil {
		return "", "", fmt.Errorf("generate refresh token: %w", err)
	}
	return access, refresh, nil
}

func (m *Manager) generate(authorID uuid.UUID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   authorID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// ValidateToken validates signature and expiry and parses the claims.
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// ValidateAccessToken validates an access token and returns the author id
// embedded as the subject claim.
func (m *Manager) ValidateAccessToken(tokenString string) (uuid.UUID, error) {
	return m.validateTyped(tokenString, TypeAccess)
}

// ValidateRefreshToken validates a refresh token and returns the subject.
func (m *Manager) ValidateRefreshToken(tokenString string) (uuid.UUID, error) {
	return m.validateTyped(tokenString, TypeRefresh)
}

func (m *Manager) validateTyped(tokenString, wantType string) (uuid.UUID, error) {
	claims, err := m.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, err
	}

	if claims.Type != wantType {
		return uuid.Nil, ErrWrongType
	}

	authorID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidSubject
	}

	return authorID, nil
}
