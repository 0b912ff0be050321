// Package auth hashes passwords and issues the signed bearer tokens the API
// accepts. Tokens are self-contained; no session state is persisted.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rpupo63/blogger-backend/errs"
)

const tokenLifetime = 30 * 24 * time.Hour

// Service issues and verifies credentials.
type Service struct {
	jwtSecret  []byte
	bcryptCost int
}

// NewService creates a credential service signing with the given secret.
func NewService(jwtSecret string, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
	}
}

// HashPassword returns the bcrypt hash of a plaintext password.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext password matches the hash.
func (s *Service) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken signs a token carrying the user ID, valid for 30 days.
func (s *Service) IssueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a token string and returns the user ID
// it carries. Bad signatures, malformed tokens, and expired tokens all fail
// with an invalid-token error.
func (s *Service) VerifyToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, errs.NewInvalidTokenError()
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errs.NewInvalidTokenError()
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, errs.NewInvalidTokenError()
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, errs.NewInvalidTokenError()
	}

	return userID, nil
}
