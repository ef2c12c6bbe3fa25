package utils

import (
	"errors"
	"time"

	"clinica/config"
	"clinica/models"

	"github.com/golang-jwt/jwt"
)

// TokenClaims is what the client reads out of a session token.
type TokenClaims struct {
	Subject string
	Role    models.Role
}

// DecodeTokenClaims extracts the subject and role claims from a token without
// verifying the signature. The client holds no signing secret; the backend is
// the authority and rejects forged tokens on every call. An undecodable token
// yields an error, never a panic.
func DecodeTokenClaims(tokenString string) (TokenClaims, error) {
	claims := jwt.MapClaims{}
	parser := &jwt.Parser{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return TokenClaims{}, err
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return TokenClaims{}, errors.New("token does not contain a valid 'sub' claim")
	}

	out := TokenClaims{Subject: sub}
	if role, ok := claims["role"].(string); ok {
		switch models.Role(role) {
		case models.RolePatient, models.RoleProvider, models.RoleAdmin:
			out.Role = models.Role(role)
		}
	}
	return out, nil
}

// GenerateToken creates a signed HS256 token with the given subject and role.
// Used by the development stub server; the production backend mints its own.
func GenerateToken(subject string, role models.Role, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": string(role),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the claims if valid.
func ValidateToken(tokenString string) (TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return TokenClaims{}, err
	}
	if !token.Valid {
		return TokenClaims{}, errors.New("invalid token")
	}
	return DecodeTokenClaims(tokenString)
}

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "clinica-dev"
	}
	return []byte(secret)
}
