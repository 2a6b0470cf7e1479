package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	PurposeResetPassword = "reset_password"
	PurposeVerifyEmail   = "verify_email"

	ResetTokenTTL  = 15 * time.Minute
	VerifyTokenTTL = 24 * time.Hour
)

var (
	ErrMissingSubject = errors.New("token has no subject")
	ErrTokenPurpose   = errors.New("invalid token purpose")
)

var jwtSecret []byte

// now is swapped in tests to issue tokens in the past.
var now = time.Now

type Claims struct {
	UserID  string `json:"-"`
	Name    string `json:"name,omitempty"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

func Init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET is not set")
	}
	jwtSecret = []byte(secret)
}

// GenerateJWT issues a bearer token for userID. name is cached in the token
// so handlers can skip a user lookup.
func GenerateJWT(userID, name string, duration time.Duration) (string, error) {
	return issue(userID, name, "", now(), duration)
}

// ValidateJWT parses a bearer token. Single-purpose tokens (reset, verify)
// are rejected here.
func ValidateJWT(tokenStr string) (*Claims, error) {
	claims, err := parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != "" {
		return nil, ErrTokenPurpose
	}
	return claims, nil
}

func GenerateResetToken(email string) (string, error) {
	return issue(email, "", PurposeResetPassword, now(), ResetTokenTTL)
}

// ValidateResetToken returns the email a reset token was issued for.
func ValidateResetToken(tokenStr string) (string, error) {
	return validatePurpose(tokenStr, PurposeResetPassword)
}

func GenerateVerifyToken(userID string) (string, error) {
	return issue(userID, "", PurposeVerifyEmail, now(), VerifyTokenTTL)
}

// ValidateVerifyToken returns the user id a verification token was issued for.
func ValidateVerifyToken(tokenStr string) (string, error) {
	return validatePurpose(tokenStr, PurposeVerifyEmail)
}

func validatePurpose(tokenStr, purpose string) (string, error) {
	claims, err := parse(tokenStr)
	if err != nil {
		return "", err
	}
	if claims.Purpose != purpose {
		return "", ErrTokenPurpose
	}
	return claims.Subject, nil
}

func issue(subject, name, purpose string, issuedAt time.Time, ttl time.Duration) (string, error) {
	if len(jwtSecret) == 0 {
		return "", errors.New("auth not initialized")
	}
	claims := Claims{
		Name:    name,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	claims.UserID = claims.Subject
	return claims, nil
}
