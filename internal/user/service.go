package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/crackit360/crackit360-api/internal/apperr"
	"github.com/crackit360/crackit360-api/internal/auth"
	"github.com/crackit360/crackit360-api/internal/config"
	"github.com/crackit360/crackit360-api/internal/email"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const minPasswordLength = 6

// Mailer queues outgoing email. Screening failures come back synchronously.
type Mailer interface {
	Dispatch(ctx context.Context, msg email.Message) error
}

type Options struct {
	AccessTokenTTL time.Duration
	BackendURL     string
	FrontendURL    string
}

type Service interface {
	Register(ctx context.Context, dto RegisterDTO) (*MessageResponse, error)
	VerifyEmail(ctx context.Context, token string) (*MessageResponse, error)
	Login(ctx context.Context, dto LoginDTO) (*AuthResponse, error)
	GoogleLogin(ctx context.Context, dto GoogleLoginDTO) (*AuthResponse, error)
	ForgotPassword(ctx context.Context, dto ForgotPasswordDTO) (*MessageResponse, error)
	ResetPassword(ctx context.Context, dto ResetPasswordDTO) (*MessageResponse, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

type service struct {
	repo   Repository
	google auth.GoogleVerifier
	mailer Mailer
	opts   Options
}

func NewService(repo Repository, google auth.GoogleVerifier, mailer Mailer, opts Options) Service {
	if opts.AccessTokenTTL <= 0 {
		opts.AccessTokenTTL = time.Hour
	}
	return &service{repo: repo, google: google, mailer: mailer, opts: opts}
}

func (s *service) Register(ctx context.Context, dto RegisterDTO) (*MessageResponse, error) {
	log := config.WithContext(ctx)

	name := strings.TrimSpace(dto.Name)
	addr := normalizeEmail(dto.Email)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if err := validateEmail(addr); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(dto.Password)) < minPasswordLength {
		return nil, apperr.Validation(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	if _, err := s.repo.FindByEmail(ctx, addr); err == nil {
		return nil, apperr.Conflict("Email already registered")
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, apperr.Internal(err)
	}

	hash, err := auth.HashPassword(dto.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	u := &User{
		Name:         name,
		Email:        addr,
		PasswordHash: hash,
		AuthProvider: ProviderEmail,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, apperr.Conflict("Email already exists")
		}
		return nil, apperr.Internal(err)
	}
	log.WithField("user_id", u.ID).Info("User registered")

	token, err := auth.GenerateVerifyToken(u.ID.String())
	if err != nil {
		return nil, apperr.Internal(err)
	}
	msg, err := email.VerificationMessage(u.Email, u.Name, email.VerifyLink(s.opts.BackendURL, token))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if err := s.mailer.Dispatch(ctx, msg); err != nil {
		return nil, dispatchError(err)
	}

	return &MessageResponse{Status: "success", Message: "Registration successful. Verify email."}, nil
}

func (s *service) VerifyEmail(ctx context.Context, token string) (*MessageResponse, error) {
	if token == "" {
		return nil, apperr.Validation("token is required")
	}
	subject, err := auth.ValidateVerifyToken(token)
	if err != nil {
		return nil, tokenError(err, "Verification link expired")
	}
	id, err := uuid.Parse(subject)
	if err != nil {
		return nil, apperr.Validation("Invalid or tampered token")
	}

	if err := s.repo.MarkVerified(ctx, id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal(err)
	}
	config.WithContext(ctx).WithField("user_id", id).Info("Email verified")
	return &MessageResponse{Status: "success", Message: "Email verified successfully"}, nil
}

func (s *service) Login(ctx context.Context, dto LoginDTO) (*AuthResponse, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(dto.Email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.Unauthorized("Invalid email or password")
		}
		return nil, apperr.Internal(err)
	}

	if u.AuthProvider == ProviderGoogle {
		return nil, apperr.Forbidden("Use Google Sign-In")
	}
	if !auth.CheckPassword(u.PasswordHash, dto.Password) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}
	if !u.EmailVerified {
		return nil, apperr.Forbidden("Verify email before login")
	}

	return s.issue(u)
}

func (s *service) GoogleLogin(ctx context.Context, dto GoogleLoginDTO) (*AuthResponse, error) {
	log := config.WithContext(ctx)

	rawIDToken := strings.TrimSpace(dto.IDToken)
	if rawIDToken == "" && dto.Code != "" {
		exchanged, err := s.google.ExchangeCode(ctx, dto.Code)
		if err != nil {
			return nil, googleError(err)
		}
		rawIDToken = exchanged
	}
	if rawIDToken == "" {
		return nil, apperr.Validation("id_token or code is required")
	}

	identity, err := s.google.VerifyIDToken(ctx, rawIDToken)
	if err != nil {
		return nil, googleError(err)
	}
	addr := normalizeEmail(identity.Email)

	u, err := s.repo.FindByEmail(ctx, addr)
	switch {
	case err == nil:
		if u.AuthProvider == ProviderEmail {
			if err := s.repo.LinkGoogle(ctx, u.ID, identity.Picture); err != nil {
				return nil, apperr.Internal(err)
			}
			u.AuthProvider = ProviderGoogle
			u.Avatar = identity.Picture
			u.EmailVerified = true
			log.WithField("user_id", u.ID).Info("Linked existing account to Google")
		}
	case errors.Is(err, ErrUserNotFound):
		u, err = s.createGoogleUser(ctx, addr, identity)
		if err != nil {
			return nil, err
		}
	default:
		return nil, apperr.Internal(err)
	}

	return s.issue(u)
}

func (s *service) createGoogleUser(ctx context.Context, addr string, identity *auth.GoogleIdentity) (*User, error) {
	name := strings.TrimSpace(identity.Name)
	if name == "" {
		name = strings.SplitN(addr, "@", 2)[0]
	}
	u := &User{
		Name:          name,
		Email:         addr,
		AuthProvider:  ProviderGoogle,
		Avatar:        identity.Picture,
		EmailVerified: true,
	}

	err := s.repo.Create(ctx, u)
	if errors.Is(err, ErrEmailTaken) {
		// A concurrent first login created the row.
		existing, findErr := s.repo.FindByEmail(ctx, addr)
		if findErr != nil {
			return nil, apperr.Internal(findErr)
		}
		return existing, nil
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	config.WithContext(ctx).WithField("user_id", u.ID).Info("User created from Google sign-in")
	return u, nil
}

func (s *service) ForgotPassword(ctx context.Context, dto ForgotPasswordDTO) (*MessageResponse, error) {
	addr := normalizeEmail(dto.Email)
	if addr == "" {
		return nil, apperr.Validation("email is required")
	}

	u, err := s.repo.FindByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.NotFound("Email not found")
		}
		return nil, apperr.Internal(err)
	}
	if u.AuthProvider == ProviderGoogle {
		return nil, apperr.Validation("Google users must login via Google")
	}

	token, err := auth.GenerateResetToken(u.Email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	msg, err := email.ResetMessage(u.Email, email.ResetLink(s.opts.FrontendURL, token))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if err := s.mailer.Dispatch(ctx, msg); err != nil {
		return nil, dispatchError(err)
	}

	return &MessageResponse{Message: "Reset link sent"}, nil
}

func (s *service) ResetPassword(ctx context.Context, dto ResetPasswordDTO) (*MessageResponse, error) {
	if dto.Token == "" {
		return nil, apperr.Validation("token is required")
	}
	if len(strings.TrimSpace(dto.NewPassword)) < minPasswordLength {
		return nil, apperr.Validation(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	addr, err := auth.ValidateResetToken(dto.Token)
	if err != nil {
		return nil, tokenError(err, "Reset link expired")
	}

	u, err := s.repo.FindByEmail(ctx, normalizeEmail(addr))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal(err)
	}

	hash, err := auth.HashPassword(dto.NewPassword)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if err := s.repo.UpdatePassword(ctx, u.ID, hash); err != nil {
		return nil, apperr.Internal(err)
	}

	config.WithContext(ctx).WithField("user_id", u.ID).Info("Password reset")
	return &MessageResponse{Message: "Password reset successful"}, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Unauthorized("User not found")
	}
	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.Unauthorized("User not found")
		}
		return nil, apperr.Internal(err)
	}
	return u, nil
}

func (s *service) issue(u *User) (*AuthResponse, error) {
	token, err := auth.GenerateJWT(u.ID.String(), u.Name, s.opts.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return newAuthResponse(u, token), nil
}

func validateEmail(addr string) error {
	if addr == "" {
		return apperr.Validation("email is required")
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return apperr.Validation("invalid email address")
	}
	return nil
}

func tokenError(err error, expiredMessage string) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperr.Unauthorized(expiredMessage)
	case errors.Is(err, auth.ErrTokenPurpose):
		return apperr.Validation("Invalid token purpose")
	default:
		return apperr.Validation("Invalid or tampered token")
	}
}

func googleError(err error) error {
	switch {
	case errors.Is(err, auth.ErrGoogleUnavailable):
		return apperr.Upstream("Google sign-in is unavailable", err)
	case errors.Is(err, auth.ErrCodeExchangeDisabled):
		return apperr.Validation("authorization code sign-in is not enabled")
	default:
		return apperr.New(apperr.KindUnauthorized, "Invalid Google token", err)
	}
}

func dispatchError(err error) error {
	if apperr.Is(err, apperr.KindValidation) {
		return err
	}
	return apperr.Internal(err)
}
