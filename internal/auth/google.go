package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/crackit360/crackit360-api/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

var (
	ErrInvalidIDToken       = errors.New("invalid google id token")
	ErrCodeExchangeDisabled = errors.New("google code exchange is not configured")
	ErrGoogleUnavailable    = errors.New("google identity provider unavailable")
)

type GoogleIdentity struct {
	Email         string
	Name          string
	Picture       string
	EmailVerified bool
}

type GoogleVerifier interface {
	VerifyIDToken(ctx context.Context, rawIDToken string) (*GoogleIdentity, error)
	// ExchangeCode trades an authorization code for the ID token Google
	// returns alongside the access token.
	ExchangeCode(ctx context.Context, code string) (string, error)
}

type validateFunc func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

type googleVerifier struct {
	clientID    string
	oauthConfig *oauth2.Config
	validate    validateFunc
}

func NewGoogleVerifier(cfg config.GoogleSettings) GoogleVerifier {
	var oauthConfig *oauth2.Config
	if cfg.ClientSecret != "" {
		oauthConfig = &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}
	return &googleVerifier{
		clientID:    cfg.ClientID,
		oauthConfig: oauthConfig,
		validate:    idtoken.Validate,
	}
}

func (v *googleVerifier) VerifyIDToken(ctx context.Context, rawIDToken string) (*GoogleIdentity, error) {
	log := config.WithContext(ctx)

	payload, err := v.validate(ctx, rawIDToken, v.clientID)
	if err != nil {
		if isNetworkError(err) {
			log.WithError(err).Error("Google token verification unreachable")
			return nil, fmt.Errorf("%w: %v", ErrGoogleUnavailable, err)
		}
		log.WithError(err).Warn("Google ID token rejected")
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}

	identity := &GoogleIdentity{
		Email:         claimString(payload.Claims, "email"),
		Name:          claimString(payload.Claims, "name"),
		Picture:       claimString(payload.Claims, "picture"),
		EmailVerified: claimBool(payload.Claims, "email_verified"),
	}
	if identity.Email == "" {
		return nil, fmt.Errorf("%w: token has no email", ErrInvalidIDToken)
	}
	return identity, nil
}

func (v *googleVerifier) ExchangeCode(ctx context.Context, code string) (string, error) {
	if v.oauthConfig == nil {
		return "", ErrCodeExchangeDisabled
	}

	token, err := v.oauthConfig.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return "", fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
		}
		return "", fmt.Errorf("%w: %v", ErrGoogleUnavailable, err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", fmt.Errorf("%w: token response has no id_token", ErrInvalidIDToken)
	}
	return rawIDToken, nil
}

func isNetworkError(err error) bool {
	var urlErr *url.Error
	var netErr net.Error
	return errors.As(err, &urlErr) || errors.As(err, &netErr)
}

func claimString(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

func claimBool(claims map[string]interface{}, key string) bool {
	switch v := claims[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}
