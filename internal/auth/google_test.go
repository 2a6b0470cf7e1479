package auth

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"google.golang.org/api/idtoken"
)

func TestVerifyIDToken(t *testing.T) {
	t.Run("ValidToken", func(t *testing.T) {
		v := &googleVerifier{
			clientID: "client-id",
			validate: func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
				if audience != "client-id" {
					t.Errorf("audience = %q", audience)
				}
				return &idtoken.Payload{Claims: map[string]interface{}{
					"email":          "g@x.com",
					"name":           "Gita",
					"picture":        "https://img.example/g.png",
					"email_verified": true,
				}}, nil
			},
		}

		identity, err := v.VerifyIDToken(context.Background(), "raw")
		if err != nil {
			t.Fatalf("VerifyIDToken: %v", err)
		}
		if identity.Email != "g@x.com" || identity.Name != "Gita" || !identity.EmailVerified {
			t.Errorf("unexpected identity: %+v", identity)
		}
	})

	t.Run("InvalidToken", func(t *testing.T) {
		v := &googleVerifier{validate: func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
			return nil, errors.New("idtoken: invalid token")
		}}
		if _, err := v.VerifyIDToken(context.Background(), "raw"); !errors.Is(err, ErrInvalidIDToken) {
			t.Errorf("expected ErrInvalidIDToken, got %v", err)
		}
	})

	t.Run("ProviderUnreachable", func(t *testing.T) {
		v := &googleVerifier{validate: func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
			return nil, &url.Error{Op: "Get", URL: "https://www.googleapis.com/oauth2/v3/certs", Err: errors.New("dial tcp: timeout")}
		}}
		if _, err := v.VerifyIDToken(context.Background(), "raw"); !errors.Is(err, ErrGoogleUnavailable) {
			t.Errorf("expected ErrGoogleUnavailable, got %v", err)
		}
	})

	t.Run("MissingEmail", func(t *testing.T) {
		v := &googleVerifier{validate: func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
			return &idtoken.Payload{Claims: map[string]interface{}{}}, nil
		}}
		if _, err := v.VerifyIDToken(context.Background(), "raw"); !errors.Is(err, ErrInvalidIDToken) {
			t.Errorf("expected ErrInvalidIDToken, got %v", err)
		}
	})
}

func TestExchangeCodeDisabledWithoutSecret(t *testing.T) {
	v := &googleVerifier{}
	if _, err := v.ExchangeCode(context.Background(), "code"); !errors.Is(err, ErrCodeExchangeDisabled) {
		t.Errorf("expected ErrCodeExchangeDisabled, got %v", err)
	}
}
