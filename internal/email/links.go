package email

import (
	"net/url"
	"strings"
)

func VerifyLink(backendURL, token string) string {
	return strings.TrimRight(backendURL, "/") + "/api/auth/verify-email?token=" + url.QueryEscape(token)
}

func ResetLink(frontendURL, token string) string {
	return strings.TrimRight(frontendURL, "/") + "/reset-password?token=" + url.QueryEscape(token)
}
