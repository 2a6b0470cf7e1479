package email

import (
	"errors"
	"regexp"
	"strings"
)

var ErrSuspiciousContent = errors.New("suspicious content detected in email body")

var urlPattern = regexp.MustCompile(`https?://[A-Za-z0-9\-._~:/?#\[\]@!$&'()*+,;=%]+`)

const maxLinkLength = 250

// SuspiciousLinks returns every URL in body that embeds credentials, chains
// a second scheme or is unusually long.
func SuspiciousLinks(body string) []string {
	var out []string
	for _, u := range urlPattern.FindAllString(body, -1) {
		if strings.Contains(u, "@") || strings.Count(u, "//") > 1 || len(u) > maxLinkLength {
			out = append(out, u)
		}
	}
	return out
}
