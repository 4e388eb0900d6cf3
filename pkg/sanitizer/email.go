// Package sanitizer normalizes untrusted input before it reaches storage.
// The authentication core only needs email normalization: registration and
// login must agree on the canonical form or lookups silently miss.
package sanitizer

import (
	"regexp"
	"strings"
)

var dotRun = regexp.MustCompile(`\.{2,}`)

// NormalizeEmail lowercases and trims an email address and collapses
// consecutive dots in the local part. Values without exactly one @ are
// returned trimmed and lowercased; validity is the caller's concern.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}

	local = dotRun.ReplaceAllString(local, ".")
	local = strings.Trim(local, ".")

	return local + "@" + domain
}

// MaskEmail hides most of the local part for log output while keeping the
// domain readable.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(strings.TrimSpace(email), "@")
	if !ok {
		return "***"
	}
	if len(local) <= 2 {
		return "***@" + domain
	}
	return local[:1] + "***" + local[len(local)-1:] + "@" + domain
}
