package logger

import (
	"log/slog"

	"github.com/authkit/authkit/pkg/sanitizer"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// IdentityID records the identity identifier under the key "identity_id".
// If id is nil, it returns an empty Attr.
func IdentityID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("identity_id", id)
}

// Email records a masked email under the key "email". Raw addresses never
// reach log output.
func Email(email string) slog.Attr {
	return slog.String("email", sanitizer.MaskEmail(email))
}

// Component records the emitting component under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Scheme records the authentication scheme under the key "scheme".
func Scheme(scheme string) slog.Attr {
	return slog.String("scheme", scheme)
}
