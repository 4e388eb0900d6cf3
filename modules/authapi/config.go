package authapi

// Config holds the HTTP surface settings, populated from the environment
// via pkg/config.
type Config struct {
	// CookieName is the session cookie issued at login. Must match the
	// name the session authenticator reads.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"_my_session_id"`

	// SecureCookies adds the Secure flag to issued cookies.
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}
