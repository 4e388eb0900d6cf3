// Package authn resolves raw request evidence — an Authorization header or
// a session cookie — into verified identities.
//
// The Authenticator interface has three implementations selected by
// configuration rather than inheritance: NoAuth (authentication disabled),
// Basic (RFC 7617 email:password) and Session (opaque cookie token). Adding
// a fourth scheme means adding a type, not extending a hierarchy.
//
// All resolution failures collapse into the single ErrNoIdentity sentinel.
// The package deliberately refuses to tell callers whether an email was
// unknown or a password wrong; distinguishing the two would let anonymous
// clients enumerate accounts.
//
// # Usage
//
//	auth, err := authn.New(authn.Config{
//	    Scheme:        authn.SchemeSession,
//	    ExcludedPaths: []string{"/status/", "/docs*"},
//	}, store, hasher)
//
//	r := chi.NewRouter()
//	r.Use(authn.Middleware(auth))
package authn
