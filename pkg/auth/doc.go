// Package auth is the orchestration façade over the authentication core:
// registration, login/logout and the single-use password-reset flow.
//
// The service composes the narrow capabilities from pkg/identity,
// pkg/password, pkg/session and pkg/token; it holds no mutable state of its
// own. Store-layer "not found" results never leak to callers — every method
// translates them into the domain errors declared in errors.go, so a call
// site can switch on sentinel errors without knowing the storage engine.
//
// # Usage
//
//	store := identity.NewMemoryStore()
//	hasher := password.NewBcrypt()
//	svc := auth.New(store, hasher, session.New(store))
//
//	if _, err := svc.Register(ctx, email, pass); err != nil {
//	    // auth.ErrEmailAlreadyExists, identity.ErrUnavailable, ...
//	}
//
//	tok, err := svc.Login(ctx, email, pass)
package auth
