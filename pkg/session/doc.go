// Package session manages the session-token slot on identity records:
// create binds a fresh opaque token to an identity (displacing any prior
// one), lookup resolves a token back to its identity, destroy clears it.
//
// The manager holds no session state of its own — the identity store is the
// single source of truth, which is what makes "at most one live session per
// identity" trivially enforceable.
package session
