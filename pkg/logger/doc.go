// Package logger provides a small slog factory and the typed attribute
// constructors used across the toolkit so log keys stay consistent
// (identity_id, email, component, scheme). Emails are masked before they
// reach any handler.
package logger
