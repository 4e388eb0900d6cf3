// Package password provides one-way salted password hashing behind a small
// Hasher interface. The shipped implementation wraps bcrypt with an adaptive
// cost factor and constant-time verification.
package password
