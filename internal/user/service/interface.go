// Package service provides account-related services for password hashing.
package service

// PasswordService defines password hashing and verification operations.
type PasswordService interface {
	// HashPassword hashes a plain text password for storage.
	HashPassword(plainPassword string) (string, error)

	// ComparePassword performs a constant-time comparison between a plain
	// password and its stored hash.
	ComparePassword(plainPassword string, hashedPassword string) bool
}
