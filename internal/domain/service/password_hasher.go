// Package service defines contracts for domain services implemented by the
// infrastructure layer.
package service

// PasswordHasher abstracts password hashing so the domain never depends on a
// concrete algorithm.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)
	// Check reports whether the plaintext password matches the stored hash.
	Check(password, hash string) bool
}
