package core

// PasswordHasher abstracts the password hashing primitive.
// The digest is opaque to the domain; only the hasher can verify it.
type PasswordHasher interface {
	// Hash derives a digest from a plaintext password
	Hash(password string) (string, error)
	// Verify reports whether the password matches the stored digest
	Verify(password, digest string) bool
}
