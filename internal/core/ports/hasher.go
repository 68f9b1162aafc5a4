package ports

// CredentialHasher hashes and verifies plaintext credentials. The hash is
// opaque to the core.
type CredentialHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}
