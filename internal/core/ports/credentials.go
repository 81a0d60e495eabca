package ports

// CredentialVerifier checks a plaintext credential against a stored hash.
//
// Placeholder returns a fixed, valid hash that no real credential matches.
// Login verifies against it when the email lookup misses, so the miss path
// costs exactly one hash run and stays timing-indistinguishable from a
// wrong-password attempt.
type CredentialVerifier interface {
	Verify(credential, encodedHash string) (bool, error)
	Placeholder() string
}
