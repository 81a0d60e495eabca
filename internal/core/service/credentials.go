package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argonKeyLen  = 32
	argonSaltLen = 16
)

// HashProfile carries the Argon2id cost parameters for one credential class.
type HashProfile struct {
	Memory      uint32 // KiB
	Time        uint32 // iterations
	Parallelism uint8
}

// CredentialHasher hashes and verifies passwords and PINs with Argon2id.
// Passwords use a high-cost profile tuned for the web login path; PINs use a
// cheaper profile for latency-sensitive terminals. The relative ordering
// (passwords substantially more expensive) must be preserved when tuning.
type CredentialHasher struct {
	password    HashProfile
	pin         HashProfile
	placeholder string
}

// NewCredentialHasher builds a hasher from the two configured cost profiles.
// The placeholder hash is minted once so that login can burn a full password
// verification on unknown emails without keeping a real credential around.
func NewCredentialHasher(password, pin HashProfile) (*CredentialHasher, error) {
	h := &CredentialHasher{password: password, pin: pin}

	placeholder, err := h.HashPassword(randomToken())
	if err != nil {
		return nil, fmt.Errorf("mint placeholder hash: %w", err)
	}
	h.placeholder = placeholder
	return h, nil
}

// HashPassword hashes a plaintext password using the password profile and
// returns it in PHC string format: $argon2id$v=19$m=...,t=...,p=...$<salt>$<hash>
func (h *CredentialHasher) HashPassword(password string) (string, error) {
	return encode(password, h.password)
}

// HashPin hashes a PIN using the low-cost PIN profile.
func (h *CredentialHasher) HashPin(pin string) (string, error) {
	return encode(pin, h.pin)
}

// Verify checks a plaintext credential against a PHC hash string. The cost
// parameters are read back from the hash itself, so credentials hashed under
// older profiles keep verifying after a config change.
func (h *CredentialHasher) Verify(credential, encodedHash string) (bool, error) {
	salt, hash, params, err := decodePHC(encodedHash)
	if err != nil {
		return false, err
	}

	candidate := argon2.IDKey([]byte(credential), salt, params.Time, params.Memory, params.Parallelism, uint32(len(hash)))
	return subtle.ConstantTimeCompare(hash, candidate) == 1, nil
}

// Placeholder returns the fixed dummy hash used for timing-parity checks.
func (h *CredentialHasher) Placeholder() string {
	return h.placeholder
}

func encode(credential string, p HashProfile) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(credential), salt, p.Time, p.Memory, p.Parallelism, argonKeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.Memory, p.Time, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// decodePHC parses an Argon2id PHC string into its components.
func decodePHC(encoded string) (salt, hash []byte, params HashProfile, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return nil, nil, params, fmt.Errorf("invalid PHC hash format")
	}

	if parts[1] != "argon2id" {
		return nil, nil, params, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, params, fmt.Errorf("parsing version: %w", err)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Time, &params.Parallelism); err != nil {
		return nil, nil, params, fmt.Errorf("parsing parameters: %w", err)
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, params, fmt.Errorf("decoding salt: %w", err)
	}

	hash, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, params, fmt.Errorf("decoding hash: %w", err)
	}

	return salt, hash, params, nil
}

func randomToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.RawStdEncoding.EncodeToString(b)
}
