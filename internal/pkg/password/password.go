// Package password hashes and verifies user passwords.
//
// New digests are argon2id in the PHC string format:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt>$<key>
//
// bcrypt digests ($2a$, $2b$, $2y$) are still accepted by Verify so accounts
// created before the switch keep working.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	schemeArgon2id = "argon2id"

	saltLength = 16

	// Upper bounds applied to parameters parsed from stored digests so a
	// forged digest cannot make Verify allocate unbounded memory.
	maxMemoryKiB = 1 << 20
	maxTime      = 16
	maxThreads   = 64
	maxKeyLength = 128
)

// Params are the argon2id cost parameters used for new digests.
type Params struct {
	Memory    uint32 // KiB
	Time      uint32
	Threads   uint8
	KeyLength uint32
}

// DefaultParams follow the argon2id recommendation for interactive logins.
var DefaultParams = Params{Memory: 64 * 1024, Time: 3, Threads: 2, KeyLength: 32}

// Hasher produces and checks password digests. The zero value is not usable;
// call New.
type Hasher struct {
	params Params
}

// New returns a Hasher using p for new digests. Zero fields fall back to
// DefaultParams.
func New(p Params) *Hasher {
	if p.Memory == 0 {
		p.Memory = DefaultParams.Memory
	}
	if p.Time == 0 {
		p.Time = DefaultParams.Time
	}
	if p.Threads == 0 {
		p.Threads = DefaultParams.Threads
	}
	if p.KeyLength == 0 {
		p.KeyLength = DefaultParams.KeyLength
	}
	return &Hasher{params: p}
}

// Hash returns a self-describing argon2id digest with a fresh random salt.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("password: read salt: %w", err)
	}

	p := h.params
	key := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLength)

	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		schemeArgon2id, argon2.Version, p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether password matches digest. It returns false for
// malformed digests and unknown schemes instead of an error.
func (h *Hasher) Verify(password, digest string) bool {
	switch {
	case strings.HasPrefix(digest, "$"+schemeArgon2id+"$"):
		return verifyArgon2id(password, digest)
	case strings.HasPrefix(digest, "$2a$"),
		strings.HasPrefix(digest, "$2b$"),
		strings.HasPrefix(digest, "$2y$"):
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
	default:
		return false
	}
}

func verifyArgon2id(password, digest string) bool {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(digest, "$")
	if len(parts) != 6 {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return false
	}
	if p.Memory == 0 || p.Memory > maxMemoryKiB ||
		p.Time == 0 || p.Time > maxTime ||
		p.Threads == 0 || p.Threads > maxThreads ||
		p.Memory < 8*uint32(p.Threads) {
		return false
	}

	salt, err := base64.RawStdEncoding.Strict().DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return false
	}
	want, err := base64.RawStdEncoding.Strict().DecodeString(parts[5])
	if err != nil || len(want) == 0 || len(want) > maxKeyLength {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}
