// Package hasher implements ports.PasswordHasher with argon2id.
package hasher

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/target/mmk-auth-api/internal/ports"
	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"
)

var _ ports.PasswordHasher = (*Argon2)(nil)

// Params are the argon2id cost parameters written into every new hash.
type Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLength uint32
	SaltBytes uint32
}

// DefaultParams matches the OWASP baseline for argon2id.
var DefaultParams = Params{Time: 1, MemoryKiB: 64 * 1024, Threads: 4, KeyLength: 32, SaltBytes: 16}

// Options configures an Argon2 hasher.
type Options struct {
	Params Params
	// Workers bounds concurrent hash computations; each one holds MemoryKiB of RAM.
	Workers int
}

// Argon2 hashes passwords into PHC strings:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
//
// Verification reads the parameters back from the stored string, so hashes
// made with older parameters keep verifying after a config change.
type Argon2 struct {
	params Params
	sem    *semaphore.Weighted
}

// New creates an Argon2 hasher. Zero-valued fields fall back to DefaultParams.
func New(opts Options) *Argon2 {
	p := opts.Params
	if p.Time == 0 {
		p.Time = DefaultParams.Time
	}
	if p.MemoryKiB == 0 {
		p.MemoryKiB = DefaultParams.MemoryKiB
	}
	if p.Threads == 0 {
		p.Threads = DefaultParams.Threads
	}
	if p.KeyLength == 0 {
		p.KeyLength = DefaultParams.KeyLength
	}
	if p.SaltBytes == 0 {
		p.SaltBytes = DefaultParams.SaltBytes
	}
	p.MemoryKiB = min(p.MemoryKiB, MaxMemoryKiB)
	p.KeyLength = min(p.KeyLength, MaxKeyLength)
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Argon2{params: p, sem: semaphore.NewWeighted(int64(workers))}
}

// Hash returns a PHC-encoded argon2id hash with a fresh random salt.
func (a *Argon2) Hash(ctx context.Context, password string) (string, error) {
	salt := make([]byte, a.params.SaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	if err := a.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("acquire hash worker: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, a.params.Time, a.params.MemoryKiB, a.params.Threads, a.params.KeyLength)
	a.sem.Release(1)

	return encode(a.params, salt, key), nil
}

// Verify recomputes the hash with the stored salt and parameters.
func (a *Argon2) Verify(ctx context.Context, password, encoded string) (bool, error) {
	p, salt, want, err := decode(encoded)
	if err != nil {
		return false, nil
	}

	if err := a.sem.Acquire(ctx, 1); err != nil {
		return false, fmt.Errorf("acquire hash worker: %w", err)
	}
	got := argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKiB, p.Threads, uint32(len(want)))
	a.sem.Release(1)

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func encode(p Params, salt, key []byte) string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.MemoryKiB, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

var errMalformed = errors.New("malformed argon2id hash")

// Memory and key length limits keep a tampered hash from forcing huge allocations.
// New clamps its own parameters to them so every hash it writes can be read back.
const (
	MaxMemoryKiB = 4 * 1024 * 1024
	MaxKeyLength = 1024
)

func decode(encoded string) (Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Params{}, nil, nil, errMalformed
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return Params{}, nil, nil, errMalformed
	}

	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.MemoryKiB, &p.Time, &p.Threads); err != nil {
		return Params{}, nil, nil, errMalformed
	}
	if p.Time == 0 || p.Threads == 0 || p.MemoryKiB == 0 || p.MemoryKiB > MaxMemoryKiB {
		return Params{}, nil, nil, errMalformed
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return Params{}, nil, nil, errMalformed
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 || len(key) > MaxKeyLength {
		return Params{}, nil, nil, errMalformed
	}
	p.SaltBytes = uint32(len(salt))
	p.KeyLength = uint32(len(key))
	return p, salt, key, nil
}
