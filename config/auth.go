package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// DefaultJWTSecret is the development-only signing secret.
const DefaultJWTSecret = "change-me-in-production"

// SigningAlgorithm is the JWT "alg" used for session tokens. Only HMAC
// algorithms are accepted since the key is a shared secret.
type SigningAlgorithm string

const (
	SigningAlgorithmHS256 SigningAlgorithm = "HS256"
	SigningAlgorithmHS384 SigningAlgorithm = "HS384"
	SigningAlgorithmHS512 SigningAlgorithm = "HS512"
)

// UnmarshalText implements encoding.TextUnmarshaler for SigningAlgorithm.
func (a *SigningAlgorithm) UnmarshalText(text []byte) error {
	v := strings.ToUpper(strings.TrimSpace(string(text)))
	switch SigningAlgorithm(v) {
	case SigningAlgorithmHS256, SigningAlgorithmHS384, SigningAlgorithmHS512:
		*a = SigningAlgorithm(v)
		return nil
	default:
		return fmt.Errorf("invalid SigningAlgorithm: %q (valid options: HS256, HS384, HS512)", v)
	}
}

// JWTConfig controls session token signing.
type JWTConfig struct {
	SecretKey string           `env:"SECRET_KEY" envDefault:"change-me-in-production"`
	Algorithm SigningAlgorithm `env:"ALGORITHM"  envDefault:"HS256"`

	// AccessTokenExpireMinutes is both the token lifetime and the cookie max-age.
	AccessTokenExpireMinutes int `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"10080"`
}

// Sanitize applies guardrails to token configuration values.
func (j *JWTConfig) Sanitize() {
	if j.AccessTokenExpireMinutes < 1 {
		j.AccessTokenExpireMinutes = 1
	}
	if j.Algorithm == "" {
		j.Algorithm = SigningAlgorithmHS256
	}
}

// AccessTokenTTL returns the configured token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	return time.Duration(j.AccessTokenExpireMinutes) * time.Minute
}

// UsesDefaultSecret reports whether the secret was left at its development default.
func (j JWTConfig) UsesDefaultSecret() bool {
	return j.SecretKey == "" || j.SecretKey == DefaultJWTSecret
}

// Upper bounds on stored hash parameters; hashes beyond them are rejected on verify.
const (
	MaxHashMemoryKiB = 4 * 1024 * 1024
	MaxHashKeyLength = 1024
)

// PasswordHashConfig tunes argon2id and the size of the hashing pool.
type PasswordHashConfig struct {
	Time      uint32 `env:"TIME"       envDefault:"1"`
	MemoryKiB uint32 `env:"MEMORY_KIB" envDefault:"65536"`
	Threads   uint8  `env:"THREADS"    envDefault:"4"`
	KeyLength uint32 `env:"KEY_LENGTH" envDefault:"32"`
	SaltBytes uint32 `env:"SALT_BYTES" envDefault:"16"`

	// Workers bounds how many hashes run at once; 0 means runtime.NumCPU().
	Workers int `env:"WORKERS" envDefault:"0"`
}

// Sanitize applies guardrails to hashing parameters.
func (p *PasswordHashConfig) Sanitize() {
	if p.Time < 1 {
		p.Time = 1
	}
	p.MemoryKiB = min(max(p.MemoryKiB, 8*1024), MaxHashMemoryKiB)
	if p.Threads < 1 {
		p.Threads = 1
	}
	p.KeyLength = min(max(p.KeyLength, 16), MaxHashKeyLength)
	if p.SaltBytes < 8 {
		p.SaltBytes = 8
	}
	if p.Workers <= 0 {
		p.Workers = runtime.NumCPU()
	}
}
