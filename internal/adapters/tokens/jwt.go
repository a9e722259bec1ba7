// Package tokens implements ports.TokenCodec with HMAC-signed JWTs.
package tokens

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/target/mmk-auth-api/internal/ports"
)

var _ ports.TokenCodec = (*JWTCodec)(nil)

// Options configures a JWTCodec.
type Options struct {
	Secret []byte
	// Algorithm is one of HS256, HS384, HS512.
	Algorithm string
	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

// JWTCodec encodes claims into compact JWS strings and decodes them back.
// Decode only accepts the configured algorithm.
type JWTCodec struct {
	secret []byte
	method jwt.SigningMethod
	parser *jwt.Parser
	now    func() time.Time
}

// NewJWTCodec validates opts and returns a codec.
func NewJWTCodec(opts Options) (*JWTCodec, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("jwt secret is required")
	}
	alg := opts.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported jwt algorithm %q", alg)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &JWTCodec{
		secret: opts.Secret,
		method: method,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{method.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(now),
		),
		now: now,
	}, nil
}

// Encode signs claims with an exp claim ttl from now. An exp already present in
// claims is overwritten.
func (c *JWTCodec) Encode(claims ports.TokenClaims, ttl time.Duration) (string, error) {
	mc := jwt.MapClaims{}
	maps.Copy(mc, claims)
	mc[ports.ClaimExpiry] = jwt.NewNumericDate(c.now().Add(ttl))

	signed, err := jwt.NewWithClaims(c.method, mc).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies signature, algorithm and expiry. Expiry is reported as
// ports.ErrTokenExpired only when the signature is valid; everything else is
// ports.ErrInvalidToken.
func (c *JWTCodec) Decode(token string) (ports.TokenClaims, error) {
	mc := jwt.MapClaims{}
	parsed, err := c.parser.ParseWithClaims(token, mc, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ports.ErrTokenExpired
		}
		return nil, ports.ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, ports.ErrInvalidToken
	}
	return ports.TokenClaims(mc), nil
}
