package tokens

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/mmk-auth-api/internal/ports"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestCodec(t *testing.T, secret string, clock *fakeClock) *JWTCodec {
	t.Helper()
	c, err := NewJWTCodec(Options{Secret: []byte(secret), Algorithm: "HS256", Now: clock.Now})
	require.NoError(t, err)
	return c
}

func TestJWTCodec_RoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	c := newTestCodec(t, "secret", clock)

	token, err := c.Encode(ports.TokenClaims{"sub": "user-1", "scope": "x"}, time.Hour)
	require.NoError(t, err)

	claims, err := c.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject())
	assert.Equal(t, "x", claims["scope"])
	assert.InDelta(t, float64(clock.t.Add(time.Hour).Unix()), claims[ports.ClaimExpiry], 1)
}

func TestJWTCodec_Expired(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	c := newTestCodec(t, "secret", clock)

	token, err := c.Encode(ports.TokenClaims{"sub": "user-1"}, time.Minute)
	require.NoError(t, err)

	clock.t = clock.t.Add(2 * time.Minute)
	_, err = c.Decode(token)
	assert.ErrorIs(t, err, ports.ErrTokenExpired)
}

func TestJWTCodec_WrongSecret(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	token, err := newTestCodec(t, "secret-a", clock).Encode(ports.TokenClaims{"sub": "u"}, time.Hour)
	require.NoError(t, err)

	_, err = newTestCodec(t, "secret-b", clock).Decode(token)
	assert.ErrorIs(t, err, ports.ErrInvalidToken)
}

func TestJWTCodec_ExpiredWithWrongSecretIsInvalid(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	token, err := newTestCodec(t, "secret-a", clock).Encode(ports.TokenClaims{"sub": "u"}, time.Minute)
	require.NoError(t, err)

	clock.t = clock.t.Add(time.Hour)
	_, err = newTestCodec(t, "secret-b", clock).Decode(token)
	assert.ErrorIs(t, err, ports.ErrInvalidToken)
}

func TestJWTCodec_RejectsOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	c := newTestCodec(t, "secret", clock)
	exp := jwt.NewNumericDate(clock.t.Add(time.Hour))

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"sub": "u", "exp": exp}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = c.Decode(hs512)
	assert.ErrorIs(t, err, ports.ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u", "exp": exp}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = c.Decode(none)
	assert.ErrorIs(t, err, ports.ErrInvalidToken)
}

func TestJWTCodec_RejectsMissingExpiry(t *testing.T) {
	c := newTestCodec(t, "secret", &fakeClock{t: time.Now()})
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = c.Decode(token)
	assert.ErrorIs(t, err, ports.ErrInvalidToken)
}

func TestJWTCodec_Malformed(t *testing.T) {
	c := newTestCodec(t, "secret", &fakeClock{t: time.Now()})
	for _, tok := range []string{"", "abc", "a.b.c", "eyJhbGciOiJIUzI1NiJ9.e30."} {
		_, err := c.Decode(tok)
		assert.ErrorIs(t, err, ports.ErrInvalidToken, tok)
	}
}

func TestJWTCodec_TamperedPayload(t *testing.T) {
	c := newTestCodec(t, "secret", &fakeClock{t: time.Now()})
	token, err := c.Encode(ports.TokenClaims{"sub": "user-1"}, time.Hour)
	require.NoError(t, err)

	other, err := c.Encode(ports.TokenClaims{"sub": "user-2"}, time.Hour)
	require.NoError(t, err)

	// header.payload(user-2).signature(user-1)
	forged := token[:strings.Index(token, ".")] + other[strings.Index(other, "."):strings.LastIndex(other, ".")] + token[strings.LastIndex(token, "."):]
	_, err = c.Decode(forged)
	assert.ErrorIs(t, err, ports.ErrInvalidToken)
}

func TestNewJWTCodec_Validation(t *testing.T) {
	_, err := NewJWTCodec(Options{Algorithm: "HS256"})
	assert.Error(t, err)

	_, err = NewJWTCodec(Options{Secret: []byte("x"), Algorithm: "RS256"})
	assert.Error(t, err)

	c, err := NewJWTCodec(Options{Secret: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, "HS256", c.method.Alg())
}
