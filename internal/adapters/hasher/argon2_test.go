package hasher

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHasher() *Argon2 {
	return New(Options{Params: Params{Time: 1, MemoryKiB: 8 * 1024, Threads: 1, KeyLength: 32, SaltBytes: 16}, Workers: 2})
}

func TestArgon2_RoundTrip(t *testing.T) {
	h := newTestHasher()
	ctx := context.Background()

	encoded, err := h.Hash(ctx, "Secret123!")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=8192,t=1,p=1$"))

	ok, err := h.Verify(ctx, "Secret123!", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(ctx, "secret123!", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2_SaltsDiffer(t *testing.T) {
	h := newTestHasher()
	ctx := context.Background()

	a, err := h.Hash(ctx, "same")
	require.NoError(t, err)
	b, err := h.Hash(ctx, "same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestArgon2_VerifyUsesStoredParams(t *testing.T) {
	old := New(Options{Params: Params{Time: 2, MemoryKiB: 8 * 1024, Threads: 1, KeyLength: 16, SaltBytes: 8}})
	encoded, err := old.Hash(context.Background(), "pw")
	require.NoError(t, err)

	ok, err := newTestHasher().Verify(context.Background(), "pw", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgon2_MalformedHashIsMismatch(t *testing.T) {
	h := newTestHasher()
	cases := []string{
		"",
		"plaintext",
		"$2a$10$abcdefghijklmnopqrstuv",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$a2V5",
		"$argon2id$v=19$m=99999999,t=1,p=1$c2FsdA$a2V5",
	}
	for _, c := range cases {
		ok, err := h.Verify(context.Background(), "pw", c)
		assert.NoError(t, err, c)
		assert.False(t, ok, c)
	}
}

func TestArgon2_CanceledContext(t *testing.T) {
	h := New(Options{Params: Params{MemoryKiB: 8 * 1024, Threads: 1}, Workers: 1})
	require.True(t, h.sem.TryAcquire(1))
	defer h.sem.Release(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Hash(ctx, "pw")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestArgon2_Concurrent(t *testing.T) {
	h := newTestHasher()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			encoded, err := h.Hash(context.Background(), "pw")
			if assert.NoError(t, err) {
				ok, err := h.Verify(context.Background(), "pw", encoded)
				assert.NoError(t, err)
				assert.True(t, ok)
			}
		}()
	}
	wg.Wait()
}

func TestNew_ClampsToDecodableLimits(t *testing.T) {
	h := New(Options{Params: Params{Time: 1, MemoryKiB: MaxMemoryKiB + 1, Threads: 1, KeyLength: MaxKeyLength + 1, SaltBytes: 16}})
	assert.Equal(t, uint32(MaxMemoryKiB), h.params.MemoryKiB)
	assert.Equal(t, uint32(MaxKeyLength), h.params.KeyLength)
}

func TestArgon2_LongestKeyRoundTrips(t *testing.T) {
	h := New(Options{Params: Params{Time: 1, MemoryKiB: 8 * 1024, Threads: 1, KeyLength: MaxKeyLength * 2, SaltBytes: 16}})
	ctx := context.Background()

	encoded, err := h.Hash(ctx, "pw")
	require.NoError(t, err)

	ok, err := h.Verify(ctx, "pw", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}
