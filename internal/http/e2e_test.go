package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/target/mmk-auth-api/internal/adapters/hasher"
	"github.com/target/mmk-auth-api/internal/adapters/tokens"
	"github.com/target/mmk-auth-api/internal/domain/model"
	apperrors "github.com/target/mmk-auth-api/internal/errors"
	"github.com/target/mmk-auth-api/internal/ports"
	"github.com/target/mmk-auth-api/internal/service"
)

const testSecret = "e2e-secret"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memUsers is an in-memory ports.UserStore. WithTx runs fn against the same
// store under the lock, which is enough for sequential tests.
type memUsers struct {
	mu   sync.Mutex
	byID map[string]*model.User
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*model.User{}} }

func (m *memUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperrors.NotFound("user not found")
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	email = model.NormalizeEmail(email)
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (m *memUsers) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if _, err := m.GetByEmail(ctx, user.Email); err == nil {
		return nil, &apperrors.AppError{Code: apperrors.ErrCodeConflict, Message: "exists", Field: "email"}
	}
	u := *user
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	m.byID[u.ID] = &u
	cp := u
	return &cp, nil
}

func (m *memUsers) WithTx(_ context.Context, fn func(repo ports.UserRepository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m)
}

func (m *memUsers) delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
}

type testStack struct {
	router http.Handler
	users  *memUsers
}

func newTestStack(t *testing.T, now func() time.Time) *testStack {
	t.Helper()
	codec, err := tokens.NewJWTCodec(tokens.Options{Secret: []byte(testSecret), Algorithm: "HS256", Now: now})
	if err != nil {
		t.Fatalf("NewJWTCodec: %v", err)
	}
	users := newMemUsers()
	h := hasher.New(hasher.Options{Params: hasher.Params{Time: 1, MemoryKiB: 64, Threads: 1, KeyLength: 16, SaltBytes: 8}, Workers: 2})

	auth := service.NewAuthService(service.AuthServiceOptions{
		Users:  users,
		Hasher: h,
		Tokens: service.TokenIssuer{Codec: codec, TTL: time.Hour},
	})
	router := NewRouter(RouterServices{
		Auth:          auth,
		Authenticator: service.NewAuthenticator(service.NewUserService(users), codec),
		Cookies:       CookieConfig{MaxAge: time.Hour},
		Logger:        discardLogger(),
	})
	return &testStack{router: router, users: users}
}

func (s *testStack) signUp(t *testing.T, email string) string {
	t.Helper()
	res := apitest.New().
		Handler(s.router).
		Post("/auth/signup").
		JSON(`{"email":"` + email + `","password":"Secret123!"}`).
		Expect(t).
		Status(http.StatusCreated).
		CookiePresent(AccessTokenCookie).
		End()
	for _, c := range res.Response.Cookies() {
		if c.Name == AccessTokenCookie {
			return c.Value
		}
	}
	t.Fatal("signup did not set the session cookie")
	return ""
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestStack(t, nil)
	token := s.signUp(t, "User@Example.com ")

	apitest.New().
		Handler(s.router).
		Get("/user/me").
		Cookie(AccessTokenCookie, token).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.email", "user@example.com")).
		Assert(jsonpath.Present("$.id")).
		Assert(jsonpath.NotPresent("$.hashed_password")).
		End()

	apitest.New().
		Handler(s.router).
		Post("/auth/signout").
		Expect(t).
		Status(http.StatusOK).
		Body(`{"message":"Signed out successfully"}`).
		Cookies(apitest.NewCookie(AccessTokenCookie).Value("").MaxAge(-1)).
		End()

	// The signed-out browser no longer sends the cookie.
	apitest.New().
		Handler(s.router).
		Get("/user/me").
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.internal_code", float64(40102))).
		Assert(jsonpath.Equal("$.status_code", float64(401))).
		End()
}

func TestSignUpDuplicateEmail(t *testing.T) {
	s := newTestStack(t, nil)
	s.signUp(t, "dup@example.com")

	apitest.New().
		Handler(s.router).
		Post("/auth/signup").
		JSON(`{"email":"DUP@example.com","password":"Other123!"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.internal_code", float64(40001))).
		Assert(jsonpath.Equal("$.detail", "User with this email already exists")).
		CookieNotPresent(AccessTokenCookie).
		End()
}

func TestSignInFlow(t *testing.T) {
	s := newTestStack(t, nil)
	s.signUp(t, "in@example.com")

	apitest.New().
		Handler(s.router).
		Post("/auth/signin").
		JSON(`{"email":"in@example.com","password":"Secret123!","remember":true}`).
		Expect(t).
		Status(http.StatusOK).
		CookiePresent(AccessTokenCookie).
		End()

	for _, body := range []string{
		`{"email":"in@example.com","password":"wrong"}`,
		`{"email":"nobody@example.com","password":"Secret123!"}`,
		`{"email":"nobody","password":"x"}`,
		`{"email":"in@example.com","password":""}`,
		`{}`,
	} {
		apitest.New().
			Handler(s.router).
			Post("/auth/signin").
			JSON(body).
			Expect(t).
			Status(http.StatusUnauthorized).
			Assert(jsonpath.Equal("$.internal_code", float64(40101))).
			Assert(jsonpath.Equal("$.detail", "Invalid email or password")).
			End()
	}
}

func TestSignUpValidation(t *testing.T) {
	s := newTestStack(t, nil)

	apitest.New().
		Handler(s.router).
		Post("/auth/signup").
		JSON(`{"email":"not-an-email","password":"x"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.internal_code", float64(40000))).
		End()
}

func TestMe_RejectedTokens(t *testing.T) {
	s := newTestStack(t, nil)
	token := s.signUp(t, "me@example.com")

	t.Run("tampered", func(t *testing.T) {
		parts := strings.Split(token, ".")
		parts[2] = strings.Repeat("A", len(parts[2]))
		apitest.New().
			Handler(s.router).
			Get("/user/me").
			Cookie(AccessTokenCookie, strings.Join(parts, ".")).
			Expect(t).
			Status(http.StatusUnauthorized).
			Assert(jsonpath.Equal("$.internal_code", float64(40103))).
			End()
	})

	t.Run("garbage", func(t *testing.T) {
		apitest.New().
			Handler(s.router).
			Get("/user/me").
			Cookie(AccessTokenCookie, "not-a-token").
			Expect(t).
			Status(http.StatusUnauthorized).
			Assert(jsonpath.Equal("$.internal_code", float64(40103))).
			End()
	})

	t.Run("user deleted", func(t *testing.T) {
		other := newTestStack(t, nil)
		tok := other.signUp(t, "gone@example.com")
		for id := range other.users.byID {
			other.users.delete(id)
		}
		apitest.New().
			Handler(other.router).
			Get("/user/me").
			Cookie(AccessTokenCookie, tok).
			Expect(t).
			Status(http.StatusUnauthorized).
			Assert(jsonpath.Equal("$.internal_code", float64(40105))).
			End()
	})
}

func TestMe_ExpiredToken(t *testing.T) {
	var mu sync.Mutex
	now := time.Now()
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	s := newTestStack(t, clock)
	token := s.signUp(t, "late@example.com")

	mu.Lock()
	now = now.Add(2 * time.Hour)
	mu.Unlock()

	apitest.New().
		Handler(s.router).
		Get("/user/me").
		Cookie(AccessTokenCookie, token).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.internal_code", float64(40104))).
		Assert(jsonpath.Equal("$.detail", "Token has expired")).
		End()
}
