package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/mmk-auth-api/internal/domain/model"
	apperrors "github.com/target/mmk-auth-api/internal/errors"
	"github.com/target/mmk-auth-api/internal/mocks"
	"github.com/target/mmk-auth-api/internal/ports"
	"go.uber.org/mock/gomock"
)

type authFixture struct {
	store  *mocks.MockUserStore
	repo   *mocks.MockUserRepository
	hasher *mocks.MockPasswordHasher
	codec  *mocks.MockTokenCodec
	svc    *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &authFixture{
		store:  mocks.NewMockUserStore(ctrl),
		repo:   mocks.NewMockUserRepository(ctrl),
		hasher: mocks.NewMockPasswordHasher(ctrl),
		codec:  mocks.NewMockTokenCodec(ctrl),
	}
	f.svc = NewAuthService(AuthServiceOptions{
		Users:  f.store,
		Hasher: f.hasher,
		Tokens: TokenIssuer{Codec: f.codec, TTL: time.Hour},
	})
	return f
}

// expectTx runs the transaction body against the repository mock and returns its error.
func (f *authFixture) expectTx() {
	f.store.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fn func(ports.UserRepository) error) error {
			return fn(f.repo)
		})
}

var creds = model.Credentials{Email: " A@B.com", Password: "Secret123!"}

func TestNewAuthService_PanicsWithoutDeps(t *testing.T) {
	assert.Panics(t, func() { NewAuthService(AuthServiceOptions{}) })
}

func TestSignUp_Success(t *testing.T) {
	f := newAuthFixture(t)
	created := &model.User{ID: "u-1", Email: "a@b.com", HashedPassword: "h"}

	f.hasher.EXPECT().Hash(gomock.Any(), "Secret123!").Return("h", nil)
	f.expectTx()
	f.repo.EXPECT().GetByEmail(gomock.Any(), "a@b.com").Return(nil, apperrors.NotFound("user not found"))
	f.repo.EXPECT().Create(gomock.Any(), &model.User{Email: "a@b.com", HashedPassword: "h"}).Return(created, nil)
	f.codec.EXPECT().Encode(ports.TokenClaims{ports.ClaimSubject: "u-1"}, time.Hour).Return("tok", nil)

	res, err := f.svc.SignUp(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, created, res.User)
	assert.Equal(t, "tok", res.Token)
}

func TestSignUp_EmailTakenWritesNothing(t *testing.T) {
	f := newAuthFixture(t)

	f.hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("h", nil)
	f.expectTx()
	f.repo.EXPECT().GetByEmail(gomock.Any(), "a@b.com").Return(&model.User{ID: "u-0"}, nil)

	_, err := f.svc.SignUp(context.Background(), creds)
	assert.ErrorIs(t, err, apperrors.UserAlreadyExists())
}

func TestSignUp_UniqueViolationOnInsert(t *testing.T) {
	f := newAuthFixture(t)

	f.hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("h", nil)
	f.expectTx()
	f.repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(nil, apperrors.NotFound("user not found"))
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, &apperrors.AppError{Code: apperrors.ErrCodeConflict, Field: "email"})

	_, err := f.svc.SignUp(context.Background(), creds)
	assert.ErrorIs(t, err, apperrors.UserAlreadyExists())
	assert.Equal(t, 40001, apperrors.InternalCode(err))
}

func TestSignUp_InvalidInput(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.SignUp(context.Background(), model.Credentials{Email: "not-an-email", Password: "x"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "email", apperrors.GetField(err))

	_, err = f.svc.SignUp(context.Background(), model.Credentials{Email: "a@b.com"})
	assert.Equal(t, "password", apperrors.GetField(err))
}

func TestSignUp_HashFailureIsInternal(t *testing.T) {
	f := newAuthFixture(t)
	f.hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("", context.Canceled)

	_, err := f.svc.SignUp(context.Background(), creds)
	assert.Equal(t, 500, apperrors.HTTPStatus(err))
}

func TestSignIn_Success(t *testing.T) {
	f := newAuthFixture(t)
	user := &model.User{ID: "u-1", Email: "a@b.com", HashedPassword: "h"}

	f.expectTx()
	f.repo.EXPECT().GetByEmail(gomock.Any(), "a@b.com").Return(user, nil)
	f.hasher.EXPECT().Verify(gomock.Any(), "Secret123!", "h").Return(true, nil)
	f.codec.EXPECT().Encode(ports.TokenClaims{ports.ClaimSubject: "u-1"}, time.Hour).Return("tok", nil)

	res, err := f.svc.SignIn(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, "tok", res.Token)
}

func TestSignIn_UnknownEmailAndWrongPasswordAreIdentical(t *testing.T) {
	unknown := newAuthFixture(t)
	unknown.expectTx()
	unknown.repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(nil, apperrors.NotFound("user not found"))
	unknown.hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("dummy", nil)
	unknown.hasher.EXPECT().Verify(gomock.Any(), "Secret123!", "dummy").Return(false, nil)
	_, errUnknown := unknown.svc.SignIn(context.Background(), creds)

	wrong := newAuthFixture(t)
	wrong.expectTx()
	wrong.repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(&model.User{ID: "u-1", HashedPassword: "h"}, nil)
	wrong.hasher.EXPECT().Verify(gomock.Any(), gomock.Any(), "h").Return(false, nil)
	_, errWrong := wrong.svc.SignIn(context.Background(), creds)

	require.ErrorIs(t, errUnknown, apperrors.InvalidCredentials())
	require.ErrorIs(t, errWrong, apperrors.InvalidCredentials())
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
	assert.Equal(t, apperrors.Detail(errUnknown), apperrors.Detail(errWrong))
}

func TestSignIn_UnknownEmailStillVerifies(t *testing.T) {
	f := newAuthFixture(t)
	f.store.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fn func(ports.UserRepository) error) error { return fn(f.repo) },
	).Times(2)
	f.repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(nil, apperrors.NotFound("user not found")).Times(2)
	f.hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("dummy", nil).Times(1)
	f.hasher.EXPECT().Verify(gomock.Any(), gomock.Any(), "dummy").Return(false, nil).Times(2)

	for range 2 {
		_, err := f.svc.SignIn(context.Background(), creds)
		require.ErrorIs(t, err, apperrors.InvalidCredentials())
	}
}

func TestSignIn_MalformedCredentialsAreInvalidCredentials(t *testing.T) {
	tests := []struct {
		name  string
		creds model.Credentials
	}{
		{"not an email", model.Credentials{Email: "nobody", Password: "x"}},
		{"empty password", model.Credentials{Email: "a@b.com", Password: ""}},
		{"empty body", model.Credentials{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			_, err := f.svc.SignIn(context.Background(), tt.creds)
			require.ErrorIs(t, err, apperrors.InvalidCredentials())
			assert.Equal(t, 40101, apperrors.InternalCode(err))
		})
	}
}

func TestSignIn_StoreFailureIsNotCredentials(t *testing.T) {
	f := newAuthFixture(t)
	f.expectTx()
	f.repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err := f.svc.SignIn(context.Background(), creds)
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.InvalidCredentials())
	assert.Equal(t, 500, apperrors.HTTPStatus(err))
}
