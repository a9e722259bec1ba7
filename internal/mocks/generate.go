// Package mocks provides mock implementations of the ports interfaces for unit tests.
//
// This package uses go.uber.org/mock (gomock). The mocks are generated using
// go:generate directives; to regenerate after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	users := mocks.NewMockUserStore(ctrl)
//	users.EXPECT().GetByEmail(gomock.Any(), "a@b.com").Return(user, nil)
package mocks

// Persistence: Create, GetByEmail, GetByID and (store only) WithTx.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_store_mock.go github.com/target/mmk-auth-api/internal/ports UserStore
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_repository_mock.go github.com/target/mmk-auth-api/internal/ports UserRepository

// Credentials: Hash, Verify, Encode, Decode.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=password_hasher_mock.go github.com/target/mmk-auth-api/internal/ports PasswordHasher
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=token_codec_mock.go github.com/target/mmk-auth-api/internal/ports TokenCodec

// Task runtime.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=task_broker_mock.go github.com/target/mmk-auth-api/internal/ports TaskBroker
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=result_backend_mock.go github.com/target/mmk-auth-api/internal/ports ResultBackend
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=task_middleware_mock.go github.com/target/mmk-auth-api/internal/ports TaskMiddleware
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=progress_updater_mock.go github.com/target/mmk-auth-api/internal/ports ProgressUpdater
