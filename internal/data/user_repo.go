package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/target/mmk-auth-api/internal/domain/model"
	apperrors "github.com/target/mmk-auth-api/internal/errors"
	"github.com/target/mmk-auth-api/internal/ports"
)

var _ ports.UserStore = (*UserRepo)(nil)

// ErrNestedTx is returned when WithTx is called on a repo already bound to a transaction.
var ErrNestedTx = errors.New("user repo is already inside a transaction")

const (
	userColumns = `id, email, hashed_password, created_at`

	userInsertQuery = `
		INSERT INTO users (id, email, hashed_password, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	userGetByIDQuery    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	userGetByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
)

// UserRepo provides database operations for users.
type UserRepo struct {
	db           DBTX
	conn         *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db, conn: db, timeProvider: RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider (useful for tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{db: db, conn: db, timeProvider: tp}
}

// WithTx runs fn with a repository bound to a single transaction.
func (r *UserRepo) WithTx(ctx context.Context, fn func(repo ports.UserRepository) error) error {
	if r.conn == nil {
		return ErrNestedTx
	}
	return WithTx(ctx, r.conn, nil, func(_ context.Context, tx DBTX) error {
		return fn(&UserRepo{db: tx, timeProvider: r.timeProvider})
	})
}

// Create inserts a user. ID and CreatedAt are assigned when empty. The email is
// stored normalized; a duplicate returns an apperrors Conflict on field "email".
func (r *UserRepo) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if user == nil {
		return nil, errors.New("user is required")
	}

	id := user.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.timeProvider.Now().UTC()
	}

	row := r.db.QueryRowContext(ctx, userInsertQuery,
		id,
		model.NormalizeEmail(user.Email),
		user.HashedPassword,
		createdAt,
	)
	out, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// GetByID retrieves a user by ID. A malformed ID is reported as not found.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, model.ErrEmptyUserID
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NotFound("user not found")
	}
	return r.getOne(ctx, userGetByIDQuery, "get user by id", id)
}

// GetByEmail retrieves a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, userGetByEmailQuery, "get user by email", model.NormalizeEmail(email))
}

func (r *UserRepo) getOne(ctx context.Context, query, op string, arg any) (*model.User, error) {
	out, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperrors.MapDBError(err))
	}
	return out, nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.HashedPassword, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
