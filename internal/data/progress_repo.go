package data

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	apperrors "github.com/target/mmk-auth-api/internal/errors"
	"github.com/target/mmk-auth-api/internal/ports"
)

var _ ports.ProgressUpdater = (*FlagUpdater)(nil)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// FlagUpdater sets boolean progress columns on one table keyed by a UUID id column.
type FlagUpdater struct {
	db    *sql.DB
	table string
}

// NewFlagUpdater returns an updater for table. The name must be a plain identifier.
func NewFlagUpdater(db *sql.DB, table string) (*FlagUpdater, error) {
	if !identRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &FlagUpdater{db: db, table: table}, nil
}

// Table returns the table this updater writes to.
func (u *FlagUpdater) Table() string { return u.table }

// SetFlag runs `UPDATE <table> SET <field> = value WHERE id = id` in its own transaction.
// A missing row is reported as apperrors NotFound.
func (u *FlagUpdater) SetFlag(ctx context.Context, id uuid.UUID, field string, value bool) error {
	if !identRe.MatchString(field) {
		return apperrors.ValidationField("progress_field", fmt.Sprintf("invalid field name %q", field))
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE id = $2`,
		pgx.Identifier{u.table}.Sanitize(),
		pgx.Identifier{field}.Sanitize(),
	)

	return WithTx(ctx, u.db, nil, func(ctx context.Context, tx DBTX) error {
		res, err := tx.ExecContext(ctx, query, value, id)
		if err != nil {
			return fmt.Errorf("set %s.%s: %w", u.table, field, apperrors.MapDBError(err))
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("set %s.%s rows affected: %w", u.table, field, err)
		}
		if n == 0 {
			return apperrors.NotFoundf("%s %s not found", u.table, id)
		}
		return nil
	})
}

// BuildProgressRegistry creates one FlagUpdater per entity type from an
// entity_type → table mapping.
func BuildProgressRegistry(db *sql.DB, tables map[string]string) (map[string]ports.ProgressUpdater, error) {
	out := make(map[string]ports.ProgressUpdater, len(tables))
	for entityType, table := range tables {
		u, err := NewFlagUpdater(db, table)
		if err != nil {
			return nil, fmt.Errorf("progress entity %q: %w", entityType, err)
		}
		out[entityType] = u
	}
	return out, nil
}
