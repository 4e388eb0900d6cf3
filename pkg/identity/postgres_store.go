package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

// PostgresStore implements Store on top of a pgx connection pool. The schema
// lives in the migrations directory; every Update is a single statement, so
// the per-call atomicity contract holds without explicit transactions.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a Store backed by the given connection pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	if db == nil {
		panic("identity: nil pgx pool")
	}
	return &PostgresStore{db: db}
}

const identityColumns = "id, email, password_hash, session_token, reset_token, created_at"

// Find returns the identity matching the filter.
func (s *PostgresStore) Find(ctx context.Context, filter Filter) (*Identity, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var (
		column string
		arg    any
	)
	switch {
	case filter.id != nil:
		column, arg = "id", *filter.id
	case filter.email != nil:
		column, arg = "email", *filter.email
	case filter.sessionToken != nil:
		column, arg = "session_token", *filter.sessionToken
	case filter.resetToken != nil:
		column, arg = "reset_token", *filter.resetToken
	}

	query := fmt.Sprintf("SELECT %s FROM identities WHERE %s = $1", identityColumns, column)

	i, err := scanIdentity(s.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrUnavailable, err)
	}
	return i, nil
}

// Insert persists a new identity, mapping unique violations to ErrEmailTaken.
func (s *PostgresStore) Insert(ctx context.Context, email string, passwordHash []byte) (*Identity, error) {
	query := `INSERT INTO identities (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + identityColumns

	i, err := scanIdentity(s.db.QueryRow(ctx, query, uuid.New(), email, passwordHash))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, errors.Join(ErrUnavailable, err)
	}
	return i, nil
}

// Update applies the changeset in a single UPDATE statement.
func (s *PostgresStore) Update(ctx context.Context, id uuid.UUID, changes Changes) error {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	args = append(args, id)

	if changes.PasswordHash != nil {
		args = append(args, changes.PasswordHash)
		sets = append(sets, fmt.Sprintf("password_hash = $%d", len(args)))
	}
	if v, ok := changes.SessionToken.Apply(); ok {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("session_token = $%d", len(args)))
	}
	if v, ok := changes.ResetToken.Apply(); ok {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("reset_token = $%d", len(args)))
	}

	if len(sets) == 0 {
		// Nothing to change; still report unknown ids and failed preconditions.
		i, err := s.Find(ctx, ByID(id))
		if err != nil {
			return err
		}
		if changes.IfResetToken != nil && (i.ResetToken == nil || *i.ResetToken != *changes.IfResetToken) {
			return ErrNotFound
		}
		return nil
	}

	where := "id = $1"
	if changes.IfResetToken != nil {
		args = append(args, *changes.IfResetToken)
		where += fmt.Sprintf(" AND reset_token = $%d", len(args))
	}

	query := fmt.Sprintf("UPDATE identities SET %s WHERE %s", strings.Join(sets, ", "), where)

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanIdentity(row pgx.Row) (*Identity, error) {
	var i Identity
	if err := row.Scan(&i.ID, &i.Email, &i.PasswordHash, &i.SessionToken, &i.ResetToken, &i.CreatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}
