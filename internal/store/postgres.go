package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/url-shortener/internal/shortener"
)

const linksTable = "short_links"

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
type PostgresStore struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

// NewPostgresStore creates a new PostgreSQL-backed link store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Put inserts the link. The code column is the primary key, so a taken code
// leaves the row untouched and is reported as ErrDuplicateCode.
func (p *PostgresStore) Put(ctx context.Context, link *shortener.ShortLink) error {
	query, args, err := p.sb.
		Insert(linksTable).
		Columns("code", "long_url", "created_at").
		Values(string(link.Code), link.LongURL, link.CreatedAt).
		Suffix("ON CONFLICT (code) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := p.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return shortener.ErrDuplicateCode
		}

		return fmt.Errorf("insert link: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return shortener.ErrDuplicateCode
	}

	return nil
}

func (p *PostgresStore) Get(ctx context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	query, args, err := p.sb.
		Select("code", "long_url", "created_at").
		From(linksTable).
		Where(squirrel.Eq{"code": string(code)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var (
		link    shortener.ShortLink
		rawCode string
	)

	err = p.pool.QueryRow(ctx, query, args...).Scan(&rawCode, &link.LongURL, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, fmt.Errorf("query link: %w", err)
	}

	link.Code = shortener.Code(rawCode)

	return &link, nil
}

var _ shortener.Repository = (*PostgresStore)(nil)
