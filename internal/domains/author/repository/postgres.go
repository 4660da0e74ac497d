package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/author"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/logger"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const pgUniqueViolation = "23505"

// authorCacheTTL bounds staleness of the point-read cache used by the
// request authenticator. Writes invalidate eagerly; the TTL is a
// backstop.
const authorCacheTTL = 5 * time.Minute

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository creates the PostgreSQL-backed author
// repository. cache may be nil to disable the read cache.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) author.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func authorCacheKey(id uuid.UUID) string {
	return "author:" + id.String()
}

// cachedAuthor is the cache representation of an author. The entity's
// json tags shape the API payload and hide the password hash, so the
// cache needs its own type that round-trips every persisted column.
type cachedAuthor struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	FullName     string    `json:"full_name"`
	Description  *string   `json:"description"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toCachedAuthor(a *author.Author) cachedAuthor {
	return cachedAuthor{
		ID:           a.ID,
		Username:     a.Username,
		PasswordHash: a.PasswordHash,
		FullName:     a.FullName,
		Description:  a.Description,
		Active:       a.Active,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (c cachedAuthor) toEntity() *author.Author {
	return &author.Author{
		ID:           c.ID,
		Username:     c.Username,
		PasswordHash: c.PasswordHash,
		FullName:     c.FullName,
		Description:  c.Description,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) error {
	query := `
		INSERT INTO authors (username, password_hash, full_name, description, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		a.Username,
		a.PasswordHash,
		a.FullName,
		a.Description,
		a.Active,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, "username") {
			return author.ErrUsernameAlreadyExists
		}
		return fmt.Errorf("create author: %w", err)
	}

	return nil
}

// FindByID is a cache-aside point read. The request authenticator hits
// this once per authenticated request, so cache misses fall through to
// a single-row select.
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	if r.cache != nil {
		var cached cachedAuthor
		found, err := r.cache.Get(ctx, authorCacheKey(id), &cached)
		if err != nil {
			logger.Warn("author cache read failed", err)
		} else if found {
			return cached.toEntity(), nil
		}
	}

	query := `
		SELECT id, username, password_hash, full_name, description, active, created_at, updated_at
		FROM authors
		WHERE id = $1
	`

	a, err := r.scanAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	r.cacheAuthor(ctx, a)

	return a, nil
}

func (r *postgresRepository) cacheAuthor(ctx context.Context, a *author.Author) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, authorCacheKey(a.ID), toCachedAuthor(a), authorCacheTTL); err != nil {
		logger.Warn("author cache write failed", err)
	}
}

func (r *postgresRepository) FindByUsername(ctx context.Context, username string) (*author.Author, error) {
	query := `
		SELECT id, username, password_hash, full_name, description, active, created_at, updated_at
		FROM authors
		WHERE username = $1
	`

	return r.scanAuthor(r.pool.QueryRow(ctx, query, username))
}

func (r *postgresRepository) Update(ctx context.Context, a *author.Author) error {
	query := `
		UPDATE authors
		SET username = $2, password_hash = $3, full_name = $4, description = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		a.ID,
		a.Username,
		a.PasswordHash,
		a.FullName,
		a.Description,
	).Scan(&a.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return author.ErrAuthorNotFound
		}
		if isUniqueViolation(err, "username") {
			return author.ErrUsernameAlreadyExists
		}
		return fmt.Errorf("update author: %w", err)
	}

	r.invalidate(ctx, a.ID)
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Owned posts are removed by the ON DELETE CASCADE constraint.
	tag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) List(ctx context.Context, limit, offset int) ([]author.Author, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count authors: %w", err)
	}

	query := `
		SELECT id, username, password_hash, full_name, description, active, created_at, updated_at
		FROM authors
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]author.Author, 0, limit)
	for rows.Next() {
		var a author.Author
		if err := rows.Scan(
			&a.ID, &a.Username, &a.PasswordHash, &a.FullName,
			&a.Description, &a.Active, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list authors: %w", err)
	}

	return authors, total, nil
}

func (r *postgresRepository) scanAuthor(row pgx.Row) (*author.Author, error) {
	var a author.Author
	err := row.Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.FullName,
		&a.Description, &a.Active, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("scan author: %w", err)
	}
	return &a, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, authorCacheKey(id)); err != nil {
		logger.Warn("author cache invalidation failed", err)
	}
}

func isUniqueViolation(err error, constraintPart string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraintPart == "" || strings.Contains(pgErr.ConstraintName, constraintPart)
}
