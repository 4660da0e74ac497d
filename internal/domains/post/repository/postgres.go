package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/post"
)

// orderings whitelists the sortable columns; the request never reaches
// string interpolation with caller input.
var orderings = map[string]string{
	"created_at":  "p.created_at ASC",
	"-created_at": "p.created_at DESC",
	"updated_at":  "p.updated_at ASC",
	"-updated_at": "p.updated_at DESC",
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the PostgreSQL-backed post repository.
func NewPostgresRepository(pool *pgxpool.Pool) post.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, p *post.Post) error {
	query := `
		INSERT INTO posts (title, content, author_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		p.Title,
		p.Content,
		p.AuthorID,
		p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}

	// Denormalize the owner's name into the payload.
	err = r.pool.QueryRow(ctx, `SELECT full_name FROM authors WHERE id = $1`, p.AuthorID).Scan(&p.AuthorName)
	if err != nil {
		return fmt.Errorf("resolve author name: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	query := `
		SELECT p.id, p.title, p.content, p.author_id, a.full_name AS author_name,
		       p.status, p.created_at, p.updated_at
		FROM posts p
		JOIN authors a ON p.author_id = a.id
		WHERE p.id = $1
	`

	var p post.Post
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.AuthorName,
		&p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	return &p, nil
}

func (r *postgresRepository) Update(ctx context.Context, p *post.Post) error {
	query := `
		UPDATE posts
		SET title = $2, content = $3, status = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query, p.ID, p.Title, p.Content, p.Status).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return post.ErrPostNotFound
		}
		return fmt.Errorf("update post: %w", err)
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}

	return nil
}

func (r *postgresRepository) List(ctx context.Context, filter post.Filter) ([]post.Post, int, error) {
	whereClause, args := buildWhereClause(filter)

	countQuery := `SELECT COUNT(*) FROM posts p` + whereClause
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	orderBy, ok := orderings[filter.Ordering]
	if !ok {
		orderBy = orderings[post.DefaultOrdering]
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.title, p.content, p.author_id, a.full_name AS author_name,
		       p.status, p.created_at, p.updated_at
		FROM posts p
		JOIN authors a ON p.author_id = a.id
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, whereClause, orderBy, len(args)+1, len(args)+2)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]post.Post, 0, filter.Limit)
	for rows.Next() {
		var p post.Post
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.AuthorName,
			&p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}

	return posts, total, nil
}

// buildWhereClause assembles the exact-match filters. Both filters are
// intersected when present.
func buildWhereClause(filter post.Filter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argIndex))
		args = append(args, *filter.Status)
		argIndex++
	}

	if filter.AuthorID != nil {
		conditions = append(conditions, fmt.Sprintf("p.author_id = $%d", argIndex))
		args = append(args, *filter.AuthorID)
		argIndex++
	}

	if len(conditions) == 0 {
		return "", args
	}

	clause := " WHERE " + conditions[0]
	for _, cond := range conditions[1:] {
		clause += " AND " + cond
	}
	return clause, args
}
