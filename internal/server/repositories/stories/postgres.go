// Package stories provides the PostgreSQL-backed story repository and the
// feed queries built on it.
package stories

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/friendstories/internal/dbx"
	"github.com/dmitrijs2005/friendstories/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) PageAuthors(ctx context.Context, limit, offset int) ([]models.User, error) {
	query := `
		SELECT u.id, u.username, u.avatar_url
		FROM users u
		JOIN stories s ON s.user_id = u.id
		GROUP BY u.id
		ORDER BY MAX(s.created_at) DESC, u.id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.User, 0, limit)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.AvatarURL); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) CountAuthors(ctx context.Context) (int, error) {
	query := `SELECT COUNT(DISTINCT user_id) FROM stories`

	var n int
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]models.FeedStory, error) {
	query := `
		SELECT id, image_url, caption, created_at
		FROM stories
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.FeedStory, 0)
	for rows.Next() {
		var s models.FeedStory
		if err := rows.Scan(&s.ID, &s.ImageURL, &s.Caption, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, userID int64, imageURL string, caption *string) (*models.Story, error) {
	query := `
		INSERT INTO stories (user_id, image_url, caption)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, image_url, caption, created_at
	`
	s := &models.Story{}
	err := r.db.QueryRowContext(ctx, query, userID, imageURL, caption).
		Scan(&s.ID, &s.UserID, &s.ImageURL, &s.Caption, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}
