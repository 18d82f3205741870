package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/friendstories/internal/client/models"
	"github.com/dmitrijs2005/friendstories/internal/common"
	"github.com/dmitrijs2005/friendstories/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, u *models.User) error {
	query := `INSERT INTO users (id, username, avatar_url) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET username = excluded.username, avatar_url = excluded.avatar_url`

	if _, err := r.db.ExecContext(ctx, query, u.ID, u.Username, u.AvatarURL); err != nil {
		return fmt.Errorf("failed to upsert user %d: %w", u.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT id, username, avatar_url FROM users WHERE id = ?`

	u := &models.User{}
	var avatar sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Username, &avatar)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, common.ErrorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	if avatar.Valid {
		u.AvatarURL = &avatar.String
	}
	return u, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	query := `SELECT id, username, avatar_url FROM users ORDER BY username, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select users: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		u := &models.User{}
		var avatar sql.NullString
		if err := rows.Scan(&u.ID, &u.Username, &avatar); err != nil {
			return nil, err
		}
		if avatar.Valid {
			u.AvatarURL = &avatar.String
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
