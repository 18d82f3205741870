package stories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/friendstories/internal/client/models"
	"github.com/dmitrijs2005/friendstories/internal/common"
	"github.com/dmitrijs2005/friendstories/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
// Times are stored as unix nanoseconds in UTC.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectColumns = `SELECT id, user_id, image_url, caption, created_at, seen_at, is_liked FROM stories`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStory(row rowScanner) (*models.Story, error) {
	var (
		s         models.Story
		caption   sql.NullString
		createdAt int64
		seenAt    sql.NullInt64
		liked     sql.NullBool
	)
	if err := row.Scan(&s.ID, &s.UserID, &s.ImageURL, &caption, &createdAt, &seenAt, &liked); err != nil {
		return nil, err
	}
	if caption.Valid {
		s.Caption = &caption.String
	}
	s.CreatedAt = time.Unix(0, createdAt).UTC()
	if seenAt.Valid {
		t := time.Unix(0, seenAt.Int64).UTC()
		s.SeenAt = &t
	}
	if liked.Valid {
		s.IsLiked = &liked.Bool
	}
	return &s, nil
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]*models.Story, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select stories: %w", err)
	}
	defer rows.Close()

	var result []*models.Story
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan story row: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, s *models.Story) error {
	query := `INSERT INTO stories (id, user_id, image_url, caption, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id,
			image_url = excluded.image_url,
			caption = excluded.caption,
			created_at = excluded.created_at`

	_, err := r.db.ExecContext(ctx, query, s.ID, s.UserID, s.ImageURL, s.Caption, s.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to upsert story %d: %w", s.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Story, error) {
	s, err := scanStory(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("story %d: %w", id, common.ErrorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Story, error) {
	return r.list(ctx, selectColumns+` WHERE user_id = ? ORDER BY created_at, id`, userID)
}

func (r *SQLiteRepository) ListAll(ctx context.Context) ([]*models.Story, error) {
	return r.list(ctx, selectColumns+` ORDER BY created_at, id`)
}

func (r *SQLiteRepository) SetSeenAt(ctx context.Context, id int64, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE stories SET seen_at = ? WHERE id = ? AND seen_at IS NULL`, at.UTC().UnixNano(), id)
	if err != nil {
		return false, fmt.Errorf("failed to mark story %d seen: %w", id, err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return ra == 1, nil
}

func (r *SQLiteRepository) SetLiked(ctx context.Context, id int64, liked bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE stories SET is_liked = ? WHERE id = ?`, liked, id)
	if err != nil {
		return fmt.Errorf("failed to set like on story %d: %w", id, err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("story %d: %w", id, common.ErrorNotFound)
	}
	return nil
}

func (r *SQLiteRepository) ResetSeen(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE stories SET seen_at = NULL WHERE seen_at IS NOT NULL`)
	if err != nil {
		return 0, fmt.Errorf("failed to reset seen state: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count stories: %w", err)
	}
	return n, nil
}
