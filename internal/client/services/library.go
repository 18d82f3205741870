package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/friendstories/internal/client/models"
	"github.com/dmitrijs2005/friendstories/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/friendstories/internal/logging"
)

// Library reads the cached users and stories and records local story state.
// It implements playback.Recorder.
type Library struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	logger logging.Logger
}

func NewLibrary(db *sql.DB, repos repomanager.RepositoryManager, logger logging.Logger) *Library {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Library{db: db, repos: repos, logger: logger.With("module", "library")}
}

// Users returns every cached user with its stories attached oldest first.
func (l *Library) Users(ctx context.Context) ([]*models.User, error) {
	users, err := l.repos.Users(l.db).GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	stories, err := l.repos.Stories(l.db).ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stories: %w", err)
	}

	byID := make(map[int64]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for _, s := range stories {
		if u, ok := byID[s.UserID]; ok {
			u.Stories = append(u.Stories, s)
		}
	}
	return users, nil
}

func (l *Library) MarkSeen(ctx context.Context, storyID int64, at time.Time) error {
	updated, err := l.repos.Stories(l.db).SetSeenAt(ctx, storyID, at)
	if err != nil {
		return fmt.Errorf("mark story %d seen: %w", storyID, err)
	}
	if updated {
		l.logger.Debug(ctx, "story seen", "story_id", storyID)
	}
	return nil
}

func (l *Library) SetLiked(ctx context.Context, storyID int64, liked bool) error {
	if err := l.repos.Stories(l.db).SetLiked(ctx, storyID, liked); err != nil {
		return fmt.Errorf("set story %d liked: %w", storyID, err)
	}
	return nil
}

// ResetSeen marks every cached story unseen again.
func (l *Library) ResetSeen(ctx context.Context) (int64, error) {
	n, err := l.repos.Stories(l.db).ResetSeen(ctx)
	if err != nil {
		return 0, fmt.Errorf("reset seen: %w", err)
	}
	l.logger.Info(ctx, "seen state reset", "stories", n)
	return n, nil
}
