// Package services holds the client-side use cases: merging feed pages into
// the local store, reading the cached library and opening playback sessions.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/friendstories/internal/client/client"
	"github.com/dmitrijs2005/friendstories/internal/client/models"
	"github.com/dmitrijs2005/friendstories/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/friendstories/internal/common"
	"github.com/dmitrijs2005/friendstories/internal/dbx"
	"github.com/dmitrijs2005/friendstories/internal/logging"
)

// Metadata keys of the feed checkpoint.
const (
	KeyFeedCursor   = "feed.cursor"
	KeyFeedHasMore  = "feed.has_more"
	KeyFeedSyncedAt = "feed.synced_at"
)

// MaxSyncPages bounds SyncAll.
const MaxSyncPages = 1000

// Checkpoint is the persisted pagination state. Cursor is the page the next
// SyncNext will fetch; SyncedAt is zero before the first sync.
type Checkpoint struct {
	Cursor   int
	HasMore  bool
	SyncedAt time.Time
}

// SyncService merges feed pages into the local store. At most one sync runs
// at a time; overlapping calls fail fast with common.ErrSyncInProgress.
type SyncService struct {
	client client.Client
	db     *sql.DB
	repos  repomanager.RepositoryManager
	limit  int
	logger logging.Logger
	now    func() time.Time

	mu sync.Mutex
}

func NewSyncService(c client.Client, db *sql.DB, repos repomanager.RepositoryManager, limit int, logger logging.Logger) *SyncService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &SyncService{
		client: c,
		db:     db,
		repos:  repos,
		limit:  common.ClampLimit(limit),
		logger: logger.With("module", "sync"),
		now:    time.Now,
	}
}

func (s *SyncService) Limit() int { return s.limit }

// Sync fetches page cursor and merges it in one transaction. It returns the
// cursor for the following call and whether the server reported more pages.
// When the feed is exhausted the cursor is returned unchanged.
func (s *SyncService) Sync(ctx context.Context, cursor int) (int, bool, error) {
	if !s.mu.TryLock() {
		return cursor, false, common.ErrSyncInProgress
	}
	defer s.mu.Unlock()
	return s.sync(ctx, cursor)
}

// Refresh re-reads the first page.
func (s *SyncService) Refresh(ctx context.Context) (int, bool, error) {
	return s.Sync(ctx, common.DefaultPage)
}

// SyncNext continues from the persisted checkpoint.
func (s *SyncService) SyncNext(ctx context.Context) (int, bool, error) {
	if !s.mu.TryLock() {
		return 0, false, common.ErrSyncInProgress
	}
	defer s.mu.Unlock()

	cp, err := s.checkpoint(ctx)
	if err != nil {
		return 0, false, err
	}
	return s.sync(ctx, cp.Cursor)
}

// SyncAll walks the feed from the first page until the server reports no
// more pages. It returns the number of pages merged.
func (s *SyncService) SyncAll(ctx context.Context) (int, error) {
	if !s.mu.TryLock() {
		return 0, common.ErrSyncInProgress
	}
	defer s.mu.Unlock()

	cursor := common.DefaultPage
	for pages := 1; pages <= MaxSyncPages; pages++ {
		next, more, err := s.sync(ctx, cursor)
		if err != nil {
			return pages - 1, err
		}
		if !more {
			return pages, nil
		}
		cursor = next
	}
	s.logger.Warn(ctx, "sync stopped at page cap", "pages", MaxSyncPages)
	return MaxSyncPages, nil
}

func (s *SyncService) sync(ctx context.Context, cursor int) (int, bool, error) {
	cursor = max(cursor, common.DefaultPage)

	page, err := s.client.GetStories(ctx, cursor, s.limit)
	if err != nil {
		return cursor, false, fmt.Errorf("fetch page %d: %w", cursor, err)
	}

	next := cursor
	if page.HasMore {
		next = page.Page + 1
	}

	cp := Checkpoint{Cursor: next, HasMore: page.HasMore, SyncedAt: s.now().UTC()}
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.merge(ctx, tx, page.Data); err != nil {
			return err
		}
		return s.writeCheckpoint(ctx, tx, cp)
	})
	if err != nil {
		return cursor, false, fmt.Errorf("merge page %d: %w", cursor, err)
	}

	s.logger.Info(ctx, "page merged", "page", page.Page, "groups", len(page.Data), "has_more", page.HasMore)
	return next, page.HasMore, nil
}

func (s *SyncService) merge(ctx context.Context, tx dbx.DBTX, groups []models.FeedGroupDTO) error {
	users := s.repos.Users(tx)
	stories := s.repos.Stories(tx)

	for _, g := range groups {
		if err := users.Upsert(ctx, g.User.ToModel()); err != nil {
			return fmt.Errorf("upsert user %d: %w", g.User.ID, err)
		}
		for _, st := range g.Stories {
			if err := stories.Upsert(ctx, st.ToModel(g.User.ID)); err != nil {
				return fmt.Errorf("upsert story %d: %w", st.ID, err)
			}
		}
	}
	return nil
}

func (s *SyncService) writeCheckpoint(ctx context.Context, tx dbx.DBTX, cp Checkpoint) error {
	meta := s.repos.Metadata(tx)
	hasMore := int64(0)
	if cp.HasMore {
		hasMore = 1
	}
	if err := meta.SetInt(ctx, KeyFeedCursor, int64(cp.Cursor)); err != nil {
		return err
	}
	if err := meta.SetInt(ctx, KeyFeedHasMore, hasMore); err != nil {
		return err
	}
	return meta.SetInt(ctx, KeyFeedSyncedAt, cp.SyncedAt.UnixNano())
}

// Checkpoint reads the persisted pagination state. Before the first sync it
// points at page 1.
func (s *SyncService) Checkpoint(ctx context.Context) (Checkpoint, error) {
	return s.checkpoint(ctx)
}

func (s *SyncService) checkpoint(ctx context.Context) (Checkpoint, error) {
	meta := s.repos.Metadata(s.db)
	cp := Checkpoint{Cursor: common.DefaultPage}

	cursor, ok, err := meta.GetInt(ctx, KeyFeedCursor)
	if err != nil {
		return cp, fmt.Errorf("read checkpoint: %w", err)
	}
	if ok && cursor >= common.DefaultPage {
		cp.Cursor = int(cursor)
	}

	hasMore, _, err := meta.GetInt(ctx, KeyFeedHasMore)
	if err != nil {
		return cp, fmt.Errorf("read checkpoint: %w", err)
	}
	cp.HasMore = hasMore == 1

	syncedAt, ok, err := meta.GetInt(ctx, KeyFeedSyncedAt)
	if err != nil {
		return cp, fmt.Errorf("read checkpoint: %w", err)
	}
	if ok {
		cp.SyncedAt = time.Unix(0, syncedAt).UTC()
	}
	return cp, nil
}
