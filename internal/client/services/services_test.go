package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/friendstories/internal/client/client"
	"github.com/dmitrijs2005/friendstories/internal/client/models"
	"github.com/dmitrijs2005/friendstories/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/friendstories/internal/client/repositories/sqlitetest"
	"github.com/dmitrijs2005/friendstories/internal/client/repositories/stories"
	"github.com/dmitrijs2005/friendstories/internal/dbx"
	"github.com/dmitrijs2005/friendstories/internal/logging"
)

func ptr[T any](v T) *T { return &v }

var base = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type fakeClient struct {
	client.Client

	getStories func(ctx context.Context, page, limit int) (*models.FeedPage, error)
	pages      []int
	limits     []int
}

func (f *fakeClient) GetStories(ctx context.Context, page, limit int) (*models.FeedPage, error) {
	f.pages = append(f.pages, page)
	f.limits = append(f.limits, limit)
	return f.getStories(ctx, page, limit)
}

func staticPage(p *models.FeedPage) func(context.Context, int, int) (*models.FeedPage, error) {
	return func(context.Context, int, int) (*models.FeedPage, error) { return p, nil }
}

type failingStories struct {
	stories.Repository
	failID int64
}

func (f failingStories) Upsert(ctx context.Context, s *models.Story) error {
	if s.ID == f.failID {
		return errors.New("disk full")
	}
	return f.Repository.Upsert(ctx, s)
}

type failingManager struct {
	repomanager.RepositoryManager
	failID int64
}

func (m failingManager) Stories(db dbx.DBTX) stories.Repository {
	return failingStories{Repository: m.RepositoryManager.Stories(db), failID: m.failID}
}

type env struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
	fc    *fakeClient
	sync  *SyncService
	lib   *Library
}

func newEnv(t *testing.T, limit int) *env {
	t.Helper()
	db := sqlitetest.Open(t)
	repos := repomanager.NewSQLiteRepositoryManager()
	fc := &fakeClient{}
	svc := NewSyncService(fc, db, repos, limit, logging.Nop{})
	svc.now = func() time.Time { return base }
	return &env{db: db, repos: repos, fc: fc, sync: svc, lib: NewLibrary(db, repos, nil)}
}

func (e *env) counts(t *testing.T) (int, int) {
	t.Helper()
	ctx := context.Background()
	us, err := e.repos.Users(e.db).GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	n, err := e.repos.Stories(e.db).Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	return len(us), n
}

func group(userID int64, name string, ss ...models.StoryDTO) models.FeedGroupDTO {
	return models.FeedGroupDTO{User: models.UserDTO{ID: userID, Username: name}, Stories: ss}
}

func story(id int64, at time.Time, caption *string) models.StoryDTO {
	return models.StoryDTO{ID: id, ImageURL: fmt.Sprintf("https://img/%d", id), Caption: caption, CreatedAt: at}
}
