// Package store is the local persistence layer of the client. It owns the
// bookmarks, the offline draft queue and the session metadata, all kept in
// one SQLite file.
//
// Every failure is reported as a *common.Error of kind StorageError wrapping
// the cause, so callers can still match sentinels such as common.ErrorNotFound
// with errors.Is. The store does not retry and takes no application locks:
// single statements are atomic in SQLite, and the only multi-key write (the
// session) runs in a transaction.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/client/migrations"
	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/client/repositories/bookmarks"
	"github.com/dmitrijs2005/storykeeper/internal/client/repositories/drafts"
	"github.com/dmitrijs2005/storykeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/dmitrijs2005/storykeeper/internal/dbx"
	"github.com/dmitrijs2005/storykeeper/internal/filex"

	_ "modernc.org/sqlite"
)

type Store struct {
	db        *sql.DB
	bookmarks bookmarks.Repository
	drafts    drafts.Repository
	metadata  metadata.Repository
	now       func() time.Time
}

// Open creates (if needed) and migrates the database at path. Writers wait
// for each other instead of failing with SQLITE_BUSY.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, storageError("cannot prepare database directory", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, storageError("cannot open database", err)
	}

	if err := migrations.Up(ctx, db); err != nil {
		_ = db.Close()
		return nil, storageError("cannot migrate database", err)
	}

	return New(db), nil
}

// New wraps an already migrated database.
func New(db *sql.DB) *Store {
	return &Store{
		db:        db,
		bookmarks: bookmarks.NewSQLiteRepository(db),
		drafts:    drafts.NewSQLiteRepository(db),
		metadata:  metadata.NewSQLiteRepository(db),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// DB exposes the underlying handle, mainly for resource bookkeeping.
func (s *Store) DB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.db
}

func (s *Store) Close() error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.db.Close(); err != nil {
		return storageError("cannot close database", err)
	}
	return nil
}

func (s *Store) ready() error {
	if s == nil || s.db == nil {
		return storageError("local storage is not available", common.ErrStoreNotInitialized)
	}
	return nil
}

func storageError(msg string, err error) error {
	return common.NewError(common.KindStorage, msg, err)
}

// PutBookmark saves a snapshot of story, replacing any earlier one.
func (s *Store) PutBookmark(ctx context.Context, story models.Story) (models.BookmarkRecord, error) {
	if err := s.ready(); err != nil {
		return models.BookmarkRecord{}, err
	}
	if story.ID == "" {
		return models.BookmarkRecord{}, common.NewError(common.KindValidation, "story has no id", nil)
	}

	rec := models.BookmarkRecord{StoryID: story.ID, Snapshot: story, SavedAt: s.now()}
	if err := s.bookmarks.Upsert(ctx, &rec); err != nil {
		return models.BookmarkRecord{}, storageError("cannot save bookmark", err)
	}
	return rec, nil
}

func (s *Store) RemoveBookmark(ctx context.Context, storyID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.bookmarks.Delete(ctx, storyID); err != nil {
		return storageError("cannot remove bookmark", err)
	}
	return nil
}

// GetBookmark returns nil without error when the story is not bookmarked.
func (s *Store) GetBookmark(ctx context.Context, storyID string) (*models.BookmarkRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rec, err := s.bookmarks.GetByID(ctx, storyID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("cannot read bookmark", err)
	}
	return rec, nil
}

func (s *Store) ListBookmarks(ctx context.Context) ([]models.BookmarkRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	list, err := s.bookmarks.List(ctx)
	if err != nil {
		return nil, storageError("cannot list bookmarks", err)
	}
	return list, nil
}

// PutOfflineDraft queues the draft as pending. A draft without a creation
// time is stamped with the current time.
func (s *Store) PutOfflineDraft(ctx context.Context, d models.StoryDraft) error {
	if err := s.ready(); err != nil {
		return err
	}
	if d.CreatedAt().IsZero() {
		d = models.RestoreStoryDraft(d.ID, d.Description, d.Photo, d.Lat, d.Lon, d.SyncState, s.now())
	}
	d.SyncState = models.SyncPending
	if err := s.drafts.Insert(ctx, d); err != nil {
		return storageError("cannot save draft for later", err)
	}
	return nil
}

func (s *Store) ListPendingDrafts(ctx context.Context) ([]models.OfflineQueueEntry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	list, err := s.drafts.ListByState(ctx, models.SyncPending)
	if err != nil {
		return nil, storageError("cannot list drafts", err)
	}
	return list, nil
}

// ListFailedDrafts returns drafts the server refused for good.
func (s *Store) ListFailedDrafts(ctx context.Context) ([]models.OfflineQueueEntry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	list, err := s.drafts.ListByState(ctx, models.SyncFailed)
	if err != nil {
		return nil, storageError("cannot list drafts", err)
	}
	return list, nil
}

// GetDraft returns nil without error when the draft does not exist.
func (s *Store) GetDraft(ctx context.Context, id string) (*models.OfflineQueueEntry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	e, err := s.drafts.GetByID(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("cannot read draft", err)
	}
	return e, nil
}

func (s *Store) MarkDraftSynced(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.drafts.UpdateState(ctx, id, models.SyncSynced); err != nil {
		return storageError(fmt.Sprintf("cannot mark draft %s synced", id), err)
	}
	return nil
}

// MarkDraftFailed records the final attempt and moves the draft to Failed in
// one transaction.
func (s *Store) MarkDraftFailed(ctx context.Context, id string, kind common.Kind) error {
	if err := s.ready(); err != nil {
		return err
	}
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := drafts.NewSQLiteRepository(tx)
		if err := repo.RecordAttempt(ctx, id, kind); err != nil {
			return err
		}
		return repo.UpdateState(ctx, id, models.SyncFailed)
	})
	if err != nil {
		return storageError(fmt.Sprintf("cannot mark draft %s failed", id), err)
	}
	return nil
}

func (s *Store) RecordDraftAttempt(ctx context.Context, id string, kind common.Kind) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.drafts.RecordAttempt(ctx, id, kind); err != nil {
		return storageError(fmt.Sprintf("cannot update draft %s", id), err)
	}
	return nil
}

func (s *Store) RemoveDraft(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.drafts.Delete(ctx, id); err != nil {
		return storageError("cannot remove draft", err)
	}
	return nil
}
