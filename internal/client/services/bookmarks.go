package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/client/client"
	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/dmitrijs2005/storykeeper/internal/logging"
)

// BookmarkStore is the part of the local store that holds bookmarks.
type BookmarkStore interface {
	PutBookmark(ctx context.Context, story models.Story) (models.BookmarkRecord, error)
	RemoveBookmark(ctx context.Context, storyID string) error
	GetBookmark(ctx context.Context, storyID string) (*models.BookmarkRecord, error)
	ListBookmarks(ctx context.Context) ([]models.BookmarkRecord, error)
}

// BookmarkService saves stories for offline viewing.
//
// Save and Remove report through the notifier exactly once per call and
// return the same result. IsBookmarked always reads the store.
type BookmarkService interface {
	Save(ctx context.Context, story models.Story) BookmarkResult
	SaveByID(ctx context.Context, storyID string) BookmarkResult
	Remove(ctx context.Context, storyID string) BookmarkResult
	IsBookmarked(ctx context.Context, storyID string) (bool, error)
	List(ctx context.Context) ([]models.BookmarkRecord, error)
}

type bookmarkService struct {
	store    BookmarkStore
	gateway  client.Gateway
	notifier Notifier
	log      logging.Logger
	timeout  time.Duration
}

func NewBookmarkService(store BookmarkStore, gateway client.Gateway, notifier Notifier,
	log logging.Logger, timeout time.Duration) BookmarkService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &bookmarkService{store: store, gateway: gateway, notifier: notifier, log: log, timeout: timeout}
}

func (s *bookmarkService) IsBookmarked(ctx context.Context, storyID string) (bool, error) {
	rec, err := s.store.GetBookmark(ctx, storyID)
	if err != nil {
		return false, classify(err)
	}
	return rec != nil, nil
}

func (s *bookmarkService) List(ctx context.Context) ([]models.BookmarkRecord, error) {
	list, err := s.store.ListBookmarks(ctx)
	if err != nil {
		return nil, classify(err)
	}
	return list, nil
}

func (s *bookmarkService) Save(ctx context.Context, story models.Story) BookmarkResult {
	res := s.apply(ctx, story.ID, BookmarkSaved, func() error {
		_, err := s.store.PutBookmark(ctx, story)
		return err
	})
	s.notifier.OnBookmarkToggled(ctx, res)
	return res
}

// SaveByID fetches the current version of the story before saving it.
func (s *bookmarkService) SaveByID(ctx context.Context, storyID string) BookmarkResult {
	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	story, err := s.gateway.FetchStory(reqCtx, storyID)
	cancel()
	if err != nil {
		res := s.failure(ctx, storyID, classify(err))
		s.notifier.OnBookmarkToggled(ctx, res)
		return res
	}
	return s.Save(ctx, story)
}

func (s *bookmarkService) Remove(ctx context.Context, storyID string) BookmarkResult {
	res := s.apply(ctx, storyID, BookmarkRemoved, func() error {
		return s.store.RemoveBookmark(ctx, storyID)
	})
	s.notifier.OnBookmarkToggled(ctx, res)
	return res
}

func (s *bookmarkService) apply(ctx context.Context, storyID string, action BookmarkAction, mutate func() error) BookmarkResult {
	if err := mutate(); err != nil {
		return s.failure(ctx, storyID, classify(err))
	}

	present, err := s.IsBookmarked(ctx, storyID)
	if err != nil {
		return s.failure(ctx, storyID, classify(err))
	}

	msg := "story saved for offline reading"
	if action == BookmarkRemoved {
		msg = "bookmark removed"
	}
	s.log.Info(ctx, "bookmark updated", "story_id", storyID, "action", action)
	return BookmarkResult{StoryID: storyID, Action: action, Bookmarked: present, Message: msg}
}

func (s *bookmarkService) failure(ctx context.Context, storyID string, ce *common.Error) BookmarkResult {
	if ce.Kind == common.KindStorage {
		s.log.Error(ctx, "bookmark storage failure", "story_id", storyID, "error", ce)
	} else {
		s.log.Warn(ctx, "bookmark failed", "story_id", storyID, "kind", ce.Kind, "error", ce)
	}
	present, _ := s.IsBookmarked(ctx, storyID)
	return BookmarkResult{StoryID: storyID, Action: BookmarkFailed, Bookmarked: present, Kind: ce.Kind, Message: ce.Message}
}
