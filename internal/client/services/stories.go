package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/client/client"
	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/dmitrijs2005/storykeeper/internal/logging"
)

// StoryView is a remote story together with its local bookmark presence.
type StoryView struct {
	Story      models.Story
	Bookmarked bool
	// FromBookmark is set when the story could not be fetched and the saved
	// snapshot is shown instead.
	FromBookmark bool
}

type StoryService interface {
	List(ctx context.Context, q client.ListQuery) ([]StoryView, error)
	Detail(ctx context.Context, id string) (StoryView, error)
}

type storyService struct {
	gateway client.Gateway
	store   BookmarkStore
	log     logging.Logger
	timeout time.Duration
}

func NewStoryService(gateway client.Gateway, store BookmarkStore, log logging.Logger, timeout time.Duration) StoryService {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &storyService{gateway: gateway, store: store, log: log, timeout: timeout}
}

func (s *storyService) List(ctx context.Context, q client.ListQuery) ([]StoryView, error) {
	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	stories, err := s.gateway.ListStories(reqCtx, q)
	cancel()
	if err != nil {
		return nil, classify(err)
	}

	saved, err := s.store.ListBookmarks(ctx)
	if err != nil {
		return nil, classify(err)
	}
	ids := make(map[string]struct{}, len(saved))
	for _, rec := range saved {
		ids[rec.StoryID] = struct{}{}
	}

	views := make([]StoryView, 0, len(stories))
	for _, st := range stories {
		_, ok := ids[st.ID]
		views = append(views, StoryView{Story: st, Bookmarked: ok})
	}
	return views, nil
}

// Detail falls back to the bookmark snapshot when the network is down.
func (s *storyService) Detail(ctx context.Context, id string) (StoryView, error) {
	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	story, fetchErr := s.gateway.FetchStory(reqCtx, id)
	cancel()

	rec, err := s.store.GetBookmark(ctx, id)
	if err != nil {
		return StoryView{}, classify(err)
	}

	if fetchErr == nil {
		return StoryView{Story: story, Bookmarked: rec != nil}, nil
	}

	ce := classify(fetchErr)
	if ce.Kind == common.KindNetworkUnavailable && rec != nil {
		s.log.Info(ctx, "showing bookmarked snapshot", "story_id", id)
		return StoryView{Story: rec.Snapshot, Bookmarked: true, FromBookmark: true}, nil
	}
	return StoryView{}, ce
}
