package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/storykeeper/internal/client/client"
	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/client/store"
	"github.com/stretchr/testify/require"
)

// fakeGateway implements client.Gateway for unit tests. Hooks are optional;
// nil hooks succeed with zero values.
type fakeGateway struct {
	mu sync.Mutex

	SubmitFn func(ctx context.Context, d models.StoryDraft) (client.SubmitResponse, error)
	FetchFn  func(ctx context.Context, id string) (models.Story, error)
	ListFn   func(ctx context.Context, q client.ListQuery) ([]models.Story, error)
	LoginFn  func(ctx context.Context, email, password string) (client.LoginResult, error)

	RegisterErr error
	PingErr     error

	SubmitCalls   int
	Submitted     []models.StoryDraft
	RegisterCalls int
	LastRegister  [3]string
}

func (f *fakeGateway) SubmitStory(ctx context.Context, d models.StoryDraft) (client.SubmitResponse, error) {
	f.mu.Lock()
	f.SubmitCalls++
	f.Submitted = append(f.Submitted, d)
	fn := f.SubmitFn
	f.mu.Unlock()
	if fn == nil {
		return client.SubmitResponse{Message: "Story created successfully"}, nil
	}
	return fn(ctx, d)
}

func (f *fakeGateway) FetchStory(ctx context.Context, id string) (models.Story, error) {
	if f.FetchFn == nil {
		return models.Story{ID: id, Name: "story " + id}, nil
	}
	return f.FetchFn(ctx, id)
}

func (f *fakeGateway) ListStories(ctx context.Context, q client.ListQuery) ([]models.Story, error) {
	if f.ListFn == nil {
		return []models.Story{}, nil
	}
	return f.ListFn(ctx, q)
}

func (f *fakeGateway) Login(ctx context.Context, email, password string) (client.LoginResult, error) {
	if f.LoginFn == nil {
		return client.LoginResult{UserID: "u1", Name: "user", Token: "token"}, nil
	}
	return f.LoginFn(ctx, email, password)
}

func (f *fakeGateway) Register(_ context.Context, name, email, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RegisterCalls++
	f.LastRegister = [3]string{name, email, password}
	return f.RegisterErr
}

func (f *fakeGateway) Ping(context.Context) error { return f.PingErr }

func (f *fakeGateway) submitCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.SubmitCalls
}

// recordingNotifier keeps every notification it receives.
type recordingNotifier struct {
	mu        sync.Mutex
	submits   []SubmissionResult
	bookmarks []BookmarkResult
	onSubmit  func(SubmissionResult)
}

func (n *recordingNotifier) OnSubmitResult(_ context.Context, res SubmissionResult) {
	n.mu.Lock()
	n.submits = append(n.submits, res)
	hook := n.onSubmit
	n.mu.Unlock()
	if hook != nil {
		hook(res)
	}
}

func (n *recordingNotifier) OnBookmarkToggled(_ context.Context, res BookmarkResult) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.bookmarks = append(n.bookmarks, res)
}

func (n *recordingNotifier) Submits() []SubmissionResult {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]SubmissionResult(nil), n.submits...)
}

func (n *recordingNotifier) Bookmarks() []BookmarkResult {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]BookmarkResult(nil), n.bookmarks...)
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "stories.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}
