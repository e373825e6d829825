package client

import (
	"context"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
)

// Gateway is the remote story API.
type Gateway interface {
	// SubmitStory commits a draft remotely.
	SubmitStory(ctx context.Context, draft models.StoryDraft) (SubmitResponse, error)
	// FetchStory returns one story by id.
	FetchStory(ctx context.Context, id string) (models.Story, error)
	// ListStories returns one page of stories.
	ListStories(ctx context.Context, q ListQuery) ([]models.Story, error)
	Login(ctx context.Context, email, password string) (LoginResult, error)
	Register(ctx context.Context, name, email, password string) error
	// Ping succeeds when the API host answers at all.
	Ping(ctx context.Context) error
}

// TokenProvider supplies the bearer token for outbound requests. It returns an
// error matching common.ErrNoToken when nobody is signed in.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// SubmitResponse is the server acknowledgement of a submitted story.
type SubmitResponse struct {
	Message string
	// Guest is true when the story went to the guest endpoint.
	Guest bool
}

// ListQuery selects a page of stories. Zero values are omitted.
type ListQuery struct {
	Page         int
	Size         int
	WithLocation bool
}

// LoginResult is the session issued by the server.
type LoginResult struct {
	UserID string
	Name   string
	Token  string
}
