package services

import (
	"context"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/common"
)

// Outcome is how a submission ended.
type Outcome string

const (
	OutcomeSucceeded     Outcome = "succeeded"
	OutcomeQueuedOffline Outcome = "queued_offline"
	OutcomeFailed        Outcome = "failed"
	// OutcomeBusy rejects a call made while another one is in flight.
	OutcomeBusy Outcome = "busy"
)

// SubmissionResult describes one Submit call. Kind is empty on success and on
// offline queuing. Draft is the draft as submitted, so the caller can keep it
// when nothing was persisted.
type SubmissionResult struct {
	Outcome Outcome
	Kind    common.Kind
	Message string
	Draft   models.StoryDraft
	// Guest is true when the story was published through the guest endpoint.
	Guest bool
}

// BookmarkAction is what a bookmark toggle did.
type BookmarkAction string

const (
	BookmarkSaved   BookmarkAction = "saved"
	BookmarkRemoved BookmarkAction = "removed"
	BookmarkFailed  BookmarkAction = "failed"
)

// BookmarkResult is reported after a save or remove. Bookmarked is the
// presence re-read from the store after the change.
type BookmarkResult struct {
	StoryID    string
	Action     BookmarkAction
	Bookmarked bool
	Kind       common.Kind
	Message    string
}

// Notifier is the view side of the core. It is told about outcomes; it never
// decides them.
type Notifier interface {
	OnSubmitResult(ctx context.Context, res SubmissionResult)
	OnBookmarkToggled(ctx context.Context, res BookmarkResult)
}

// NopNotifier discards everything.
type NopNotifier struct{}

func (NopNotifier) OnSubmitResult(context.Context, SubmissionResult) {}
func (NopNotifier) OnBookmarkToggled(context.Context, BookmarkResult) {}
