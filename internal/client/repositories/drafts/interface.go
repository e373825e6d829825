// Package drafts persists story drafts that could not be committed remotely
// (the offline queue).
package drafts

import (
	"context"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/common"
)

type Repository interface {
	// Insert adds a new queue entry for the draft with zero retries.
	Insert(ctx context.Context, d models.StoryDraft) error

	// GetByID returns the entry or an error wrapping common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.OfflineQueueEntry, error)

	// ListByState returns entries in the given state ordered by creation time.
	ListByState(ctx context.Context, state models.SyncState) ([]models.OfflineQueueEntry, error)

	// UpdateState moves a draft to next. Only transitions allowed by
	// SyncState.CanTransition succeed; others wrap common.ErrInvalidTransition.
	UpdateState(ctx context.Context, id string, next models.SyncState) error

	// RecordAttempt increments the retry counter and stores the failure kind.
	RecordAttempt(ctx context.Context, id string, kind common.Kind) error

	// Delete removes the entry; deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}
