package bookmarks

import (
	"context"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
)

// Repository describes storage operations for bookmark records.
type Repository interface {
	// Upsert inserts a record or overwrites the existing one with the same StoryID.
	Upsert(ctx context.Context, rec *models.BookmarkRecord) error

	// Delete removes the record; deleting an absent id is not an error.
	Delete(ctx context.Context, storyID string) error

	// GetByID returns the record or an error wrapping common.ErrorNotFound.
	GetByID(ctx context.Context, storyID string) (*models.BookmarkRecord, error)

	// List returns all records ordered by SavedAt, then StoryID.
	List(ctx context.Context) ([]models.BookmarkRecord, error)
}
