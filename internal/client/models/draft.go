package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/google/uuid"
)

// SyncState is the lifecycle tag of a draft.
type SyncState string

const (
	SyncPending SyncState = "pending"
	SyncSynced  SyncState = "synced"
	SyncFailed  SyncState = "failed"
)

// CanTransition reports whether a draft may move from s to next. Only
// Pending→Synced and Pending→Failed are allowed.
func (s SyncState) CanTransition(next SyncState) bool {
	return s == SyncPending && (next == SyncSynced || next == SyncFailed)
}

func (s SyncState) Valid() bool {
	switch s {
	case SyncPending, SyncSynced, SyncFailed:
		return true
	}
	return false
}

// MaxPhotoSize is the largest photo the API accepts.
const MaxPhotoSize = 1 << 20

// Photo is an optional image attached to a draft.
type Photo struct {
	Data     []byte `validate:"required,max=1048576"`
	MimeType string `validate:"required,oneof=image/jpeg image/png image/gif image/webp"`
}

// Extension returns a file extension matching the MIME type.
func (p Photo) Extension() string {
	switch p.MimeType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

// StoryDraft is a story that has not been committed remotely yet.
type StoryDraft struct {
	ID          string    `validate:"required"`
	Description string    `validate:"notblank"`
	Photo       *Photo
	Lat         *float64  `validate:"omitnil,gte=-90,lte=90"`
	Lon         *float64  `validate:"omitnil,gte=-180,lte=180"`
	SyncState   SyncState `validate:"oneof=pending synced failed"`

	createdAt time.Time
}

// NewStoryDraft creates a pending draft with a fresh id and creation time.
func NewStoryDraft(description string, photo *Photo, lat, lon *float64) StoryDraft {
	return StoryDraft{
		ID:          uuid.NewString(),
		Description: description,
		Photo:       photo,
		Lat:         lat,
		Lon:         lon,
		SyncState:   SyncPending,
		createdAt:   time.Now().UTC(),
	}
}

// RestoreStoryDraft rebuilds a draft loaded from storage, keeping its
// original creation time.
func RestoreStoryDraft(id, description string, photo *Photo, lat, lon *float64, state SyncState, createdAt time.Time) StoryDraft {
	return StoryDraft{
		ID:          id,
		Description: description,
		Photo:       photo,
		Lat:         lat,
		Lon:         lon,
		SyncState:   state,
		createdAt:   createdAt.UTC(),
	}
}

// CreatedAt is set once when the draft is created and never changes.
func (d StoryDraft) CreatedAt() time.Time { return d.createdAt }

// Summary is a short single-line description for listings.
func (d StoryDraft) Summary() string {
	s := strings.Join(strings.Fields(d.Description), " ")
	if r := []rune(s); len(r) > 40 {
		s = string(r[:37]) + "..."
	}
	return fmt.Sprintf("%s %q", d.ID, s)
}

// OfflineQueueEntry is a draft waiting for a later remote commit.
// RetryCount is informational; nothing retries automatically.
type OfflineQueueEntry struct {
	Draft      StoryDraft
	RetryCount int
	LastError  *common.Kind
}
