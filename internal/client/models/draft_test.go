package models

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoryDraft(t *testing.T) {
	before := time.Now().UTC()
	d := NewStoryDraft("Hiking trip", nil, Float(1), Float(2))

	require.NotEmpty(t, d.ID)
	assert.Equal(t, SyncPending, d.SyncState)
	assert.Equal(t, "Hiking trip", d.Description)
	assert.False(t, d.CreatedAt().Before(before))
	assert.Equal(t, 1.0, *d.Lat)
	assert.Equal(t, 2.0, *d.Lon)

	other := NewStoryDraft("Hiking trip", nil, nil, nil)
	assert.NotEqual(t, d.ID, other.ID)
}

func TestRestoreStoryDraft_KeepsCreatedAt(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	d := RestoreStoryDraft("id-1", "desc", nil, nil, nil, SyncSynced, at)

	assert.Equal(t, at, d.CreatedAt())
	assert.Equal(t, SyncSynced, d.SyncState)
}

func TestSyncState_CanTransition(t *testing.T) {
	tests := []struct {
		from, to SyncState
		want     bool
	}{
		{SyncPending, SyncSynced, true},
		{SyncPending, SyncFailed, true},
		{SyncPending, SyncPending, false},
		{SyncSynced, SyncPending, false},
		{SyncSynced, SyncFailed, false},
		{SyncFailed, SyncPending, false},
		{SyncFailed, SyncSynced, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestSyncState_Valid(t *testing.T) {
	assert.True(t, SyncPending.Valid())
	assert.True(t, SyncFailed.Valid())
	assert.False(t, SyncState("queued").Valid())
}

func TestPhoto_Extension(t *testing.T) {
	assert.Equal(t, ".png", Photo{MimeType: "image/png"}.Extension())
	assert.Equal(t, ".webp", Photo{MimeType: "image/webp"}.Extension())
	assert.Equal(t, ".jpg", Photo{MimeType: "image/jpeg"}.Extension())
	assert.Equal(t, ".jpg", Photo{}.Extension())
}

func TestStoryDraft_Summary(t *testing.T) {
	d := RestoreStoryDraft("d1", "a\nvery   long description that keeps going on and on", nil, nil, nil, SyncPending, time.Now())
	assert.Equal(t, `d1 "a very long description that keeps go..."`, d.Summary())

	d = RestoreStoryDraft("d2", strings.Repeat("ä", 50), nil, nil, nil, SyncPending, time.Now())
	got := d.Summary()
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, `d2 "`+strings.Repeat("ä", 37)+`..."`, got)

	d = RestoreStoryDraft("d3", strings.Repeat("ж", 40), nil, nil, nil, SyncPending, time.Now())
	assert.Equal(t, `d3 "`+strings.Repeat("ж", 40)+`"`, d.Summary())
}

func TestStory_HasLocation(t *testing.T) {
	assert.False(t, Story{}.HasLocation())
	assert.False(t, Story{Lat: Float(1)}.HasLocation())
	assert.True(t, Story{Lat: Float(1), Lon: Float(0)}.HasLocation())
}
