// Package models defines the client-side data model: remote stories, local
// drafts awaiting submission, offline queue entries and bookmarks.
package models

import "time"

// Story is the canonical shape of a story as served by the remote API.
// Name is the title shown to the user.
type Story struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PhotoURL    string    `json:"photoUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	Lat         *float64  `json:"lat,omitempty"`
	Lon         *float64  `json:"lon,omitempty"`
}

// HasLocation reports whether both coordinates are set.
func (s Story) HasLocation() bool {
	return s.Lat != nil && s.Lon != nil
}

// BookmarkRecord is a snapshot of a remote story saved for offline viewing.
// There is at most one record per StoryID.
type BookmarkRecord struct {
	StoryID  string
	Snapshot Story
	SavedAt  time.Time
}

// Float returns a pointer to v; convenient for optional coordinates.
func Float(v float64) *float64 { return &v }
