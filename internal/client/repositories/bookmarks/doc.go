// Package bookmarks provides the client-side persistence layer for bookmarked
// stories.
//
// # Overview
//
// The package defines a Repository interface over models.BookmarkRecord and a
// SQLite-backed implementation (SQLiteRepository) that works over a
// dbx.DBTX (either *sql.DB or *sql.Tx).
//
// # Data Model
//
// One row per story id in the bookmarks table. Upsert replaces the whole
// snapshot and saved_at, so saving the same story twice leaves one row
// holding the latest data. Timestamps are stored as Unix nanoseconds.
//
// Typical Usage
//
//	repo := bookmarks.NewSQLiteRepository(db)
//	_ = repo.Upsert(ctx, &models.BookmarkRecord{StoryID: "42", Snapshot: story, SavedAt: now})
//	list, _ := repo.List(ctx)
//	_ = repo.Delete(ctx, "42")
package bookmarks
