package bookmarks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/dmitrijs2005/storykeeper/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectColumns = `story_id, name, description, photo_url, lat, lon, story_created_at, saved_at`

// Upsert writes the record by story id. On conflict every column is replaced.
func (r *SQLiteRepository) Upsert(ctx context.Context, rec *models.BookmarkRecord) error {
	s := rec.Snapshot
	query := `INSERT INTO bookmarks (story_id, name, description, photo_url, lat, lon, story_created_at, saved_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(story_id) DO UPDATE SET name = excluded.name,
				description = excluded.description,
				photo_url = excluded.photo_url,
				lat = excluded.lat,
				lon = excluded.lon,
				story_created_at = excluded.story_created_at,
				saved_at = excluded.saved_at
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.StoryID, s.Name, s.Description, s.PhotoURL,
		nullFloat(s.Lat), nullFloat(s.Lon),
		toNanos(s.CreatedAt), toNanos(rec.SavedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert bookmark %s: %w", rec.StoryID, err)
	}
	return nil
}

// Delete removes the bookmark. Zero affected rows is fine.
func (r *SQLiteRepository) Delete(ctx context.Context, storyID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE story_id = ?`, storyID); err != nil {
		return fmt.Errorf("failed to delete bookmark %s: %w", storyID, err)
	}
	return nil
}

// GetByID returns a single bookmark.
func (r *SQLiteRepository) GetByID(ctx context.Context, storyID string) (*models.BookmarkRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM bookmarks WHERE story_id = ?`, storyID)

	rec, err := scanBookmark(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bookmark %s: %w", storyID, common.ErrorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return rec, nil
}

// List returns every bookmark, oldest save first.
func (r *SQLiteRepository) List(ctx context.Context) ([]models.BookmarkRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM bookmarks ORDER BY saved_at, story_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select bookmarks: %w", err)
	}
	defer rows.Close()

	result := []models.BookmarkRecord{}
	for rows.Next() {
		rec, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBookmark(s scanner) (*models.BookmarkRecord, error) {
	var (
		rec              models.BookmarkRecord
		lat, lon         sql.NullFloat64
		createdAt, saved int64
	)
	err := s.Scan(&rec.StoryID, &rec.Snapshot.Name, &rec.Snapshot.Description, &rec.Snapshot.PhotoURL,
		&lat, &lon, &createdAt, &saved)
	if err != nil {
		return nil, err
	}
	rec.Snapshot.ID = rec.StoryID
	rec.Snapshot.Lat = fromNullFloat(lat)
	rec.Snapshot.Lon = fromNullFloat(lon)
	rec.Snapshot.CreatedAt = fromNanos(createdAt)
	rec.SavedAt = fromNanos(saved)
	return &rec, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func fromNullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func toNanos(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UTC().UnixNano()
}

func fromNanos(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}
