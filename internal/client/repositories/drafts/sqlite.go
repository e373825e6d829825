package drafts

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

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectColumns = `id, description, photo, photo_mime, lat, lon, created_at, sync_state, retry_count, last_error`

func (r *SQLiteRepository) Insert(ctx context.Context, d models.StoryDraft) error {
	var (
		photo []byte
		mime  sql.NullString
	)
	if d.Photo != nil {
		photo = d.Photo.Data
		mime = sql.NullString{String: d.Photo.MimeType, Valid: true}
	}

	state := d.SyncState
	if state == "" {
		state = models.SyncPending
	}

	query := `INSERT INTO offline_drafts (id, description, photo, photo_mime, lat, lon, created_at, sync_state, retry_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.Description, photo, mime,
		nullFloat(d.Lat), nullFloat(d.Lon),
		d.CreatedAt().UTC().UnixNano(), string(state))
	if err != nil {
		return fmt.Errorf("failed to insert draft %s: %w", d.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.OfflineQueueEntry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM offline_drafts WHERE id = ?`, id)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("draft %s: %w", id, common.ErrorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) ListByState(ctx context.Context, state models.SyncState) ([]models.OfflineQueueEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM offline_drafts WHERE sync_state = ? ORDER BY created_at, id`, string(state))
	if err != nil {
		return nil, fmt.Errorf("failed to select drafts: %w", err)
	}
	defer rows.Close()

	result := []models.OfflineQueueEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateState only touches pending rows. When nothing was updated the row is
// looked up again to tell a missing draft from a forbidden transition.
func (r *SQLiteRepository) UpdateState(ctx context.Context, id string, next models.SyncState) error {
	if !models.SyncPending.CanTransition(next) {
		return fmt.Errorf("draft %s -> %s: %w", id, next, common.ErrInvalidTransition)
	}

	n, err := dbx.RowsAffected(ctx, r.db,
		`UPDATE offline_drafts SET sync_state = ? WHERE id = ? AND sync_state = ?`,
		string(next), id, string(models.SyncPending))
	if err != nil {
		return fmt.Errorf("failed to update draft %s: %w", id, err)
	}
	if n > 0 {
		return nil
	}

	e, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return fmt.Errorf("draft %s %s -> %s: %w", id, e.Draft.SyncState, next, common.ErrInvalidTransition)
}

func (r *SQLiteRepository) RecordAttempt(ctx context.Context, id string, kind common.Kind) error {
	n, err := dbx.RowsAffected(ctx, r.db,
		`UPDATE offline_drafts SET retry_count = retry_count + 1, last_error = ? WHERE id = ?`,
		string(kind), id)
	if err != nil {
		return fmt.Errorf("failed to record attempt for draft %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("draft %s: %w", id, common.ErrorNotFound)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM offline_drafts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", id, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*models.OfflineQueueEntry, error) {
	var (
		id, description string
		photo           []byte
		mime            sql.NullString
		lat, lon        sql.NullFloat64
		createdAt       int64
		state           string
		retries         int
		lastError       sql.NullString
	)
	if err := s.Scan(&id, &description, &photo, &mime, &lat, &lon, &createdAt, &state, &retries, &lastError); err != nil {
		return nil, err
	}

	var p *models.Photo
	if mime.Valid {
		p = &models.Photo{Data: photo, MimeType: mime.String}
	}

	e := &models.OfflineQueueEntry{
		Draft: models.RestoreStoryDraft(id, description, p,
			fromNullFloat(lat), fromNullFloat(lon),
			models.SyncState(state), time.Unix(0, createdAt)),
		RetryCount: retries,
	}
	if lastError.Valid {
		k := common.Kind(lastError.String)
		e.LastError = &k
	}
	return e, nil
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
