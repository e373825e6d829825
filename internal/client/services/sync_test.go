package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/client/client"
	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/client/store"
	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/dmitrijs2005/storykeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queueDrafts(t *testing.T, st *store.Store, descs ...string) []models.StoryDraft {
	t.Helper()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.StoryDraft, 0, len(descs))
	for i, desc := range descs {
		d := models.RestoreStoryDraft(fmt.Sprintf("d%d", i), desc, nil, nil, nil, models.SyncPending, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, st.PutOfflineDraft(context.Background(), d))
		out = append(out, d)
	}
	return out
}

func byDescription(results map[string]error) func(context.Context, models.StoryDraft) (client.SubmitResponse, error) {
	return func(_ context.Context, d models.StoryDraft) (client.SubmitResponse, error) {
		return client.SubmitResponse{}, results[d.Description]
	}
}

func TestFlush_AllSucceed(t *testing.T) {
	st := openStore(t)
	queueDrafts(t, st, "one", "two")
	gw := &fakeGateway{}

	report, err := NewSyncService(gw, st, logging.Nop(), time.Second).Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SyncReport{Synced: 2}, report)
	assert.Equal(t, 0, pendingCount(t, st))
	require.Len(t, gw.Submitted, 2)
	assert.Equal(t, "one", gw.Submitted[0].Description, "oldest first")
}

func TestFlush_MixedOutcomes(t *testing.T) {
	st := openStore(t)
	drafts := queueDrafts(t, st, "ok", "invalid", "flaky", "also ok")
	gw := &fakeGateway{SubmitFn: byDescription(map[string]error{
		"invalid": &client.ResponseError{Status: 400, Message: "photo required"},
		"flaky":   &client.ResponseError{Status: 502},
	})}

	report, err := NewSyncService(gw, st, logging.Nop(), time.Second).Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SyncReport{Synced: 2, Failed: 1, Remaining: 1}, report)

	failed, err := st.ListFailedDrafts(context.Background())
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, drafts[1].ID, failed[0].Draft.ID)

	flaky, err := st.GetDraft(context.Background(), drafts[2].ID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncPending, flaky.Draft.SyncState)
	assert.Equal(t, 1, flaky.RetryCount)
	require.NotNil(t, flaky.LastError)
	assert.Equal(t, common.KindServer, *flaky.LastError)
}

func TestFlush_StopsWhenOffline(t *testing.T) {
	st := openStore(t)
	queueDrafts(t, st, "first", "second", "third")
	gw := &fakeGateway{SubmitFn: byDescription(map[string]error{
		"second": fmt.Errorf("%w: refused", client.ErrUnavailable),
	})}

	report, err := NewSyncService(gw, st, logging.Nop(), time.Second).Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SyncReport{Synced: 1, Remaining: 2, StoppedBy: common.KindNetworkUnavailable}, report)
	assert.Equal(t, 2, gw.submitCalls())
	assert.Equal(t, 2, pendingCount(t, st))
}

func TestFlush_StopsOnAuth(t *testing.T) {
	st := openStore(t)
	queueDrafts(t, st, "a", "b")
	gw := &fakeGateway{SubmitFn: func(context.Context, models.StoryDraft) (client.SubmitResponse, error) {
		return client.SubmitResponse{}, fmt.Errorf("%w: %w", client.ErrUnauthorized, common.ErrNoToken)
	}}

	report, err := NewSyncService(gw, st, logging.Nop(), time.Second).Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, common.KindAuth, report.StoppedBy)
	assert.Equal(t, 2, report.Remaining)
	assert.Equal(t, 1, gw.submitCalls())
}

func TestFlush_EmptyQueue(t *testing.T) {
	report, err := NewSyncService(&fakeGateway{}, openStore(t), logging.Nop(), time.Second).Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SyncReport{}, report)
}

func TestFlush_StorageUnavailable(t *testing.T) {
	var st *store.Store
	_, err := NewSyncService(&fakeGateway{}, st, logging.Nop(), time.Second).Flush(context.Background())
	assert.Equal(t, common.KindStorage, common.KindOf(err))
}
