package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/client/client"
	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/dmitrijs2005/storykeeper/internal/logging"
	"golang.org/x/sync/semaphore"
)

// DraftStore is the offline queue as seen by the sync service.
type DraftStore interface {
	ListPendingDrafts(ctx context.Context) ([]models.OfflineQueueEntry, error)
	MarkDraftSynced(ctx context.Context, id string) error
	MarkDraftFailed(ctx context.Context, id string, kind common.Kind) error
	RecordDraftAttempt(ctx context.Context, id string, kind common.Kind) error
}

// SyncReport summarizes one Flush.
type SyncReport struct {
	Synced    int
	Failed    int
	Remaining int
	// StoppedBy is set when the run ended early.
	StoppedBy common.Kind
}

// SyncService sends queued drafts when the user asks for it. Nothing is
// scheduled in the background.
type SyncService interface {
	Flush(ctx context.Context) (SyncReport, error)
}

type syncService struct {
	gateway client.Gateway
	drafts  DraftStore
	log     logging.Logger
	timeout time.Duration
	busy    *semaphore.Weighted
}

func NewSyncService(gateway client.Gateway, drafts DraftStore, log logging.Logger, timeout time.Duration) SyncService {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &syncService{gateway: gateway, drafts: drafts, log: log, timeout: timeout, busy: semaphore.NewWeighted(1)}
}

// Flush submits pending drafts oldest first. A draft the server accepts is
// marked synced; one it rejects as invalid is marked failed; transient
// failures are recorded and the draft stays pending. The run stops when the
// network is down or the session is not valid.
func (s *syncService) Flush(ctx context.Context) (report SyncReport, err error) {
	if !s.busy.TryAcquire(1) {
		return SyncReport{}, common.NewError(common.KindBusy, "a sync is already running", nil)
	}
	defer s.busy.Release(1)

	pending, err := s.drafts.ListPendingDrafts(ctx)
	if err != nil {
		return SyncReport{}, classify(err)
	}

	defer func() {
		report.Remaining = len(pending) - report.Synced - report.Failed
	}()

	for _, e := range pending {
		if err := ctx.Err(); err != nil {
			return report, common.NewError(common.KindInternal, "sync canceled", err)
		}

		reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
		_, err := s.gateway.SubmitStory(reqCtx, e.Draft)
		cancel()

		if err == nil {
			if err := s.drafts.MarkDraftSynced(ctx, e.Draft.ID); err != nil {
				return report, classify(err)
			}
			s.log.Info(ctx, "draft synced", "draft_id", e.Draft.ID)
			report.Synced++
			continue
		}

		ce := classify(err)
		s.log.Warn(ctx, "draft sync failed", "draft_id", e.Draft.ID, "kind", ce.Kind, "error", err)

		switch ce.Kind {
		case common.KindValidation:
			if err := s.drafts.MarkDraftFailed(ctx, e.Draft.ID, ce.Kind); err != nil {
				return report, classify(err)
			}
			report.Failed++
		case common.KindNetworkUnavailable, common.KindAuth:
			if err := s.drafts.RecordDraftAttempt(ctx, e.Draft.ID, ce.Kind); err != nil {
				return report, classify(err)
			}
			report.StoppedBy = ce.Kind
			return report, nil
		default:
			if err := s.drafts.RecordDraftAttempt(ctx, e.Draft.ID, ce.Kind); err != nil {
				return report, classify(err)
			}
		}
	}
	return report, nil
}
