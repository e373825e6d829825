package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/client/client"
	"github.com/dmitrijs2005/storykeeper/internal/client/connectivity"
	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/dmitrijs2005/storykeeper/internal/logging"
	"golang.org/x/sync/semaphore"
)

// DefaultRequestTimeout bounds one gateway call when no timeout is configured.
const DefaultRequestTimeout = 15 * time.Second

// State is the orchestrator's in-flight indicator.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
)

// DraftQueue persists drafts that could not be committed remotely.
type DraftQueue interface {
	PutOfflineDraft(ctx context.Context, d models.StoryDraft) error
}

// Orchestrator runs story submissions one at a time. A call made while
// another is in flight is rejected with OutcomeBusy and touches nothing.
type Orchestrator struct {
	gateway  client.Gateway
	queue    DraftQueue
	oracle   connectivity.Oracle
	notifier Notifier
	log      logging.Logger
	timeout  time.Duration

	busy *semaphore.Weighted

	mu    sync.Mutex
	state State
	last  *SubmissionResult
}

func NewOrchestrator(gateway client.Gateway, queue DraftQueue, oracle connectivity.Oracle,
	notifier Notifier, log logging.Logger, timeout time.Duration) *Orchestrator {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Orchestrator{
		gateway:  gateway,
		queue:    queue,
		oracle:   oracle,
		notifier: notifier,
		log:      log,
		timeout:  timeout,
		busy:     semaphore.NewWeighted(1),
		state:    StateIdle,
	}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// LastResult returns the result of the most recent admitted submission.
func (o *Orchestrator) LastResult() (SubmissionResult, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.last == nil {
		return SubmissionResult{}, false
	}
	return *o.last, true
}

// Submit tries to publish the draft. It never returns an error: every
// failure is described by the result. The notifier receives the result of
// every admitted call exactly once, after the orchestrator is idle again.
// A Busy rejection is notified right away and leaves state and LastResult
// untouched.
//
// The remote call is not canceled together with ctx; it is bounded by the
// configured request timeout, and a timeout counts as a transport failure.
func (o *Orchestrator) Submit(ctx context.Context, draft models.StoryDraft) (res SubmissionResult) {
	if !o.busy.TryAcquire(1) {
		o.log.Info(ctx, "submission rejected: another one is in flight", "draft_id", draft.ID)
		res = SubmissionResult{
			Outcome: OutcomeBusy,
			Kind:    common.KindBusy,
			Message: "a story is already being sent, please wait",
			Draft:   draft,
		}
		o.notifier.OnSubmitResult(ctx, res)
		return res
	}
	o.setState(StateSubmitting)

	defer func() {
		p := recover()
		if p != nil {
			o.log.Error(ctx, "submission panicked", "draft_id", draft.ID, "panic", p)
			res = failed(draft, common.NewError(common.KindInternal,
				"something went wrong while sending the story", fmt.Errorf("panic: %v", p)))
		}

		o.mu.Lock()
		o.state = StateIdle
		o.last = &res
		o.mu.Unlock()
		o.busy.Release(1)

		o.notifier.OnSubmitResult(ctx, res)
		if p != nil {
			panic(p)
		}
	}()

	return o.submit(context.WithoutCancel(ctx), draft)
}

func (o *Orchestrator) submit(ctx context.Context, draft models.StoryDraft) SubmissionResult {
	if err := ValidateDraft(draft); err != nil {
		o.log.Info(ctx, "draft rejected by validation", "draft_id", draft.ID, "reason", common.MessageOf(err))
		return failed(draft, classify(err))
	}

	reqCtx, cancel := context.WithTimeout(ctx, o.timeout)
	resp, err := o.gateway.SubmitStory(reqCtx, draft)
	cancel()

	if err == nil {
		o.log.Info(ctx, "story published", "draft_id", draft.ID, "guest", resp.Guest)
		msg := resp.Message
		if msg == "" {
			msg = "story published"
		}
		return SubmissionResult{Outcome: OutcomeSucceeded, Message: msg, Draft: draft, Guest: resp.Guest}
	}

	// A missing or expired token is found before anything is sent, so the
	// server has not rejected the story yet.
	localAuth := errors.Is(err, common.ErrNoToken) || errors.Is(err, common.ErrTokenExpired)
	if !errors.Is(err, client.ErrUnavailable) && !localAuth {
		ce := classify(err)
		o.log.Warn(ctx, "story rejected", "draft_id", draft.ID, "kind", ce.Kind, "error", err)
		return failed(draft, ce)
	}

	// Connectivity is checked once, now, and not re-checked.
	if o.oracle.IsOnline(ctx) {
		if localAuth {
			ce := classify(err)
			o.log.Warn(ctx, "story not sent: no valid session", "draft_id", draft.ID, "error", err)
			return failed(draft, ce)
		}
		o.log.Warn(ctx, "server unreachable while online", "draft_id", draft.ID, "error", err)
		return failed(draft, common.NewError(common.KindNetworkUnavailable,
			"the story server cannot be reached right now, please try again", err))
	}

	draft.SyncState = models.SyncPending
	if err := o.queue.PutOfflineDraft(ctx, draft); err != nil {
		o.log.Error(ctx, "cannot queue draft", "draft_id", draft.ID, "error", err)
		return failed(draft, common.NewError(common.KindStorage,
			"you are offline and the story could not be saved locally", err))
	}

	o.log.Info(ctx, "offline, draft queued", "draft_id", draft.ID)
	return SubmissionResult{
		Outcome: OutcomeQueuedOffline,
		Message: "you are offline: the story was saved and can be sent later with sync",
		Draft:   draft,
	}
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

func failed(draft models.StoryDraft, ce *common.Error) SubmissionResult {
	return SubmissionResult{Outcome: OutcomeFailed, Kind: ce.Kind, Message: ce.Message, Draft: draft}
}
