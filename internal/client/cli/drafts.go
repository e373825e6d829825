package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/common"
)

// Drafts lists stories saved while offline and those the server rejected.
func (a *App) Drafts(ctx context.Context) error {
	pending, err := a.drafts.ListPendingDrafts(ctx)
	if err != nil {
		return err
	}
	failed, err := a.drafts.ListFailedDrafts(ctx)
	if err != nil {
		return err
	}

	if len(pending) == 0 && len(failed) == 0 {
		fmt.Fprintln(a.out, "No drafts.")
		return nil
	}
	if len(pending) > 0 {
		fmt.Fprintln(a.out, "Waiting to be sent:")
		for _, e := range pending {
			printDraft(a, e)
		}
	}
	if len(failed) > 0 {
		fmt.Fprintln(a.out, "Rejected by the server:")
		for _, e := range failed {
			printDraft(a, e)
		}
	}
	return nil
}

func printDraft(a *App, e models.OfflineQueueEntry) {
	line := fmt.Sprintf("  %s  %s", e.Draft.CreatedAt().Local().Format(time.DateTime), e.Draft.Summary())
	if e.RetryCount > 0 {
		line += fmt.Sprintf("  tries: %d", e.RetryCount)
	}
	if e.LastError != nil {
		line += fmt.Sprintf("  last error: %s", *e.LastError)
	}
	fmt.Fprintln(a.out, line)
}

// Drop deletes a draft for good.
func (a *App) Drop(ctx context.Context, id string) error {
	if err := a.drafts.RemoveDraft(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Draft %s removed.\n", id)
	return nil
}

// Sync sends pending drafts now. Nothing is sent in the background.
func (a *App) Sync(ctx context.Context) error {
	report, err := a.syncer.Flush(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Sent: %d, rejected: %d, still pending: %d\n", report.Synced, report.Failed, report.Remaining)
	switch report.StoppedBy {
	case common.KindNetworkUnavailable:
		fmt.Fprintln(a.out, "Stopped: the server cannot be reached. Try again when you are online.")
	case common.KindAuth:
		fmt.Fprintln(a.out, "Stopped: please log in again.")
	}
	return nil
}
