package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/client/services"
	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/stretchr/testify/require"
)

func TestConsoleNotifier_Submit(t *testing.T) {
	draft := models.NewStoryDraft("my words", nil, nil, nil)

	tests := []struct {
		name string
		res  services.SubmissionResult
		want string
	}{
		{
			name: "published",
			res:  services.SubmissionResult{Outcome: services.OutcomeSucceeded},
			want: "Story published.\n",
		},
		{
			name: "published as guest",
			res:  services.SubmissionResult{Outcome: services.OutcomeSucceeded, Guest: true},
			want: "Story published as guest.\n",
		},
		{
			name: "queued",
			res:  services.SubmissionResult{Outcome: services.OutcomeQueuedOffline, Draft: draft},
			want: "You are offline. Story saved as draft " + draft.ID + "; run 'sync' when you are back online.\n",
		},
		{
			name: "busy",
			res:  services.SubmissionResult{Outcome: services.OutcomeBusy, Kind: common.KindBusy, Message: "a story is already being sent, please wait"},
			want: "Story not sent: a story is already being sent, please wait\n",
		},
		{
			name: "rejected",
			res:  services.SubmissionResult{Outcome: services.OutcomeFailed, Kind: common.KindValidation, Message: "description must not be empty"},
			want: "Story not published: description must not be empty\n",
		},
		{
			name: "storage failure returns the text",
			res:  services.SubmissionResult{Outcome: services.OutcomeFailed, Kind: common.KindStorage, Message: "cannot save draft for later", Draft: draft},
			want: "Story not published: cannot save draft for later\nYour text was not saved:\nmy words\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			newConsoleNotifier(&buf).OnSubmitResult(context.Background(), tc.res)
			require.Equal(t, tc.want, buf.String())
		})
	}
}

func TestConsoleNotifier_Bookmark(t *testing.T) {
	var buf bytes.Buffer
	n := newConsoleNotifier(&buf)
	ctx := context.Background()

	n.OnBookmarkToggled(ctx, services.BookmarkResult{StoryID: "s1", Action: services.BookmarkSaved, Bookmarked: true})
	n.OnBookmarkToggled(ctx, services.BookmarkResult{StoryID: "s1", Action: services.BookmarkRemoved})
	n.OnBookmarkToggled(ctx, services.BookmarkResult{StoryID: "s1", Action: services.BookmarkFailed, Kind: common.KindStorage, Message: "cannot save bookmark"})

	require.Equal(t, "Bookmarked s1.\nBookmark s1 removed.\nBookmark not changed: cannot save bookmark\n", buf.String())
}

var _ services.Notifier = (*consoleNotifier)(nil)
