package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/storykeeper/internal/client/services"
	"github.com/dmitrijs2005/storykeeper/internal/common"
)

// consoleNotifier prints submission and bookmark outcomes for the user.
type consoleNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

func newConsoleNotifier(out io.Writer) *consoleNotifier {
	return &consoleNotifier{out: out}
}

func (n *consoleNotifier) OnSubmitResult(_ context.Context, res services.SubmissionResult) {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch res.Outcome {
	case services.OutcomeSucceeded:
		if res.Guest {
			fmt.Fprintln(n.out, "Story published as guest.")
		} else {
			fmt.Fprintln(n.out, "Story published.")
		}
	case services.OutcomeQueuedOffline:
		fmt.Fprintf(n.out, "You are offline. Story saved as draft %s; run 'sync' when you are back online.\n", res.Draft.ID)
	case services.OutcomeBusy:
		fmt.Fprintf(n.out, "Story not sent: %s\n", res.Message)
	case services.OutcomeFailed:
		fmt.Fprintf(n.out, "Story not published: %s\n", res.Message)
		if res.Kind == common.KindStorage {
			// nothing was kept; give the text back
			fmt.Fprintf(n.out, "Your text was not saved:\n%s\n", res.Draft.Description)
		}
	}
}

func (n *consoleNotifier) OnBookmarkToggled(_ context.Context, res services.BookmarkResult) {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch res.Action {
	case services.BookmarkSaved:
		fmt.Fprintf(n.out, "Bookmarked %s.\n", res.StoryID)
	case services.BookmarkRemoved:
		fmt.Fprintf(n.out, "Bookmark %s removed.\n", res.StoryID)
	case services.BookmarkFailed:
		fmt.Fprintf(n.out, "Bookmark not changed: %s\n", res.Message)
	}
}
