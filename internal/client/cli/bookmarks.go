package cli

import (
	"context"
	"fmt"
	"time"
)

// Save bookmarks a story by id. The result is printed by the notifier.
func (a *App) Save(ctx context.Context, id string) error {
	a.bookmarks.SaveByID(ctx, id)
	return nil
}

// Unsave removes a bookmark. Removing an absent bookmark is not an error.
func (a *App) Unsave(ctx context.Context, id string) error {
	a.bookmarks.Remove(ctx, id)
	return nil
}

// Bookmarks lists saved stories in the order they were saved. They are readable offline
// with 'show'.
func (a *App) Bookmarks(ctx context.Context) error {
	recs, err := a.bookmarks.List(ctx)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(a.out, "No bookmarks.")
		return nil
	}
	for _, r := range recs {
		fmt.Fprintf(a.out, "%s  %s: %s (saved %s)\n",
			r.StoryID, r.Snapshot.Name, oneLine(r.Snapshot.Description, 40), r.SavedAt.Local().Format(time.DateTime))
	}
	return nil
}
