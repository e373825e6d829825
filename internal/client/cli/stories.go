package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/client/client"
	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/common"
)

const defaultPageSize = 10

// parseListQuery reads "[-l] [page] [size]".
func parseListQuery(args []string) (client.ListQuery, error) {
	q := client.ListQuery{Page: 1, Size: defaultPageSize}
	var nums []int
	for _, arg := range args {
		if arg == "-l" {
			q.WithLocation = true
			continue
		}
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return q, common.NewError(common.KindValidation, fmt.Sprintf("%q is not a positive number", arg), err)
		}
		nums = append(nums, n)
	}
	switch len(nums) {
	case 0:
	case 1:
		q.Page = nums[0]
	case 2:
		q.Page, q.Size = nums[0], nums[1]
	default:
		return q, common.NewError(common.KindValidation, "usage: stories [-l] [page] [size]", nil)
	}
	return q, nil
}

// Stories lists one page of remote stories. Bookmarked ones are starred.
func (a *App) Stories(ctx context.Context, args []string) error {
	q, err := parseListQuery(args)
	if err != nil {
		return err
	}

	views, err := a.stories.List(ctx, q)
	if err != nil {
		return err
	}
	if len(views) == 0 {
		fmt.Fprintln(a.out, "No stories.")
		return nil
	}
	for _, v := range views {
		mark := " "
		if v.Bookmarked {
			mark = "*"
		}
		fmt.Fprintf(a.out, "%s %s  %s: %s\n", mark, v.Story.ID, v.Story.Name, oneLine(v.Story.Description, 50))
	}
	return nil
}

// Show prints a single story. When the network is down a bookmarked copy is
// shown instead.
func (a *App) Show(ctx context.Context, id string) error {
	v, err := a.stories.Detail(ctx, id)
	if err != nil {
		return err
	}
	printStory(a, v.Story)
	switch {
	case v.FromBookmark:
		fmt.Fprintln(a.out, "(offline copy from your bookmarks)")
	case v.Bookmarked:
		fmt.Fprintln(a.out, "(bookmarked)")
	}
	return nil
}

func printStory(a *App, s models.Story) {
	fmt.Fprintf(a.out, "ID:      %s\n", s.ID)
	fmt.Fprintf(a.out, "Author:  %s\n", s.Name)
	if !s.CreatedAt.IsZero() {
		fmt.Fprintf(a.out, "Posted:  %s\n", s.CreatedAt.Local().Format(time.DateTime))
	}
	if s.HasLocation() {
		fmt.Fprintf(a.out, "Where:   %.5f, %.5f\n", *s.Lat, *s.Lon)
	}
	if s.PhotoURL != "" {
		fmt.Fprintf(a.out, "Photo:   %s\n", s.PhotoURL)
	}
	fmt.Fprintf(a.out, "\n%s\n", s.Description)
}

func oneLine(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) > width {
		return string(r[:width-3]) + "..."
	}
	return s
}
