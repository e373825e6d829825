package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/client/client"
	"github.com/dmitrijs2005/storykeeper/internal/client/config"
	"github.com/dmitrijs2005/storykeeper/internal/client/connectivity"
	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/client/resources"
	"github.com/dmitrijs2005/storykeeper/internal/client/services"
	"github.com/dmitrijs2005/storykeeper/internal/client/store"
	"github.com/dmitrijs2005/storykeeper/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// submitter is the part of services.Orchestrator the REPL drives.
type submitter interface {
	Submit(ctx context.Context, draft models.StoryDraft) services.SubmissionResult
}

// draftBook lists and removes queued drafts.
type draftBook interface {
	ListPendingDrafts(ctx context.Context) ([]models.OfflineQueueEntry, error)
	ListFailedDrafts(ctx context.Context) ([]models.OfflineQueueEntry, error)
	RemoveDraft(ctx context.Context, id string) error
}

type App struct {
	config    *config.Config
	auth      services.AuthService
	stories   services.StoryService
	bookmarks services.BookmarkService
	submitter submitter
	syncer    services.SyncService
	drafts    draftBook
	oracle    connectivity.Oracle
	resources *resources.Manager
	log       logging.Logger
	reader    *bufio.Reader
	out       io.Writer

	mu       sync.RWMutex
	mode     Mode
	userName string
}

// NewApp opens the local store and wires the gateway, the connectivity
// oracle and the services. Everything opened here is released by Close.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	res := resources.NewManager(log)

	st, err := store.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}
	res.Add("database", st)

	api, err := client.NewHTTPClient(c.APIBaseURL,
		client.WithTokenProvider(services.NewMetadataTokenProvider(st)),
		client.WithListKeys(c.StoryListKeys),
		client.WithGuestSubmissions(c.GuestSubmissions),
	)
	if err != nil {
		_ = res.Close()
		return nil, err
	}
	res.Add("api client", api)

	oracle, err := connectivity.NewProbeOracle(c.APIBaseURL, c.ProbeTimeout, log)
	if err != nil {
		_ = res.Close()
		return nil, err
	}

	out := os.Stdout
	notifier := newConsoleNotifier(out)

	return &App{
		config:    c,
		auth:      services.NewAuthService(api, st, log, c.RequestTimeout),
		stories:   services.NewStoryService(api, st, log, c.RequestTimeout),
		bookmarks: services.NewBookmarkService(st, api, notifier, log, c.RequestTimeout),
		submitter: services.NewOrchestrator(api, st, oracle, notifier, log, c.RequestTimeout),
		syncer:    services.NewSyncService(api, st, log, c.RequestTimeout),
		drafts:    st,
		oracle:    oracle,
		resources: res,
		log:       log,
		reader:    bufio.NewReader(os.Stdin),
		out:       out,
	}, nil
}

// Run restores the remembered session, starts the connectivity watcher and
// blocks in the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	a.restoreSession(ctx)

	watchCtx, cancel := context.WithCancel(ctx)
	a.resources.AddFunc("online watcher", func() error {
		cancel()
		return nil
	})
	a.checkOnline(watchCtx)
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	printlnFn("Welcome to storykeeper (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// Close releases the store, the HTTP transport and the watcher.
func (a *App) Close() error {
	if a.resources == nil {
		return nil
	}
	return a.resources.Close()
}

func (a *App) restoreSession(ctx context.Context) {
	sess, ok, err := a.auth.Current(ctx)
	if err != nil {
		a.log.Warn(ctx, "cannot restore session", "error", err)
		return
	}
	if ok {
		a.setUser(sess.UserName)
	}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), fmt.Sprintf("Switched to %s mode", mode))
	}
}

func (a *App) setUser(name string) {
	a.mu.Lock()
	a.userName = name
	a.mu.Unlock()
}

func (a *App) isLoggedIn() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.userName != ""
}

func (a *App) checkOnline(ctx context.Context) {
	if a.oracle.IsOnline(ctx) {
		a.setMode(ModeOnline)
	} else {
		a.setMode(ModeOffline)
	}
}

// StartOnlineStatusWatcher polls the connectivity oracle every interval and
// keeps Mode current until ctx is done. The mode is shown in the prompt only;
// submissions ask the oracle themselves.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.mode != "" {
		s = s + string(a.mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
