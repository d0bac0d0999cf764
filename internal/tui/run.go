package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/presenter"
	"github.com/idilsaglam/tada/internal/watch"
)

// Options wire the background refresh sources.
type Options struct {
	// Refresh is the cron spec for periodic refresh.
	Refresh string
	// WatchPath, when set, refreshes whenever that file changes on disk.
	WatchPath string
	Logger    *log.Logger
}

// Run starts the full-screen list and blocks until the user quits.
func Run(ctx context.Context, p *presenter.Presenter, opt Options) error {
	if opt.Logger == nil {
		opt.Logger = log.Default()
	}
	m, err := New(p)
	if err != nil {
		return err
	}
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	refresh := func() { prog.Send(RefreshMsg{}) }

	sched, err := presenter.NewScheduler(opt.Refresh, refresh, opt.Logger)
	if err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if opt.WatchPath != "" {
		fw, err := watch.New(opt.WatchPath, refresh, opt.Logger)
		if err != nil {
			return err
		}
		if err := fw.Start(ctx); err != nil {
			opt.Logger.Warn("file watch disabled", "err", err)
		}
		defer fw.Stop()
	}

	_, err = prog.Run()
	return err
}
