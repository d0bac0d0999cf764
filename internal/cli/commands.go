package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/export"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/presenter"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
	"github.com/idilsaglam/tada/internal/watch"
)

func (a *app) addCmd() *cobra.Command {
	var desc, date string
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task (title can be multiple words)",
		Example: `  tada add "Buy milk"
  tada add Quarterly report -d "numbers from finance" --date 2026-10-31`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usagef("usage: tada add <title...> [-d desc] [--date YYYY-MM-DD]")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _, err := a.p.OnAdd(model.Draft{
				Title: strings.Join(args, " "),
				Desc:  desc,
				Date:  date,
			})
			if err != nil {
				return fmt.Errorf("add: %w", err)
			}
			ui.OK(fmt.Sprintf("added %q (%d)", t.Title, t.ID))
			return nil
		},
	}
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "description")
	cmd.Flags().StringVar(&date, "date", "", "deadline, YYYY-MM-DD")
	return cmd
}

func (a *app) lsCmd() *cobra.Command {
	var opt ui.ListOptions
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "Print tasks sorted by urgency",
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.p.View()
			if err != nil {
				return err
			}
			ui.RenderAgenda(cmd.OutOrStdout(), view, opt)
			return nil
		},
	}
	cmd.Flags().BoolVar(&opt.Group, "group", false, "group output by pending/done")
	cmd.Flags().BoolVar(&opt.IDs, "ids", false, "show task ids")
	return cmd
}

// resolve turns a position or id argument into a task id.
func (a *app) resolve(ref string) (int64, error) {
	view, err := a.p.View()
	if err != nil {
		return 0, err
	}
	id, err := presenter.Resolve(ref, view)
	if err != nil && !errors.Is(err, presenter.ErrNotFound) {
		return 0, &usageError{msg: err.Error()}
	}
	if err != nil {
		ui.Hint("Hint: run `tada ls` to see valid positions")
		return 0, err
	}
	return id, nil
}

func (a *app) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <position|id>",
		Short: "Toggle completion of a task",
		Args:  exactArgs(1, "tada done <position|id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolve(args[0])
			if err != nil {
				return fmt.Errorf("done: %w", err)
			}
			if _, err := a.p.OnToggle(id); err != nil {
				return fmt.Errorf("done: %w", err)
			}
			ui.OK("toggled")
			return nil
		},
	}
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <position|id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    exactArgs(1, "tada rm <position|id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolve(args[0])
			if err != nil {
				return fmt.Errorf("rm: %w", err)
			}
			if _, err := a.p.OnDelete(id); err != nil {
				return fmt.Errorf("rm: %w", err)
			}
			ui.OK("removed")
			return nil
		},
	}
}

func (a *app) uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive list",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runUI(cmd)
		},
	}
}

func (a *app) runUI(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return tui.Run(ctx, a.p, tui.Options{
		Refresh:   a.cfg.Refresh,
		WatchPath: a.watchPath(),
		Logger:    a.log,
	})
}

// watchPath is the file to watch for outside changes; the sqlite backend has
// no single file worth watching.
func (a *app) watchPath() string {
	if a.cfg.Backend != config.BackendJSON {
		return ""
	}
	return a.slot
}

func (a *app) watchCmd() *cobra.Command {
	var opt ui.ListOptions
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-print the task list on the refresh schedule",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd, opt)
		},
	}
	cmd.Flags().BoolVar(&opt.Group, "group", false, "group output by pending/done")
	cmd.Flags().BoolVar(&opt.IDs, "ids", false, "show task ids")
	return cmd
}

func (a *app) watch(ctx context.Context, cmd *cobra.Command, opt ui.ListOptions) error {
	out := cmd.OutOrStdout()
	var mu sync.Mutex
	render := func() {
		mu.Lock()
		defer mu.Unlock()
		view, err := a.p.View()
		if err != nil {
			a.log.Error("refresh failed", "err", err)
			return
		}
		fmt.Fprint(out, ui.C("\033[H\033[2J", ""))
		ui.RenderAgenda(out, view, opt)
		fmt.Fprintln(out, ui.C("\033[90m", "refreshed "+a.p.Now().Format("15:04:05")+" • ctrl+c to stop"))
	}

	sched, err := presenter.NewScheduler(a.cfg.Refresh, render, a.log)
	if err != nil {
		return err
	}
	render()
	sched.Start()
	defer sched.Stop()

	if path := a.watchPath(); path != "" {
		fw, err := watch.New(path, render, a.log)
		if err != nil {
			return err
		}
		if err := fw.Start(ctx); err != nil {
			a.log.Warn("file watch disabled", "err", err)
		}
		defer fw.Stop()
	}

	<-ctx.Done()
	return nil
}

func (a *app) exportCmd() *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the sorted task list (json, yaml, ics, pdf)",
		Example: `  tada export --format ics -o tasks.ics
  tada export -o tasks.pdf`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = "json"
				if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" {
					format = ext
				}
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return &usageError{msg: err.Error()}
			}
			view, err := a.p.View()
			if err != nil {
				return err
			}

			write := func(w io.Writer) error { return export.Write(w, f, view, a.p.Now()) }
			if output == "" || output == "-" {
				if err := write(cmd.OutOrStdout()); err != nil {
					return fmt.Errorf("export: %w", err)
				}
				return nil
			}
			if err := writeFile(output, write); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			ui.OK(fmt.Sprintf("exported %d tasks to %s", len(view), output))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "json, yaml, ics or pdf (default from -o extension, else json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// writeFile creates path and fills it with write. On any failure, including
// the final close, the partial file is removed.
func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  noArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "tada "+Version)
		},
	}
}
