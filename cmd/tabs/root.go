package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/tabs/internal/action"
	"github.com/nikbrunner/tabs/internal/config"
	"github.com/nikbrunner/tabs/internal/host"
	"github.com/nikbrunner/tabs/internal/host/bridge"
	"github.com/nikbrunner/tabs/internal/host/cdp"
	"github.com/nikbrunner/tabs/internal/host/memory"
	"github.com/nikbrunner/tabs/internal/keyboard"
	"github.com/nikbrunner/tabs/internal/logging"
	"github.com/nikbrunner/tabs/internal/model"
	"github.com/nikbrunner/tabs/internal/picker"
	"github.com/nikbrunner/tabs/internal/search"
	"github.com/nikbrunner/tabs/internal/selector"
	"github.com/nikbrunner/tabs/internal/snapshot"
	"github.com/nikbrunner/tabs/internal/tui"
)

// connectTimeout bounds how long one-shot commands wait for the browser's
// first snapshot.
const connectTimeout = 10 * time.Second

// App carries state shared by all commands.
type App struct {
	ConfigPath string
	Config     config.Config

	closeLog func() error
}

func newRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "tabs [query...]",
		Short: "Keyboard-driven browser tab switcher",
		Long: `tabs - keyboard-driven browser tab switcher

Run without arguments for the interactive list. With a query, the best
matching tab is activated directly (a picker opens when several match).

Keys:
  ↑/↓          Move highlight
  Enter        Switch to highlighted tab
  type         Search (Backspace on empty query leaves search)
  Esc          Clear search
  Tab          Toggle selection
  Ctrl+X       Clear selection
  Ctrl+Y       Copy URLs of selected (or highlighted) tabs
  Alt+↑/↓      Move highlighted tab
  Ctrl+V       Toggle list/grid
  Ctrl+C       Quit`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(app.ConfigPath, cmd.Flags())
			if err != nil {
				return err
			}
			app.Config = cfg

			closeLog, err := logging.Setup(cfg.Log)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}
			app.closeLog = closeLog
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app.closeLog != nil {
				return app.closeLog()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return runQuickJump(cmd, app, strings.Join(args, " "))
			}
			return runTUI(app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Config file (default ~/.config/tabs/config.toml)")
	cmd.PersistentFlags().String("host", "", "Browser backend (memory|bridge|cdp)")
	cmd.PersistentFlags().String("addr", "", "Listen address for the bridge backend")
	cmd.PersistentFlags().String("cdp-url", "", "DevTools endpoint for the cdp backend")
	cmd.PersistentFlags().String("snapshot", "", "Tab snapshot (.json or .html) for the memory backend")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	return cmd
}

// openHost connects to the configured browser backend.
func openHost(cfg config.HostConfig) (host.Host, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		var tabs []model.Tab
		if cfg.Snapshot != "" {
			var err error
			tabs, err = snapshot.Load(cfg.Snapshot)
			if err != nil {
				return nil, err
			}
		}
		return memory.New(tabs), nil

	case config.BackendBridge:
		srv := bridge.New()
		if _, err := srv.Start(cfg.Addr); err != nil {
			return nil, fmt.Errorf("start bridge: %w", err)
		}
		return srv, nil

	case config.BackendCDP:
		h, err := cdp.Dial(cfg.CDPURL)
		if err != nil {
			return nil, fmt.Errorf("connect to browser: %w", err)
		}
		return h, nil
	}
	return nil, fmt.Errorf("unknown host backend %q", cfg.Backend)
}

// waitSnapshot blocks until the host reports its first full tab list.
func waitSnapshot(h host.Host, timeout time.Duration) ([]model.Tab, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-h.Events():
			if !ok {
				return nil, host.ErrNotConnected
			}
			if ev.Type == host.EventSnapshot {
				return selector.Sort(ev.Tabs), nil
			}
		case <-timer.C:
			return nil, fmt.Errorf("no browser connected within %s", timeout)
		}
	}
}

// runTUI runs the full interactive TUI.
func runTUI(app *App) error {
	cfg := app.Config
	h, err := openHost(cfg.Host)
	if err != nil {
		return err
	}
	defer h.Close()

	state := model.NewState()
	state.SetListView(cfg.ListView())
	sel := selector.New(0)

	d := action.New(action.Params{
		State:      state,
		Host:       h,
		Selector:   sel,
		Controller: keyboard.New(keyboard.Policy{IgnoreModifiers: cfg.Keyboard.IgnoreModifiers}),
		Timeout:    cfg.Host.Timeout,
	})

	m := tui.NewApp(tui.AppParams{
		State:      state,
		Dispatcher: d,
		Selector:   sel,
		Events:     h.Events(),
		Title:      "tabs · " + cfg.Host.Backend,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}

// runQuickJump ranks tabs against query and activates the chosen one.
func runQuickJump(cmd *cobra.Command, app *App, query string) error {
	h, err := openHost(app.Config.Host)
	if err != nil {
		return err
	}
	defer h.Close()

	tabs, err := waitSnapshot(h, connectTimeout)
	if err != nil {
		return err
	}

	results := search.FuzzySearchTabs(tabs, query)
	out := cmd.OutOrStdout()

	if len(results) == 0 {
		fmt.Fprintf(out, "No tabs found for '%s'\n", query)
		return nil
	}

	var tab model.Tab
	if len(results) == 1 {
		tab = results[0].Tab
		fmt.Fprintf(out, "Switching to: %s\n", tab.DisplayTitle())
	} else {
		p := tea.NewProgram(picker.New(results, query))
		finalModel, err := p.Run()
		if err != nil {
			return fmt.Errorf("run picker: %w", err)
		}
		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			return nil
		}
		var ok bool
		if tab, ok = finalPicker.SelectedTab(); !ok {
			return nil
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), app.Config.Host.Timeout)
	defer cancel()
	if err := h.Activate(ctx, tab.ID); err != nil {
		if errors.Is(err, host.ErrTabNotFound) {
			return fmt.Errorf("tab %q is gone", tab.DisplayTitle())
		}
		return fmt.Errorf("activate tab: %w", err)
	}
	return nil
}

// visibleTabs loads the host's tabs and applies query the way the list does.
func visibleTabs(app *App, query string) ([]model.Tab, error) {
	h, err := openHost(app.Config.Host)
	if err != nil {
		return nil, err
	}
	defer h.Close()

	tabs, err := waitSnapshot(h, connectTimeout)
	if err != nil {
		return nil, err
	}

	state := model.NewState()
	state.SetTabs(tabs)
	state.SetQuery(query)
	return selector.VisibleTabs(state), nil
}
