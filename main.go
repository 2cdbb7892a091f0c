package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	os.Exit(run())
}

func fatal(format string, args ...any) int {
	fmt.Fprintf(os.Stderr, "rtasks: "+format+"\n", args...)
	return 1
}

func run() int {
	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return fatal("loading config %s: %v", cfgPath, err)
	}

	settings, err := resolveSettings(cfg)
	if err != nil {
		return fatal("%v", err)
	}

	applyColorProfile(settings.Color)
	initRenderer(settings.Theme)

	if err := os.MkdirAll(settings.DataDir, 0755); err != nil {
		return fatal("%v", &StoreError{Kind: KindIO, Op: "create", Path: settings.DataDir, Err: err})
	}

	logFile, err := setupLogger(settings.DataDir, settings.LogLevel)
	if err != nil {
		return fatal("opening log: %v", err)
	}
	defer logFile.Close()

	logger.Info().
		Str("config", cfgPath).
		Str("data_dir", settings.DataDir).
		Str("theme", settings.Theme).
		Dur("redraw_interval", settings.RedrawInterval).
		Bool("watch", settings.Watch).
		Msg("starting")

	store := NewStore(settings.DataDir)

	root, ok, err := LoadWithSpinner(store)
	if err != nil {
		logger.Error().Err(err).Msg("load failed")
		return fatal("%v", err)
	}
	if !ok {
		return 0
	}

	var watcher *Watcher
	var debouncer *Debouncer

	if settings.Watch {
		watcher, err = NewWatcher(store)
		if err != nil {
			logger.Warn().Err(err).Msg("store watcher disabled")
		} else {
			defer watcher.Close()
			debouncer = NewDebouncer(watchDebounce)
			defer debouncer.Stop()
		}
	}

	p := tea.NewProgram(newModel(store, root, settings.RedrawInterval, watcher, debouncer), tea.WithAltScreen())

	if debouncer != nil {
		debouncer.SetProgram(p)
	}

	final, err := p.Run()
	if err != nil {
		return fatal("running TUI: %v", err)
	}

	if m, ok := final.(model); ok && m.err != nil {
		return fatal("%v", m.err)
	}

	logger.Info().Msg("bye")
	return 0
}
