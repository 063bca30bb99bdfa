package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/nyml-lang/go-nyml"
)

var watchFlags struct {
	v2       bool
	debounce time.Duration
}

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Re-validate a document whenever it changes",
	Long: `Parse a document, then parse it again every time it is written, logging
the outcome. Runs until interrupted.

Examples:
  nyml watch config.nyml
  nyml watch --v2 --debounce 500ms notes.nyml`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchFlags.v2, "v2", false, "parse the V2 dialect")
	watchCmd.Flags().DurationVar(&watchFlags.debounce, "debounce", 100*time.Millisecond, "quiet period before re-parsing")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path := args[0]
	check := func() { checkFile(logger, path, watchFlags.v2) }
	check()

	fw, err := newFileWatcher(path, watchFlags.debounce, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	return fw.Run(ctx, check)
}

// checkFile parses path and logs the outcome. It reports whether the
// document is valid.
func checkFile(log *slog.Logger, path string, v2 bool) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("Failed to read document", "path", path, "error", err)
		return false
	}

	if v2 {
		log.Info("Document parsed", "path", path, "items", len(nyml.ParseV2(data)))
		return true
	}

	doc, err := nyml.ParseEntries(data)
	if err != nil {
		var perr *nyml.ParseError
		if errors.As(err, &perr) {
			log.Error("Document invalid", "path", path, "code", perr.Code, "line", perr.Line, "error", perr.Message)
		} else {
			log.Error("Document invalid", "path", path, "error", err)
		}
		return false
	}
	log.Info("Document parsed", "path", path, "entries", len(doc.Entries))
	return true
}

// fileWatcher reports writes to a single file. It watches the parent
// directory so that editors which replace the file on save are followed.
type fileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce *debouncer
	log      *slog.Logger
}

func newFileWatcher(path string, interval time.Duration, log *slog.Logger) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("failed to watch path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch path: %w", err)
	}

	return &fileWatcher{
		watcher:  w,
		path:     abs,
		debounce: newDebouncer(interval),
		log:      log,
	}, nil
}

// Run calls onChange after every burst of writes to the file. It blocks
// until ctx is cancelled.
func (fw *fileWatcher) Run(ctx context.Context, onChange func()) error {
	fw.log.Info("File watcher started", "path", fw.path, "debounce_ms", fw.debounce.interval.Milliseconds())

	for {
		select {
		case <-ctx.Done():
			fw.debounce.Stop()
			fw.log.Info("File watcher stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != fw.path || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			fw.log.Debug("File event detected", "path", event.Name, "op", event.Op.String())
			fw.debounce.Trigger(onChange)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			fw.log.Error("File watcher error", "error", err)
		}
	}
}

// Close stops pending callbacks and releases the watcher.
func (fw *fileWatcher) Close() error {
	fw.debounce.Stop()
	return fw.watcher.Close()
}

// debouncer runs the most recent callback once no trigger has arrived for
// interval.
type debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	running sync.WaitGroup
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval}
}

func (d *debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		if d.stopped {
			d.mu.Unlock()
			return
		}
		d.running.Add(1)
		d.mu.Unlock()

		defer d.running.Done()
		callback()
	})
}

// Stop cancels pending callbacks and waits for a running one to return.
func (d *debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	d.running.Wait()
}
