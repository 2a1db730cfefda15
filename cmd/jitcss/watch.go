package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/npillmayer/jitcss"
	"github.com/npillmayer/jitcss/engine"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild a stylesheet whenever content or configuration changes",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	watchCmd.Flags().Duration("debounce", 100*time.Millisecond, "quiet period before a rebuild")
	rootCmd.AddCommand(watchCmd)
}

// watcher collects file system events into change batches. A batch is
// delivered after no event arrived for the debounce period.
type watcher struct {
	fw       *fsnotify.Watcher
	watched  map[string]bool
	ignored  map[string]bool // files we write ourselves
	debounce time.Duration
}

func newWatcher(debounce time.Duration) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &watcher{
		fw:       fw,
		watched:  make(map[string]bool),
		ignored:  make(map[string]bool),
		debounce: debounce,
	}, nil
}

// add watches a directory and its subdirectories.
func (w *watcher) add(dir string) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if w.watched[path] {
			return nil
		}
		if err := w.fw.Add(path); err != nil {
			tracer().Debugf("cannot watch %s: %v", path, err)
			return nil
		}
		w.watched[path] = true
		return nil
	})
}

// next blocks until a batch of changes is complete. It reports false when
// ctx is done or the watcher failed.
func (w *watcher) next(ctx context.Context) bool {
	var timer <-chan time.Time
	pending := false
	for {
		select {
		case <-ctx.Done():
			return false
		case event, ok := <-w.fw.Events:
			if !ok {
				return false
			}
			if w.ignored[filepath.Clean(event.Name)] {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.add(event.Name)
				}
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending = true
				timer = time.After(w.debounce)
			}
		case <-timer:
			if pending {
				return true
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return false
			}
			// Watch errors are not fatal.
			tracer().Errorf("watch: %v", err)
		}
	}
}

func (w *watcher) close() {
	w.fw.Close()
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	debounce, _ := cmd.Flags().GetDuration("debounce")
	w, err := newWatcher(debounce)
	if err != nil {
		return err
	}
	defer w.close()
	if out, _ := cmd.Flags().GetString("output"); out != "" && out != "-" {
		w.ignored[filepath.Clean(out)] = true
	}
	log := &engine.Log{}
	proc := jitcss.New(jitcss.WithReporter(log))
	rebuild := func() {
		start := time.Now()
		in, err := input(cmd)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		res, err := proc.Process(in)
		report(log)
		if err != nil {
			// keep watching, the next change may fix it
			fmt.Fprintln(os.Stderr, err)
			return
		}
		if err := output(cmd, res.CSS); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		for _, dir := range res.Dirs {
			w.add(dir)
		}
		if in.From != "" {
			w.add(filepath.Dir(in.From))
		}
		if res.ConfigPath != "" {
			w.add(filepath.Dir(res.ConfigPath))
		}
		fmt.Fprintf(os.Stderr, "Rebuilt in %v.\n", time.Since(start).Round(time.Millisecond))
	}
	rebuild()
	fmt.Fprintln(os.Stderr, "Watching for changes...")
	for w.next(ctx) {
		rebuild()
	}
	return nil
}
