package content

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Update is one reload attempt. Exactly one of Table and Err is set.
type Update struct {
	Table *Table
	Err   error
}

// Watch reloads path whenever it is written, created or renamed into place
// and delivers the result on the returned channel. Only the newest update is
// kept if the reader falls behind. The channel closes when ctx is done.
func Watch(ctx context.Context, path string) (<-chan Update, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("content watcher: %w", err)
	}
	// editors often replace the file, so watch the directory
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	updates := make(chan Update, 1)
	go func() {
		defer close(updates)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
					continue
				}
				table, err := Load(abs)
				slog.Debug("content reloaded", "path", abs, "op", event.Op.String(), "err", err)
				publish(updates, Update{Table: table, Err: err})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("content watcher error", "err", err)
			}
		}
	}()
	return updates, nil
}

// publish replaces any unread update with u. The goroutine in Watch is the
// only sender.
func publish(ch chan Update, u Update) {
	select {
	case ch <- u:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	ch <- u
}
