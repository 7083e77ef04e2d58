package source

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/golang/glog"
)

// Watch signals on the returned channel whenever the watched file changes.
// The parent directory is watched so that editors replacing the file by
// rename are still seen. Signals coalesce: the channel holds at most one
// pending signal. The channel is closed when ctx is done.
func Watch(ctx context.Context, src Source) (<-chan struct{}, error) {
	file, ok := src.(*File)
	if !ok {
		return nil, ErrUnsupported
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(file.Path)
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	glog.Infof("[source] watching %s", file.Path)

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer func() { _ = w.Close() }()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != file.Path || !relevant(ev.Op) {
					continue
				}
				select {
				case out <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				glog.Warningf("[source] watch error on %s: %v", file.Path, err)
			}
		}
	}()
	return out, nil
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) ||
		op.Has(fsnotify.Rename) || op.Has(fsnotify.Remove)
}
