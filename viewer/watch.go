package viewer

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const watchSettle = 250 * time.Millisecond

// dirWatcher reports that the set of files in a directory changed. Bursts
// of events are coalesced into one onChange call after they settle.
type dirWatcher struct {
	dir      string
	fs       *fsnotify.Watcher
	onChange func()
	settle   time.Duration
	done     chan struct{}
	once     sync.Once
	log      zerolog.Logger
}

func newDirWatcher(dir string, settle time.Duration, onChange func(), log zerolog.Logger) (*dirWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &dirWatcher{
		dir:      dir,
		fs:       fsw,
		onChange: onChange,
		settle:   settle,
		done:     make(chan struct{}),
		log:      log,
	}
	go w.loop()
	return w, nil
}

func (w *dirWatcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			// Content writes do not change the listing.
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug().Str("event", ev.String()).Msg("directory changed")
			if timer == nil {
				timer = time.NewTimer(w.settle)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.settle)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.onChange()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Str("dir", w.dir).Msg("watch error")
		}
	}
}

// Close stops watching. It is safe to call more than once.
func (w *dirWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}
