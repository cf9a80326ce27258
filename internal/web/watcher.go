package web

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 100 * time.Millisecond

// Watcher reloads a Templates set when files in its directory change.
type Watcher struct {
	templates *Templates
	debounce  time.Duration

	// OnReload, if set, is called after every reload attempt.
	OnReload func(err error)
}

func NewWatcher(t *Templates) *Watcher {
	return &Watcher{templates: t, debounce: defaultDebounce}
}

// Run blocks until ctx is cancelled. The template directory may be missing
// at start or removed later; it is picked up again once it is created.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(w.debounce)
		} else {
			timer.Reset(w.debounce)
		}
		pending = timer.C
	}

	dir := filepath.Clean(w.templates.Dir())

	// the parent is watched so the directory can be deleted and recreated
	if err := fw.Add(filepath.Dir(dir)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(dir), err)
	}
	watchingDir := fw.Add(dir) == nil
	switch {
	case !watchingDir:
		log.Printf("[warn] component=templates dir=%s message=directory missing, waiting for it", dir)
	case !w.templates.Loaded():
		schedule()
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) == dir {
				switch {
				case ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename):
					watchingDir = false
					log.Printf("[warn] component=templates dir=%s message=directory removed, waiting for it", dir)
					schedule()
				case ev.Has(fsnotify.Create):
					if err := fw.Add(dir); err == nil {
						watchingDir = true
						schedule()
					}
				}
				continue
			}
			if watchingDir && isTemplateChange(ev) {
				schedule()
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Printf("[error] component=templates operation=watch error=%v", err)

		case <-pending:
			pending = nil
			err := w.templates.Reload()
			if err != nil {
				log.Printf("[error] component=templates operation=reload error=%v", err)
			} else {
				log.Printf("[info] component=templates operation=reload dir=%s", dir)
			}
			if w.OnReload != nil {
				w.OnReload(err)
			}
		}
	}
}

func isTemplateChange(ev fsnotify.Event) bool {
	if !strings.HasSuffix(ev.Name, ".html") {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) ||
		ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}
