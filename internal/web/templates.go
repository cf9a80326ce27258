package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"path/filepath"
	"sync"
)

// ErrTemplatesUnavailable is returned by Render while no template set is loaded.
var ErrTemplatesUnavailable = errors.New("templates unavailable")

// Templates holds the parsed *.html files of a directory. A failed Reload
// clears the set.
type Templates struct {
	dir string

	mu      sync.RWMutex
	set     *template.Template
	loadErr error
}

// NewTemplates parses dir/*.html. A parse failure is recorded, not returned,
// so the server can start before the templates exist.
func NewTemplates(dir string) *Templates {
	t := &Templates{dir: dir}
	_ = t.Reload()
	return t
}

func (t *Templates) Dir() string { return t.dir }

// Reload re-parses the template directory and swaps the set.
func (t *Templates) Reload() error {
	pattern := filepath.Join(t.dir, "*.html")

	matches, err := filepath.Glob(pattern)
	if err == nil && len(matches) == 0 {
		err = fmt.Errorf("no templates match %s", pattern)
	}

	var set *template.Template
	if err == nil {
		set, err = template.ParseFiles(matches...)
		if err != nil {
			err = fmt.Errorf("parse templates: %w", err)
		}
	}

	t.mu.Lock()
	t.set = set
	t.loadErr = err
	t.mu.Unlock()

	return err
}

// Loaded reports whether a template set is currently available.
func (t *Templates) Loaded() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.set != nil
}

// Err returns the error from the last load, if any.
func (t *Templates) Err() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.loadErr
}

// Render executes the named template into a buffer. Nothing is written to
// the caller unless execution succeeds.
func (t *Templates) Render(name string, data any) ([]byte, error) {
	t.mu.RLock()
	set, loadErr := t.set, t.loadErr
	t.mu.RUnlock()

	if set == nil {
		if loadErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrTemplatesUnavailable, loadErr)
		}
		return nil, ErrTemplatesUnavailable
	}

	tpl := set.Lookup(name)
	if tpl == nil {
		return nil, fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
