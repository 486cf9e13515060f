/*
Package asset holds stylesheet assets for the styling engine.

Stylesheets are loaded from a file system and kept in a Store, addressed
by handles. Replacing the content of a loaded stylesheet keeps its handle
and emits a Modified event, which the engine consumes to re-style the
owners referencing the handle. A Watcher re-loads stylesheets from disk
when their files change.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package asset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/npillmayer/ecss/cssom"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ecss.asset'.
func tracer() tracing.Trace {
	return tracing.Select("ecss.asset")
}

// Extension is the file extension of stylesheet assets.
const Extension = ".css"

// ErrNotAStyleSheet is returned for paths without the stylesheet extension.
var ErrNotAStyleSheet = errors.New("not a stylesheet")

// ErrUnknownHandle is returned for operations on handles not in the store.
var ErrUnknownHandle = errors.New("unknown stylesheet handle")

// Handle references a stylesheet in a Store. The zero handle is invalid.
type Handle uint32

func (h Handle) String() string {
	return fmt.Sprintf("sheet#%d", uint32(h))
}

// EventKind tells what happened to a stylesheet.
type EventKind uint8

// Kinds of asset events.
const (
	Added EventKind = iota + 1
	Modified
	Removed
)

func (k EventKind) String() string {
	switch k {
	case Added:
		return "added"
	case Modified:
		return "modified"
	case Removed:
		return "removed"
	}
	return "?"
}

// Event reports a change of a stylesheet in a store.
type Event struct {
	Kind   EventKind
	Handle Handle
}

// Store holds stylesheets by handle. It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	root   string
	fsys   fs.FS
	sheets map[Handle]*cssom.StyleSheet
	paths  map[string]Handle
	last   Handle
	events []Event
}

// Option configures a store.
type Option func(*Store)

// Root sets the directory stylesheets are loaded from. It is also the
// directory a Watcher observes. Default is the current directory.
func Root(dir string) Option {
	return func(s *Store) {
		s.root = dir
		s.fsys = os.DirFS(dir)
	}
}

// FS sets the file system stylesheets are loaded from, overriding Root
// for loading.
func FS(fsys fs.FS) Option {
	return func(s *Store) {
		s.fsys = fsys
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		root:   ".",
		fsys:   os.DirFS("."),
		sheets: make(map[Handle]*cssom.StyleSheet),
		paths:  make(map[string]Handle),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads a stylesheet file and parses it. Loading a path a second
// time re-parses it, keeping the handle.
func (s *Store) Load(p string) (Handle, error) {
	p = path.Clean(strings.TrimPrefix(p, "/"))
	if path.Ext(p) != Extension {
		return 0, fmt.Errorf("%w: %s", ErrNotAStyleSheet, p)
	}
	text, err := fs.ReadFile(s.fsys, p)
	if err != nil {
		return 0, err
	}
	return s.Set(p, string(text)), nil
}

// Set parses text as the content of the stylesheet at path p. If p is
// already known and the content hash differs, the stylesheet is replaced
// and a Modified event is emitted. Unchanged content is a no-op.
func (s *Store) Set(p string, text string) Handle {
	sheet := cssom.NewStyleSheet(p, text)
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.paths[p]; ok {
		if old := s.sheets[h]; old != nil && old.Hash() == sheet.Hash() {
			tracer().Debugf("%s unchanged", p)
			return h
		}
		s.sheets[h] = sheet
		s.events = append(s.events, Event{Kind: Modified, Handle: h})
		tracer().Infof("stylesheet %s modified", p)
		return h
	}
	s.last++
	h := s.last
	s.paths[p] = h
	s.sheets[h] = sheet
	s.events = append(s.events, Event{Kind: Added, Handle: h})
	tracer().Infof("stylesheet %s added as %s", p, h)
	return h
}

// Reload re-reads the file behind a handle.
func (s *Store) Reload(h Handle) error {
	p, ok := s.Path(h)
	if !ok {
		return ErrUnknownHandle
	}
	_, err := s.Load(p)
	return err
}

// Get returns the stylesheet for a handle.
func (s *Store) Get(h Handle) (*cssom.StyleSheet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sheet, ok := s.sheets[h]
	return sheet, ok
}

// Lookup returns the handle of a stylesheet path.
func (s *Store) Lookup(p string) (Handle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.paths[path.Clean(p)]
	return h, ok
}

// Path returns the path a handle has been loaded from.
func (s *Store) Path(h Handle) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for p, ph := range s.paths {
		if ph == h {
			return p, true
		}
	}
	return "", false
}

// Remove drops a stylesheet from the store and emits a Removed event.
func (s *Store) Remove(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sheets[h]; !ok {
		return
	}
	delete(s.sheets, h)
	for p, ph := range s.paths {
		if ph == h {
			delete(s.paths, p)
		}
	}
	s.events = append(s.events, Event{Kind: Removed, Handle: h})
}

// Drain returns the events which occurred since the last call to Drain.
func (s *Store) Drain() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	return events
}
