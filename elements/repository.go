package elements

import (
	"encoding/json"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/golang/glog"
	"github.com/spf13/afero"
)

// DefaultDir is the directory, relative to the resource root, holding the
// element definition files.
const DefaultDir = "elementValues"

// fileSuffix selects element definition files.
const fileSuffix = ".json"

// Repository maps element keys to entries. The definition files are scanned
// at most once, by the first call to Init; lookups and puts are safe for
// concurrent use.
type Repository struct {
	fs  afero.Fs
	dir string

	once        sync.Once
	mu          sync.RWMutex
	initialized bool
	entries     map[string]Entry
}

// New returns an empty repository that will load the definition files
// directly inside dir on fs.
func New(fs afero.Fs, dir string) *Repository {
	if dir == "" {
		dir = DefaultDir
	}
	return &Repository{
		fs:      fs,
		dir:     dir,
		entries: make(map[string]Entry),
	}
}

// Dir returns the directory the repository loads from.
func (r *Repository) Dir() string {
	return r.dir
}

// Init scans the source directory and loads every definition file in it.
// Only the first call performs the scan; concurrent callers wait for it to
// finish. Files that cannot be read or decoded are logged and skipped.
func (r *Repository) Init() {
	r.once.Do(r.load)
}

// Initialized reports whether Init has completed.
func (r *Repository) Initialized() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.initialized
}

func (r *Repository) load() {
	files := r.files()
	if len(files) == 0 {
		glog.Warningf("No element JSON files found under %q. Skipping element repository init.", r.dir)
		r.mu.Lock()
		r.initialized = true
		r.mu.Unlock()
		return
	}

	loaded := make(map[string]Entry)
	for _, name := range files {
		locators, err := r.readFile(name)
		if err != nil {
			glog.Warningf("Failed to load element file %q: %v", name, err)
			continue
		}
		for _, l := range locators {
			if l.Key == "" {
				glog.Warningf("Element file %q: skipping element without a key", name)
				continue
			}
			if !l.Type.Valid() {
				glog.Warningf("Element file %q: element %q has unknown type %q", name, l.Key, l.Type)
			}
			loaded[l.Key] = LocatorEntry(l)
		}
	}

	r.mu.Lock()
	for k, e := range loaded {
		r.entries[k] = e
	}
	r.initialized = true
	n := len(r.entries)
	r.mu.Unlock()

	glog.Infof("Element repository initialized. Total keys: %d", n)
}

// files returns the sorted names of the definition files directly inside the
// source directory.
func (r *Repository) files() []string {
	infos, err := afero.ReadDir(r.fs, r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			glog.Warningf("Element directory not found: %q", r.dir)
		} else {
			glog.Warningf("Unable to list element directory %q: %v", r.dir, err)
		}
		return nil
	}

	var names []string
	for _, fi := range infos {
		if fi.IsDir() || !strings.HasSuffix(fi.Name(), fileSuffix) {
			continue
		}
		names = append(names, fi.Name())
	}
	sort.Strings(names)
	return names
}

func (r *Repository) readFile(name string) ([]Locator, error) {
	buf, err := afero.ReadFile(r.fs, path.Join(r.dir, name))
	if err != nil {
		return nil, err
	}
	var locators []Locator
	if err := json.Unmarshal(buf, &locators); err != nil {
		return nil, err
	}
	return locators, nil
}

// Lookup returns the locator stored under key. It reports false when the key
// is absent or holds a scalar.
func (r *Repository) Lookup(key string) (Locator, bool) {
	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()
	if !ok {
		return Locator{}, false
	}
	return e.Locator()
}

// Put stores a scalar under key, replacing any previous entry, including a
// locator.
func (r *Repository) Put(key, value string) {
	r.mu.Lock()
	r.entries[key] = ScalarEntry(value)
	r.mu.Unlock()
}

// Scalar returns the display form of the entry under key.
func (r *Repository) Scalar(key string) (string, bool) {
	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()
	if !ok {
		return "", false
	}
	return e.String(), true
}

// Entry returns the raw entry under key.
func (r *Repository) Entry(key string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[key]
	return e, ok
}

// Len returns the number of entries.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Keys returns every key in lexical order.
func (r *Repository) Keys() []string {
	r.mu.RLock()
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	r.mu.RUnlock()
	sort.Strings(keys)
	return keys
}
