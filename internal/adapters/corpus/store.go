// Package corpus provides read access to the verb corpus backing the quiz.
//
// The corpus lives in a JSON document mapping each infinitive to its three
// canonical forms, keyed with the German names used by the data files:
//
//	{"gehen": {"Präsens": "geht", "Präteritum": "ging", "Perfekt": "ist gegangen"}}
//
// Two optional side files contribute hint data in the same infinitive-keyed
// shape: translations (list of strings per verb) and example sentences.
// The corpus is parsed once on first access and held for the process
// lifetime; Reload swaps in a fresh snapshot and is the only mutation.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/okian/starkverb/internal/domain/model"
	"github.com/okian/starkverb/pkg/logger"
)

// Keys used by the on-disk verb forms document.
const (
	keyPraesens    = "Präsens"
	keyPraeteritum = "Präteritum"
	keyPerfekt     = "Perfekt"
)

// Store loads and caches the verb corpus. It is safe for concurrent use:
// reads see a consistent snapshot, and the first load is guarded so racing
// callers never parse the source twice or observe a half-built mapping.
type Store struct {
	verbsPath        string
	translationsPath string
	examplesPath     string

	mu      sync.RWMutex
	loaded  bool
	entries map[string]model.VerbEntry
	all     []model.VerbEntry

	logger logger.Logger
}

// NewStore creates a Store backed by the verb forms document at verbsPath.
// Nothing is read until the first access or an explicit Load.
func NewStore(verbsPath string, opts ...Option) *Store {
	s := &Store{
		verbsPath: verbsPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load parses the backing source immediately. Callers that want the corpus
// validated before serving traffic (the usual case) call this at startup;
// otherwise the first read triggers it.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}
	return s.reloadLocked()
}

// Reload re-parses the backing source and swaps in the fresh snapshot.
// On failure the previous snapshot stays in place and the error is returned.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked()
}

// reloadLocked parses all backing files into a new mapping and installs it.
// Must be called with s.mu held for writing.
func (s *Store) reloadLocked() error {
	entries, err := s.parse()
	if err != nil {
		return err
	}

	all := make([]model.VerbEntry, 0, len(entries))
	for _, e := range entries {
		all = append(all, e)
	}
	// JSON objects carry no order; sort for a stable snapshot.
	sort.Slice(all, func(i, j int) bool { return all[i].Infinitive < all[j].Infinitive })

	s.entries = entries
	s.all = all
	s.loaded = true
	return nil
}

// parse reads and validates the verb forms document plus the optional hint
// files, without touching store state.
func (s *Store) parse() (map[string]model.VerbEntry, error) {
	raw, err := os.ReadFile(s.verbsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrLoad, s.verbsPath, err)
	}

	var forms map[string]map[string]string
	if err := json.Unmarshal(raw, &forms); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrLoad, s.verbsPath, err)
	}
	if len(forms) == 0 {
		return nil, fmt.Errorf("%w: %s contains no verbs", ErrLoad, s.verbsPath)
	}

	translations, err := loadHints(s.translationsPath)
	if err != nil {
		return nil, err
	}
	examples, err := loadHints(s.examplesPath)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]model.VerbEntry, len(forms))
	for infinitive, f := range forms {
		set := model.FormSet{
			Praesens:    f[keyPraesens],
			Praeteritum: f[keyPraeteritum],
			Perfekt:     f[keyPerfekt],
		}
		if !set.Complete() {
			return nil, fmt.Errorf("%w: verb %q is missing one of %s/%s/%s",
				ErrLoad, infinitive, keyPraesens, keyPraeteritum, keyPerfekt)
		}
		entries[infinitive] = model.VerbEntry{
			Infinitive:   infinitive,
			Forms:        set,
			Translations: translations[infinitive],
			Examples:     examples[infinitive],
		}
	}
	return entries, nil
}

// loadHints reads an optional infinitive-keyed list-of-strings document.
// An empty path yields no hints; a present but unreadable or malformed file
// is a load error, since it indicates a broken deployment.
func loadHints(path string) (map[string][]string, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrLoad, path, err)
	}
	var hints map[string][]string
	if err := json.Unmarshal(raw, &hints); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrLoad, path, err)
	}
	return hints, nil
}

// ensureLoaded makes sure a snapshot exists, loading lazily on first read.
func (s *Store) ensureLoaded() error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.Load()
}

// All returns a snapshot of every corpus entry, ordered by infinitive.
// Callers must not mutate the returned slice.
func (s *Store) All() ([]model.VerbEntry, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.all, nil
}

// Lookup returns the entry for infinitive, or ErrUnknownVerb.
func (s *Store) Lookup(infinitive string) (model.VerbEntry, error) {
	if err := s.ensureLoaded(); err != nil {
		return model.VerbEntry{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[infinitive]
	if !ok {
		return model.VerbEntry{}, fmt.Errorf("%w: %q", ErrUnknownVerb, infinitive)
	}
	return entry, nil
}

// Len returns the number of verbs in the corpus.
func (s *Store) Len() (int, error) {
	if err := s.ensureLoaded(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}
