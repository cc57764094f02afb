package index

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jonwraymond/docindex/document"
	"github.com/jonwraymond/docindex/search"
)

// DefaultCacheSize is the number of cached query results when
// Options.CacheSize is zero.
const DefaultCacheSize = 128

// Adapter is the search engine capability set the index depends on.
// *search.Engine implements it.
type Adapter interface {
	Add(doc document.Document) error
	RemoveWhere(pred document.Predicate) ([]document.Document, error)
	Query(term string, limit int) (search.Results, error)
	Lookup(url string) (document.Document, bool)
	Export() search.IndexState
	Len() int
	Close() error
}

// Builder creates an Adapter over the weighted fields.
type Builder func(fields []search.Field, initial []document.Document, opts search.QueryOptions) (Adapter, error)

// Options configures an Index.
type Options struct {
	// Logger receives operational logs. Default: slog.Default().
	Logger *slog.Logger

	// Fields is the weighted field specification. Default: search.DefaultFields().
	Fields []search.Field

	// Query tunes matching. Default: search.DefaultQueryOptions().
	Query *search.QueryOptions

	// CacheSize bounds the query result cache. Zero uses DefaultCacheSize,
	// a negative value disables caching.
	CacheSize int

	// Builder creates the engine on Init. Default: BuildEngine.
	Builder Builder
}

type cacheKey struct {
	term  string
	limit int
}

// Index coordinates identity-aware mutations and searches over an engine.
type Index struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	fields  []search.Field
	query   search.QueryOptions
	build   Builder
	engine  Adapter
	cache   *lru.Cache[cacheKey, search.Results]
	stats   *Stats
	version uint64

	listenersMu    sync.RWMutex
	listeners      map[uint64]ChangeListener
	nextListenerID uint64
}

// BuildEngine is the default Builder, backed by search.Build.
func BuildEngine(fields []search.Field, initial []document.Document, opts search.QueryOptions) (Adapter, error) {
	eng, err := search.Build(fields, initial, opts)
	if err != nil {
		return nil, err
	}
	return eng, nil
}

// New creates an uninitialized index. Call Init before mutating it.
func New(opts Options) *Index {
	ix := &Index{
		logger:    opts.Logger,
		fields:    slices.Clone(opts.Fields),
		build:     opts.Builder,
		stats:     NewStats(),
		listeners: make(map[uint64]ChangeListener),
	}
	if ix.logger == nil {
		ix.logger = slog.Default()
	}
	if len(ix.fields) == 0 {
		ix.fields = search.DefaultFields()
	}
	if opts.Query != nil {
		ix.query = *opts.Query
	} else {
		ix.query = search.DefaultQueryOptions()
	}
	if ix.build == nil {
		ix.build = BuildEngine
	}

	size := opts.CacheSize
	if size == 0 {
		size = DefaultCacheSize
	}
	if size > 0 {
		cache, err := lru.New[cacheKey, search.Results](size)
		if err != nil {
			ix.logger.Warn("query cache disabled", "size", size, "error", err)
		} else {
			ix.cache = cache
		}
	}
	return ix
}

// Init builds an empty engine, discarding every previously indexed document.
// It may be called any number of times. Stats are kept.
func (ix *Index) Init() error {
	eng, err := ix.build(ix.fields, nil, ix.query)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}

	ix.mu.Lock()
	old := ix.engine
	ix.engine = eng
	ix.purgeCache()
	ix.version++
	ev := ChangeEvent{Type: ChangeReset, Version: ix.version}
	ix.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			ix.logger.Warn("failed to close previous engine", "error", err)
		}
	}
	ix.logger.Debug("index initialized", "fields", len(ix.fields))
	ix.notify(ev)
	return nil
}

// Close releases the engine. The index behaves as uninitialized afterwards
// until Init is called again.
func (ix *Index) Close() error {
	ix.mu.Lock()
	eng := ix.engine
	ix.engine = nil
	ix.purgeCache()
	ix.mu.Unlock()

	if eng == nil {
		return nil
	}
	return eng.Close()
}

// InsertNew normalizes raw and indexes it, merging with any document that
// already has the same URL. It fails with document.ErrMissingIdentity before
// touching the index when raw has no URL.
func (ix *Index) InsertNew(raw any) error {
	doc, err := document.Normalize(raw)
	if err != nil {
		return err
	}

	ix.mu.Lock()
	if ix.engine == nil {
		ix.mu.Unlock()
		return ErrNotInitialized
	}

	removed, err := ix.engine.RemoveWhere(document.ByURL(doc.URL))
	if err != nil {
		ix.mu.Unlock()
		return fmt.Errorf("upsert %s: %w", doc.URL, err)
	}

	merged := doc
	if len(removed) > 0 {
		merged = document.Merge(removed[0], doc)
	}
	if err := ix.engine.Add(merged); err != nil {
		ix.restoreLocked(removed)
		ix.mu.Unlock()
		return fmt.Errorf("upsert %s: %w", doc.URL, err)
	}

	ix.purgeCache()
	ix.version++
	ev := ChangeEvent{Type: ChangeUpserted, URL: doc.URL, Version: ix.version}
	ix.mu.Unlock()

	ix.logger.Debug("document upserted", "url", doc.URL, "merged", len(removed) > 0)
	ix.notify(ev)
	return nil
}

// Upsert is InsertNew.
func (ix *Index) Upsert(raw any) error {
	return ix.InsertNew(raw)
}

// UpdateField sets one updatable field on the document identified by url.
//
// An unknown field name, a value of the wrong type or an unknown url is
// logged and ignored. The document is always re-added, unchanged if the
// update could not be applied.
func (ix *Index) UpdateField(url, name string, value any) error {
	ix.mu.Lock()
	if ix.engine == nil {
		ix.mu.Unlock()
		return ErrNotInitialized
	}

	field, err := document.ParseField(name)
	if err != nil {
		ix.mu.Unlock()
		ix.logger.Warn("could not update field", "url", url, "field", name, "error", err)
		return nil
	}

	removed, err := ix.engine.RemoveWhere(document.ByURL(url))
	if err != nil {
		ix.mu.Unlock()
		return fmt.Errorf("update %s: %w", url, err)
	}
	if len(removed) == 0 {
		ix.mu.Unlock()
		ix.logger.Debug("update target not found", "url", url, "field", name)
		return nil
	}

	doc := removed[0]
	updated := doc.Clone()
	applied := true
	if err := updated.Set(field, value); err != nil {
		ix.logger.Warn("could not update field", "url", url, "field", name, "error", err)
		updated = doc
		applied = false
	}
	if err := ix.engine.Add(updated); err != nil {
		ix.restoreLocked(removed)
		ix.mu.Unlock()
		return fmt.Errorf("update %s: %w", url, err)
	}

	ix.purgeCache()
	var events []ChangeEvent
	if applied {
		ix.version++
		events = append(events, ChangeEvent{Type: ChangeUpdated, URL: url, Version: ix.version})
	}
	ix.mu.Unlock()

	ix.notify(events...)
	return nil
}

// Remove deletes every document matching pred and returns them. The result
// is empty, never nil, when nothing matched.
func (ix *Index) Remove(pred document.Predicate) ([]document.Document, error) {
	if pred == nil {
		return nil, ErrNilPredicate
	}

	ix.mu.Lock()
	if ix.engine == nil {
		ix.mu.Unlock()
		return nil, ErrNotInitialized
	}

	removed, err := ix.engine.RemoveWhere(pred)
	if err != nil {
		ix.mu.Unlock()
		return nil, fmt.Errorf("remove: %w", err)
	}
	if removed == nil {
		removed = []document.Document{}
	}

	var events []ChangeEvent
	if len(removed) > 0 {
		ix.purgeCache()
		ix.version++
		for _, doc := range removed {
			events = append(events, ChangeEvent{Type: ChangeRemoved, URL: doc.URL, Version: ix.version})
		}
	}
	ix.mu.Unlock()

	if len(removed) > 0 {
		ix.logger.Debug("documents removed", "count", len(removed))
	}
	ix.notify(events...)
	return removed, nil
}

// Search returns at most limit results for term, best match first. A
// non-positive limit returns every match. An uninitialized index returns no
// results and no error.
func (ix *Index) Search(term string, limit int) (search.Results, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.engine == nil {
		return search.Results{}, nil
	}
	if limit < 0 {
		limit = 0
	}

	key := cacheKey{term: term, limit: limit}
	if ix.cache != nil {
		if cached, ok := ix.cache.Get(key); ok {
			return cloneResults(cached), nil
		}
	}

	results, err := ix.engine.Query(term, limit)
	if err != nil {
		if errors.Is(err, search.ErrClosed) {
			return search.Results{}, nil
		}
		return nil, fmt.Errorf("search %q: %w", term, err)
	}

	if ix.cache != nil {
		ix.cache.Add(key, cloneResults(results))
	}
	return results, nil
}

// Handle exports the engine state for diagnostics. Before Init it describes
// an empty index.
func (ix *Index) Handle() search.IndexState {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.engine == nil {
		return search.IndexState{
			Fields:    slices.Clone(ix.fields),
			Options:   ix.query,
			Documents: []document.Document{},
		}
	}
	return ix.engine.Export()
}

// Stats returns the mutable stats mapping.
func (ix *Index) Stats() *Stats {
	return ix.stats
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.engine == nil {
		return 0
	}
	return ix.engine.Len()
}

// Contains reports whether a document with url is indexed.
func (ix *Index) Contains(url string) bool {
	_, ok := ix.Get(url)
	return ok
}

// Get returns the document indexed under url.
func (ix *Index) Get(url string) (document.Document, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.engine == nil {
		return document.Document{}, false
	}
	return ix.engine.Lookup(url)
}

// Version returns the current mutation counter.
func (ix *Index) Version() uint64 {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.version
}

// restoreLocked re-adds documents taken out by a mutation whose add step
// failed. Callers hold ix.mu.
func (ix *Index) restoreLocked(removed []document.Document) {
	for _, doc := range removed {
		if err := ix.engine.Add(doc); err != nil {
			ix.logger.Error("failed to restore document", "url", doc.URL, "error", err)
		}
	}
	ix.purgeCache()
}

func (ix *Index) purgeCache() {
	if ix.cache != nil {
		ix.cache.Purge()
	}
}

func cloneResults(in search.Results) search.Results {
	out := make(search.Results, len(in))
	for i, r := range in {
		out[i] = r
		out[i].Document = r.Document.Clone()
		out[i].Matches = slices.Clone(r.Matches)
	}
	return out
}
