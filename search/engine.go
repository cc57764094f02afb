package search

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
	bsearch "github.com/blevesearch/bleve/v2/search"

	"github.com/jonwraymond/docindex/document"
)

// fieldAccessors maps indexable field names to document values.
var fieldAccessors = map[string]func(document.Document) any{
	"id":          func(d document.Document) any { return d.ID },
	"name":        func(d document.Document) any { return d.Name },
	"title":       func(d document.Document) any { return d.Title },
	"url":         func(d document.Document) any { return d.URL },
	"description": func(d document.Document) any { return d.Description },
	"keywords":    func(d document.Document) any { return d.Keywords },
	"content":     func(d document.Document) any { return d.Content },
	"tags":        func(d document.Document) any { return d.Tags },
	"bookmarkId":  func(d document.Document) any { return d.BookmarkID },
	"note":        func(d document.Document) any { return d.Note },
}

type entry struct {
	seq uint64
	doc document.Document
}

// Engine is an in-memory weighted fuzzy index over documents.
//
// It keeps no notion of identity: adding two documents with the same URL
// stores both. Callers enforce uniqueness through RemoveWhere.
type Engine struct {
	mu      sync.RWMutex
	fields  []Field
	opts    QueryOptions
	index   bleve.Index
	entries map[string]entry
	seq     uint64
	closed  bool
}

// Build creates an engine for the weighted fields and indexes initial.
func Build(fields []Field, initial []document.Document, opts QueryOptions) (*Engine, error) {
	if err := ValidateFields(fields); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	im, err := indexMapping(fields)
	if err != nil {
		return nil, err
	}
	idx, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	e := &Engine{
		fields:  slices.Clone(fields),
		opts:    opts,
		index:   idx,
		entries: make(map[string]entry, len(initial)),
	}

	if len(initial) > 0 {
		batch := idx.NewBatch()
		for _, doc := range initial {
			key := e.nextKey()
			if err := batch.Index(key, e.indexable(doc)); err != nil {
				_ = idx.Close()
				return nil, fmt.Errorf("failed to index document %s: %w", doc.URL, err)
			}
			e.entries[key] = entry{seq: e.seq, doc: doc.Clone()}
		}
		if err := idx.Batch(batch); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("failed to execute batch: %w", err)
		}
	}

	return e, nil
}

// textAnalyzerName names the analyzer used for every weighted field:
// unicode word segmentation and lowercasing, with no stop word removal, so
// any word in a document can be found.
const textAnalyzerName = "docindex_text"

// indexMapping maps each weighted field as analyzed text with term vectors
// so match locations can be reported.
func indexMapping(fields []Field) (*mapping.IndexMappingImpl, error) {
	im := bleve.NewIndexMapping()
	err := im.AddCustomAnalyzer(textAnalyzerName, map[string]any{
		"type":          custom.Name,
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add analyzer: %w", err)
	}

	docMapping := bleve.NewDocumentMapping()
	docMapping.Dynamic = false
	for _, f := range fields {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = textAnalyzerName
		fm.IncludeInAll = false
		fm.IncludeTermVectors = true
		fm.Store = false
		docMapping.AddFieldMappingsAt(f.Name, fm)
	}

	im.DefaultMapping = docMapping
	im.DefaultAnalyzer = textAnalyzerName
	return im, nil
}

// Add indexes doc.
func (e *Engine) Add(doc document.Document) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}

	key := e.nextKey()
	if err := e.index.Index(key, e.indexable(doc)); err != nil {
		return fmt.Errorf("failed to index document %s: %w", doc.URL, err)
	}
	e.entries[key] = entry{seq: e.seq, doc: doc.Clone()}
	return nil
}

// RemoveWhere removes every document matching pred and returns them in
// insertion order. The result is empty, never nil, when nothing matched.
func (e *Engine) RemoveWhere(pred document.Predicate) ([]document.Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, ErrClosed
	}

	var keys []string
	for key, ent := range e.entries {
		if pred(ent.doc) {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return []document.Document{}, nil
	}
	sort.Slice(keys, func(i, j int) bool {
		return e.entries[keys[i]].seq < e.entries[keys[j]].seq
	})

	batch := e.index.NewBatch()
	for _, key := range keys {
		batch.Delete(key)
	}
	if err := e.index.Batch(batch); err != nil {
		return nil, fmt.Errorf("failed to delete documents: %w", err)
	}

	removed := make([]document.Document, 0, len(keys))
	for _, key := range keys {
		removed = append(removed, e.entries[key].doc)
		delete(e.entries, key)
	}
	return removed, nil
}

// Query runs term against the index and returns at most limit results,
// best match first. A non-positive limit returns every match.
func (e *Engine) Query(term string, limit int) (Results, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.closed {
		return nil, ErrClosed
	}
	if len(e.entries) == 0 || strings.TrimSpace(term) == "" {
		return Results{}, nil
	}

	groups := parseQuery(term, e.opts.UseExtendedSearch, e.opts.MinMatchCharLength)
	q := buildQuery(groups, e.fields, e.opts.fuzziness())
	if q == nil {
		return Results{}, nil
	}

	size := limit
	if size <= 0 || size > len(e.entries) {
		size = len(e.entries)
	}

	req := bleve.NewSearchRequestOptions(q, size, 0, false)
	req.SortBy([]string{"-_score", "_id"})
	req.IncludeLocations = e.opts.IncludeMatches

	res, err := e.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make(Results, 0, len(res.Hits))
	for _, hit := range res.Hits {
		ent, ok := e.entries[hit.ID]
		if !ok {
			continue
		}
		r := Result{Document: ent.doc.Clone()}
		if e.opts.IncludeScore {
			r.Score = hit.Score
		}
		if e.opts.IncludeMatches {
			r.Matches = e.matches(ent.doc, hit)
		}
		results = append(results, r)
	}
	return results, nil
}

// Lookup returns the first indexed document whose URL is url.
func (e *Engine) Lookup(url string) (document.Document, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var (
		found document.Document
		seq   uint64
		ok    bool
	)
	for _, ent := range e.entries {
		if ent.doc.URL == url && (!ok || ent.seq < seq) {
			found, seq, ok = ent.doc, ent.seq, true
		}
	}
	if !ok {
		return document.Document{}, false
	}
	return found.Clone(), true
}

// Len returns the number of indexed documents.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.entries)
}

// Documents returns every indexed document in insertion order.
func (e *Engine) Documents() []document.Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.documentsLocked()
}

// Export captures the engine state for diagnostics.
func (e *Engine) Export() IndexState {
	e.mu.RLock()
	defer e.mu.RUnlock()

	docs := e.documentsLocked()
	return IndexState{
		Fields:      slices.Clone(e.fields),
		Options:     e.opts,
		Documents:   docs,
		Fingerprint: computeFingerprint(docs),
	}
}

// Close releases the underlying index. It is safe to call more than once.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	e.entries = nil
	return e.index.Close()
}

func (e *Engine) documentsLocked() []document.Document {
	ents := make([]entry, 0, len(e.entries))
	for _, ent := range e.entries {
		ents = append(ents, ent)
	}
	sort.Slice(ents, func(i, j int) bool { return ents[i].seq < ents[j].seq })

	docs := make([]document.Document, len(ents))
	for i, ent := range ents {
		docs[i] = ent.doc.Clone()
	}
	return docs
}

// nextKey returns a key that sorts in insertion order, which gives equal
// scores a stable tie-break.
func (e *Engine) nextKey() string {
	e.seq++
	return fmt.Sprintf("%016x", e.seq)
}

func (e *Engine) indexable(doc document.Document) map[string]any {
	out := make(map[string]any, len(e.fields))
	for _, f := range e.fields {
		out[f.Name] = fieldAccessors[f.Name](doc)
	}
	return out
}

// matches converts Bleve term locations into per-field spans.
func (e *Engine) matches(doc document.Document, hit *bsearch.DocumentMatch) []Match {
	if len(hit.Locations) == 0 {
		return nil
	}

	type key struct {
		field string
		elem  int
	}
	spans := make(map[key][][2]int)
	for field, terms := range hit.Locations {
		for _, locs := range terms {
			for _, loc := range locs {
				k := key{field: field, elem: -1}
				if len(loc.ArrayPositions) > 0 {
					k.elem = int(loc.ArrayPositions[0])
				}
				spans[k] = append(spans[k], [2]int{int(loc.Start), int(loc.End)})
			}
		}
	}

	out := make([]Match, 0, len(spans))
	for k, idx := range spans {
		sort.Slice(idx, func(i, j int) bool {
			if idx[i][0] != idx[j][0] {
				return idx[i][0] < idx[j][0]
			}
			return idx[i][1] < idx[j][1]
		})
		out = append(out, Match{
			Field:   k.field,
			Value:   fieldText(doc, k.field, k.elem),
			Indices: slices.Compact(idx),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Field != out[j].Field {
			return out[i].Field < out[j].Field
		}
		return out[i].Value < out[j].Value
	})
	return out
}

func fieldText(doc document.Document, field string, elem int) string {
	get, ok := fieldAccessors[field]
	if !ok {
		return ""
	}
	switch v := get(doc).(type) {
	case string:
		return v
	case []string:
		if elem >= 0 && elem < len(v) {
			return v[elem]
		}
		return strings.Join(v, " ")
	default:
		return ""
	}
}
