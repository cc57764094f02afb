package collect

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jonwraymond/docindex/document"
	"github.com/jonwraymond/docindex/index"
)

// Stat names recorded by the collectors.
const (
	StatTabs               = "tabs.count"
	StatCollections        = "collections.count"
	StatBookmarks          = "bookmarks.count"
	StatContent            = "content.count"
	StatContentOverwritten = "content.overwritten"
	StatContentFiltered    = "content.filtered"
)

// Options configures a Collector.
type Options struct {
	// NewID generates document IDs. Default: uuid.NewString.
	NewID func() string

	// Logger receives progress logs. Default: slog.Default().
	Logger *slog.Logger
}

// Collector feeds source records into an index.
type Collector struct {
	ix     *index.Index
	newID  func() string
	logger *slog.Logger
}

// New creates a collector writing to ix.
func New(ix *index.Index, opts Options) *Collector {
	c := &Collector{
		ix:     ix,
		newID:  opts.NewID,
		logger: opts.Logger,
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// IndexTabs upserts the tabs of one collection, tagging each document with
// collectionID. Tabs without a URL and repeated URLs are skipped. It returns
// the number of documents written.
func (c *Collector) IndexTabs(collectionID string, tabs []Tab) (int, error) {
	seen := make(map[string]struct{}, len(tabs))
	count := 0
	for _, tab := range tabs {
		if tab.URL == "" {
			continue
		}
		if _, dup := seen[tab.URL]; dup {
			continue
		}
		seen[tab.URL] = struct{}{}

		doc := document.Document{
			ID:    c.newID(),
			Name:  tab.Name,
			Title: tab.Title,
			URL:   tab.URL,
			Tags:  []string{collectionID},
		}
		if err := c.ix.Upsert(doc); err != nil {
			return count, fmt.Errorf("index tab %s: %w", tab.URL, err)
		}
		count++
	}

	c.ix.Stats().Set(StatTabs, int64(count))
	c.logger.Debug("indexed tabs", "collection", collectionID, "count", count)
	return count, nil
}

// IndexCollections upserts one document per distinct tab URL across all
// collections. A URL found in several collections is tagged with each of
// their IDs, in the order the collections are given.
func (c *Collector) IndexCollections(collections []Collection) (int, error) {
	var order []string
	docs := make(map[string]*document.Document)

	for _, col := range collections {
		for _, tab := range col.Tabs {
			if tab.URL == "" {
				continue
			}
			doc, ok := docs[tab.URL]
			if !ok {
				doc = &document.Document{
					ID:    c.newID(),
					Name:  tab.Name,
					Title: tab.Title,
					URL:   tab.URL,
					Tags:  []string{},
				}
				docs[tab.URL] = doc
				order = append(order, tab.URL)
			}
			if col.ID != "" && !doc.HasTag(col.ID) {
				doc.Tags = append(doc.Tags, col.ID)
			}
		}
	}

	count := 0
	for _, url := range order {
		if err := c.ix.Upsert(*docs[url]); err != nil {
			return count, fmt.Errorf("index collection tab %s: %w", url, err)
		}
		count++
	}

	c.ix.Stats().Set(StatCollections, int64(count))
	c.logger.Debug("indexed collections", "collections", len(collections), "documents", count)
	return count, nil
}

// IndexBookmarks adds bookmarks whose URL is not indexed yet. Bookmarks never
// overwrite what other collectors already know about a page.
func (c *Collector) IndexBookmarks(bookmarks []Bookmark) (int, error) {
	count := 0
	for _, bm := range bookmarks {
		if bm.URL == "" || c.ix.Contains(bm.URL) {
			continue
		}
		doc := document.Document{
			ID:         c.newID(),
			Title:      bm.Title,
			URL:        bm.URL,
			BookmarkID: bm.ID,
			Tags:       []string{},
		}
		if err := c.ix.InsertNew(doc); err != nil {
			return count, fmt.Errorf("index bookmark %s: %w", bm.URL, err)
		}
		count++
	}

	c.ix.Stats().Set(StatBookmarks, int64(count))
	c.logger.Debug("indexed bookmarks", "count", count)
	return count, nil
}

// IndexContent replaces indexed documents with stored page content.
//
// Items that expire are only kept while their URL belongs to a collection,
// as reported by inCollection. A nil inCollection keeps only non-expiring
// items. Existing documents for a kept URL are replaced, not merged.
func (c *Collector) IndexContent(items []Content, inCollection func(url string) bool) (int, error) {
	var count, overwritten, filtered int
	for _, item := range items {
		keep := item.Expires == 0 || (inCollection != nil && inCollection(item.URL))
		if !keep || item.URL == "" {
			filtered++
			continue
		}

		removed, err := c.ix.Remove(document.ByURL(item.URL))
		if err != nil {
			return count, fmt.Errorf("index content %s: %w", item.URL, err)
		}
		overwritten += len(removed)

		if err := c.ix.InsertNew(contentDocument(item, c.newID)); err != nil {
			return count, fmt.Errorf("index content %s: %w", item.URL, err)
		}
		count++
	}

	stats := c.ix.Stats()
	stats.Set(StatContent, int64(count))
	stats.Set(StatContentOverwritten, int64(overwritten))
	stats.Set(StatContentFiltered, int64(filtered))
	c.logger.Debug("indexed content",
		"count", count,
		"overwritten", overwritten,
		"filtered", filtered)
	return count, nil
}

func contentDocument(item Content, newID func() string) document.Document {
	id := item.ID
	if id == "" {
		id = newID()
	}
	tags := item.CollectionIDs
	if tags == nil {
		tags = []string{}
	}
	return document.Document{
		ID:          id,
		Title:       item.Title,
		URL:         item.URL,
		Description: item.Metas["description"],
		Keywords:    item.Metas["keywords"],
		Content:     item.Content,
		Tags:        tags,
	}
}
