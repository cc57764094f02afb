// Package index is the public coordinator for the document search index.
//
// An Index owns a search engine handle, a stats mapping and an optional
// query cache. Every document is identified by its URL: inserting a document
// whose URL is already indexed merges the two instead of storing a
// duplicate.
//
// # Usage
//
//	ix := index.New(index.Options{})
//	if err := ix.Init(); err != nil {
//	    return err
//	}
//
//	err := ix.Upsert(map[string]any{
//	    "url":   "https://go.dev/doc",
//	    "title": "Documentation",
//	    "tags":  []string{"collection-1"},
//	})
//
//	results, err := ix.Search("documentation", 10)
//
// # Merging
//
// InsertNew and Upsert share one implementation. The existing document with
// the same URL is removed, combined with the incoming one by document.Merge
// and added back. Name, description, keywords, content and tags keep their
// old values when the incoming value is empty. Every other field is taken
// from the incoming document, so an upsert without a title clears the title.
//
// # Field Updates
//
// UpdateField sets exactly one of name, note, description, keywords or tags
// on an indexed document. Unknown field names and unknown URLs are logged
// and ignored; they never return an error.
//
// # Initialization
//
// Init builds an empty engine and may be called again to discard all
// documents. Before the first Init, Search returns no results and every
// mutation returns ErrNotInitialized.
//
// # Concurrency
//
// Mutations run under a single write lock so the remove, merge and add
// sequence is never observed half done. Searches share a read lock.
//
// # Change Notifications
//
//	unsub := ix.OnChange(func(event index.ChangeEvent) {
//	    log.Printf("%s %s (v%d)", event.Type, event.URL, event.Version)
//	})
//	defer unsub()
package index
