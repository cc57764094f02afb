// Package collect populates an index from the sources a browser keeps:
// tabs grouped into collections, bookmarks and scraped page content.
//
// Each collector observes only part of a document. Tabs know a title and a
// URL, content items know the page body and its meta description. Feeding
// them through index.Index.Upsert lets those partial observations
// accumulate on one record per URL.
//
// # Usage
//
//	store := collect.NewStore()
//	_ = store.Put(collect.Collection{ID: "c1", Name: "Reading", Tabs: tabs})
//
//	c := collect.New(ix, collect.Options{})
//	_, err := c.IndexCollections(store.List())
//	_, err = c.IndexContent(items, store.ContainsURL)
//
// Every collector records what it did in the index stats under the Stat*
// names.
package collect
