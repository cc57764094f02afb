// Package search is the fuzzy full-text engine behind the document index.
//
// It wraps an in-memory Bleve index and exposes the small capability set
// the index package depends on: build, add, remove-by-predicate, query and
// state export.
//
// # Usage
//
//	eng, err := search.Build(search.DefaultFields(), nil, search.DefaultQueryOptions())
//	if err != nil {
//	    return err
//	}
//	defer eng.Close()
//
//	_ = eng.Add(document.Document{URL: "https://go.dev", Name: "Go"})
//	results, err := eng.Query("golang", 10)
//
// # Weights
//
// [DefaultFields] is the fixed field weighting: name and note 10, title 8,
// tags 7, url 4, description 3, keywords 2, content 1. Weights become
// per-field query boosts.
//
// # Query Syntax
//
// Plain terms match fuzzily (see [QueryOptions.Threshold]) and as
// substrings. With [QueryOptions.UseExtendedSearch] the following operators
// are understood:
//
//	foo bar      both terms must match
//	foo | bar    either group may match
//	'foo         substring match only
//	=foo         exact phrase
//	^foo         prefix
//	foo$         suffix
//	!foo         must not contain (also !^foo, !foo$)
//
// # Thread Safety
//
// Engine is safe for concurrent use. Results are ordered by score
// descending, then by insertion order.
package search
