// Package document defines the canonical searchable record and the rules for
// reconciling partial observations of it.
//
// A [Document] is identified by its URL. Collectors (tab trackers, bookmark
// importers, content scrapers, note editors) each know a different subset of
// fields, so every field other than the URL is optional and "empty" always
// means "unknown".
//
// # Normalization
//
// [Normalize] maps an untyped payload onto the fixed Document shape:
//
//	doc, err := document.Normalize(map[string]any{
//	    "url":   "https://go.dev/doc",
//	    "title": "Documentation",
//	})
//	if errors.Is(err, document.ErrMissingIdentity) {
//	    // caller contract violation
//	}
//
// # Merging
//
// [Merge] applies the overwrite-if-empty rule to [MergedFields]: an empty
// incoming value keeps what was known before, a non-empty one wins. Title,
// ID, BookmarkID and Note are not merged; the incoming value is used as is.
//
// # Field Updates
//
// Single-field edits go through the closed [Field] enumeration. Use
// [ParseField] at the boundary and [Document.Set] to apply the value.
package document
