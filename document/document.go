package document

import "slices"

// Document is the canonical indexable record.
//
// URL is the identity key. Absent fields are empty strings or an empty tag
// slice, never nil markers, so merge logic can treat empty as unknown.
type Document struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Title       string   `json:"title" yaml:"title"`
	URL         string   `json:"url" yaml:"url"`
	Description string   `json:"description" yaml:"description"`
	Keywords    string   `json:"keywords" yaml:"keywords"`
	Content     string   `json:"content" yaml:"content"`
	Tags        []string `json:"tags" yaml:"tags"`
	BookmarkID  string   `json:"bookmarkId" yaml:"bookmarkId"`
	Note        string   `json:"note" yaml:"note"`
}

// Identity returns the key used for equality and lookup.
func Identity(doc Document) string {
	return doc.URL
}

// Clone returns a copy that shares no slices with d.
func (d Document) Clone() Document {
	out := d
	out.Tags = cloneTags(d.Tags)
	return out
}

// HasTag reports whether tag is one of the document's tags.
func (d Document) HasTag(tag string) bool {
	return slices.Contains(d.Tags, tag)
}

// Predicate selects documents for bulk removal.
type Predicate func(Document) bool

// ByURL matches the document whose identity is url.
func ByURL(url string) Predicate {
	return func(d Document) bool {
		return d.URL == url
	}
}

// ByTag matches documents carrying tag, e.g. all members of a collection.
func ByTag(tag string) Predicate {
	return func(d Document) bool {
		return d.HasTag(tag)
	}
}

// All matches every document.
func All() Predicate {
	return func(Document) bool { return true }
}

func cloneTags(tags []string) []string {
	if len(tags) == 0 {
		return []string{}
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
