package document

import "fmt"

// Payload keys recognised by Normalize.
const (
	keyID          = "id"
	keyName        = "name"
	keyTitle       = "title"
	keyURL         = "url"
	keyDescription = "description"
	keyKeywords    = "keywords"
	keyContent     = "content"
	keyTags        = "tags"
	keyBookmarkID  = "bookmarkId"
	keyNote        = "note"
)

// Normalize coerces a collaborator payload into a fully shaped Document.
//
// Accepted inputs are Document, *Document, map[string]any and
// map[string]string. Unknown keys are ignored and text fields holding
// non-string values become empty. The URL is the only validated field:
// a missing or empty URL yields ErrMissingIdentity. The URL is
// otherwise taken verbatim.
func Normalize(raw any) (Document, error) {
	var doc Document

	switch v := raw.(type) {
	case nil:
		return Document{}, fmt.Errorf("%w: payload is nil", ErrMissingIdentity)
	case Document:
		doc = v.Clone()
	case *Document:
		if v == nil {
			return Document{}, fmt.Errorf("%w: payload is nil", ErrMissingIdentity)
		}
		doc = v.Clone()
	case map[string]any:
		doc = fromMap(v)
	case map[string]string:
		m := make(map[string]any, len(v))
		for k, s := range v {
			m[k] = s
		}
		doc = fromMap(m)
	default:
		return Document{}, fmt.Errorf("%w: unsupported payload %T", ErrMissingIdentity, raw)
	}

	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	if doc.URL == "" {
		return Document{}, ErrMissingIdentity
	}
	return doc, nil
}

func fromMap(m map[string]any) Document {
	return Document{
		ID:          stringFromAny(m[keyID]),
		Name:        stringFromAny(m[keyName]),
		Title:       stringFromAny(m[keyTitle]),
		URL:         stringFromAny(m[keyURL]),
		Description: stringFromAny(m[keyDescription]),
		Keywords:    stringFromAny(m[keyKeywords]),
		Content:     stringFromAny(m[keyContent]),
		Tags:        tagsFromAny(m[keyTags]),
		BookmarkID:  stringFromAny(m[keyBookmarkID]),
		Note:        stringFromAny(m[keyNote]),
	}
}

func stringFromAny(v any) string {
	s, _ := v.(string)
	return s
}

// tagsFromAny accepts []string, []any (non-string items dropped) or a
// single string. Anything else is an empty tag list.
func tagsFromAny(v any) []string {
	switch t := v.(type) {
	case []string:
		return cloneTags(t)
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return []string{}
		}
		return []string{t}
	default:
		return []string{}
	}
}
