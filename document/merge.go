package document

// MergedFields are the fields protected by the overwrite-if-empty rule on
// upsert. Note is absent: it is only written by field updates.
var MergedFields = []Field{
	FieldName,
	FieldDescription,
	FieldKeywords,
	FieldContent,
	FieldTags,
}

// Merge reconciles an incoming document with the previously indexed one
// sharing its identity.
//
// For each of MergedFields an empty incoming value keeps old's value and a
// non-empty one replaces it. All other fields (ID, Title, URL, BookmarkID,
// Note) come from incoming unchanged, so an upsert without a title blanks
// the old title.
func Merge(old, incoming Document) Document {
	merged := incoming.Clone()
	for _, f := range MergedFields {
		if merged.isEmpty(f) {
			merged.copyFrom(f, old)
		}
	}
	if merged.Tags == nil {
		merged.Tags = []string{}
	}
	return merged
}

func (d *Document) isEmpty(f Field) bool {
	switch f {
	case FieldTags:
		return len(d.Tags) == 0
	default:
		p := d.text(f)
		return p == nil || *p == ""
	}
}

func (d *Document) copyFrom(f Field, src Document) {
	switch f {
	case FieldTags:
		d.Tags = cloneTags(src.Tags)
	default:
		if dst := d.text(f); dst != nil {
			*dst = *src.text(f)
		}
	}
}
