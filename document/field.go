package document

import "fmt"

// Field names a document field that participates in merging or single-field
// updates.
type Field string

const (
	FieldName        Field = "name"
	FieldNote        Field = "note"
	FieldDescription Field = "description"
	FieldKeywords    Field = "keywords"
	FieldTags        Field = "tags"

	// FieldContent is merged on upsert but cannot be edited directly.
	FieldContent Field = "content"
)

// UpdatableFields is the closed set accepted by single-field updates.
var UpdatableFields = []Field{
	FieldName,
	FieldNote,
	FieldDescription,
	FieldKeywords,
	FieldTags,
}

// Updatable reports whether f may be set through a field update.
func (f Field) Updatable() bool {
	switch f {
	case FieldName, FieldNote, FieldDescription, FieldKeywords, FieldTags:
		return true
	default:
		return false
	}
}

// ParseField converts a caller-supplied name into an updatable Field.
func ParseField(name string) (Field, error) {
	f := Field(name)
	if !f.Updatable() {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return f, nil
}

// Set assigns value to the updatable field f.
//
// Text fields take a string. Tags take []string, []any or a single string;
// an empty string clears the tags.
func (d *Document) Set(f Field, value any) error {
	if !f.Updatable() {
		return fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}

	if f == FieldTags {
		switch value.(type) {
		case []string, []any, string, nil:
			d.Tags = tagsFromAny(value)
			return nil
		default:
			return fmt.Errorf("%w: tags cannot be %T", ErrInvalidValue, value)
		}
	}

	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidValue, f, value)
	}
	*d.text(f) = s
	return nil
}

// Get returns the value held in f, a string or a []string for tags.
func (d Document) Get(f Field) any {
	if f == FieldTags {
		return cloneTags(d.Tags)
	}
	if p := d.text(f); p != nil {
		return *p
	}
	return nil
}

func (d *Document) text(f Field) *string {
	switch f {
	case FieldName:
		return &d.Name
	case FieldNote:
		return &d.Note
	case FieldDescription:
		return &d.Description
	case FieldKeywords:
		return &d.Keywords
	case FieldContent:
		return &d.Content
	default:
		return nil
	}
}
