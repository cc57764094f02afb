package search

import (
	"errors"
	"fmt"
)

// Error values for engine construction and use.
var (
	ErrInvalidField   = errors.New("invalid weighted field")
	ErrInvalidOptions = errors.New("invalid query options")
	ErrClosed         = errors.New("engine is closed")
)

// Field is a searchable document field and its ranking weight.
type Field struct {
	Name   string  `json:"name" yaml:"name"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// DefaultFields returns the fixed weighted field specification.
func DefaultFields() []Field {
	return []Field{
		{Name: "name", Weight: 10},
		{Name: "note", Weight: 10},
		{Name: "title", Weight: 8},
		{Name: "tags", Weight: 7},
		{Name: "url", Weight: 4},
		{Name: "description", Weight: 3},
		{Name: "keywords", Weight: 2},
		{Name: "content", Weight: 1},
	}
}

// QueryOptions tune matching. Field names follow the Fuse.js options the
// stored configuration was written for.
type QueryOptions struct {
	// IncludeScore keeps relevance scores on results. When false every
	// score is zero but ordering is unchanged.
	IncludeScore bool `json:"includeScore" yaml:"include_score"`

	// IncludeMatches attaches per-field match spans to results.
	IncludeMatches bool `json:"includeMatches" yaml:"include_matches"`

	// MinMatchCharLength drops query terms shorter than this many runes.
	MinMatchCharLength int `json:"minMatchCharLength" yaml:"min_match_char_length"`

	// Threshold in [0,1] controls edit-distance tolerance.
	// 0 matches exact terms and substrings only.
	Threshold float64 `json:"threshold" yaml:"threshold"`

	// IgnoreLocation disables any bias toward matches near the start of a
	// field. Bleve scoring never applies such a bias, so false is accepted
	// but has no effect.
	IgnoreLocation bool `json:"ignoreLocation" yaml:"ignore_location"`

	// UseExtendedSearch enables the operator syntax described in the
	// package documentation.
	UseExtendedSearch bool `json:"useExtendedSearch" yaml:"use_extended_search"`
}

// DefaultQueryOptions returns the options the index is built with.
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		IncludeScore:       true,
		IncludeMatches:     true,
		MinMatchCharLength: 3,
		Threshold:          0.0,
		IgnoreLocation:     true,
		UseExtendedSearch:  true,
	}
}

// Validate checks option ranges.
func (o QueryOptions) Validate() error {
	if o.Threshold < 0 || o.Threshold > 1 {
		return fmt.Errorf("%w: threshold %v outside [0,1]", ErrInvalidOptions, o.Threshold)
	}
	if o.MinMatchCharLength < 0 {
		return fmt.Errorf("%w: negative min match length", ErrInvalidOptions)
	}
	return nil
}

// fuzziness maps the threshold onto Bleve's edit distance (max 2).
func (o QueryOptions) fuzziness() int {
	switch {
	case o.Threshold <= 0:
		return 0
	case o.Threshold <= 0.4:
		return 1
	default:
		return 2
	}
}

// ValidateFields checks that every field is indexable, positively weighted
// and listed once.
func ValidateFields(fields []Field) error {
	if len(fields) == 0 {
		return fmt.Errorf("%w: no fields", ErrInvalidField)
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, ok := fieldAccessors[f.Name]; !ok {
			return fmt.Errorf("%w: unknown field %q", ErrInvalidField, f.Name)
		}
		if f.Weight <= 0 {
			return fmt.Errorf("%w: %s weight must be positive", ErrInvalidField, f.Name)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidField, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}
