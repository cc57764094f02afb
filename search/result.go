package search

import (
	"github.com/jonwraymond/docindex/document"
)

// Match locates query hits inside one field value.
type Match struct {
	// Field is the weighted field name that matched.
	Field string `json:"field"`

	// Value is the matched field value. For tags it is the single tag.
	Value string `json:"value"`

	// Indices are half-open byte ranges [start, end) into Value.
	Indices [][2]int `json:"indices"`
}

// Result is a ranked search hit.
type Result struct {
	Document document.Document `json:"item"`
	Score    float64           `json:"score"`
	Matches  []Match           `json:"matches,omitempty"`
}

// Results is a slice of Result with helper methods.
type Results []Result

// URLs returns the document URLs in rank order.
func (r Results) URLs() []string {
	urls := make([]string, len(r))
	for i, result := range r {
		urls[i] = result.Document.URL
	}
	return urls
}

// Documents returns just the documents from the results.
func (r Results) Documents() []document.Document {
	docs := make([]document.Document, len(r))
	for i, result := range r {
		docs[i] = result.Document
	}
	return docs
}

// FilterByTag returns results whose document carries tag.
func (r Results) FilterByTag(tag string) Results {
	var filtered Results
	for _, result := range r {
		if result.Document.HasTag(tag) {
			filtered = append(filtered, result)
		}
	}
	return filtered
}

// FilterByMinScore returns results with score >= minScore.
func (r Results) FilterByMinScore(minScore float64) Results {
	var filtered Results
	for _, result := range r {
		if result.Score >= minScore {
			filtered = append(filtered, result)
		}
	}
	return filtered
}

// IndexState is a point-in-time export of an engine.
type IndexState struct {
	Fields      []Field             `json:"fields"`
	Options     QueryOptions        `json:"options"`
	Documents   []document.Document `json:"documents"`
	Fingerprint string              `json:"fingerprint"`
}
