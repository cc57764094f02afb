package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/docindex/document"
)

// SearchInput is the input schema for search_documents.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query; supports ! ^ $ ' = and | operators"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for search_documents.
type SearchOutput struct {
	Results []SearchHit `json:"results"`
	Count   int         `json:"count"`
}

// SearchHit is one ranked document.
type SearchHit struct {
	URL         string     `json:"url"`
	Name        string     `json:"name,omitempty"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Note        string     `json:"note,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Score       float64    `json:"score"`
	Matches     []HitMatch `json:"matches,omitempty"`
}

// HitMatch names a field that matched and its value.
type HitMatch struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// UpsertInput is the input schema for upsert_document.
type UpsertInput struct {
	Document map[string]any `json:"document" jsonschema:"document fields; url is required, empty fields keep their indexed value"`
}

// DocumentOutput returns the stored document.
type DocumentOutput struct {
	Found    bool               `json:"found"`
	Document *document.Document `json:"document,omitempty"`
}

// UpdateFieldInput is the input schema for update_document_field.
type UpdateFieldInput struct {
	URL   string `json:"url" jsonschema:"url of the document to update"`
	Field string `json:"field" jsonschema:"one of name, note, description, keywords, tags"`
	Value any    `json:"value" jsonschema:"new value; a string, or a list of strings for tags"`
}

// RemoveInput is the input schema for remove_documents.
type RemoveInput struct {
	URL string `json:"url,omitempty" jsonschema:"remove the document with this url"`
	Tag string `json:"tag,omitempty" jsonschema:"remove every document carrying this tag"`
}

// RemoveOutput lists the removed documents.
type RemoveOutput struct {
	Removed []string `json:"removed"`
	Count   int      `json:"count"`
}

// StatsInput is the empty input schema for index_stats.
type StatsInput struct{}

// StatsOutput is the output schema for index_stats.
type StatsOutput struct {
	Documents   int              `json:"documents"`
	Version     uint64           `json:"version"`
	Fingerprint string           `json:"fingerprint"`
	Stats       map[string]int64 `json:"stats"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_documents",
		Description: "Search indexed pages, bookmarks and notes by weighted fuzzy match",
	}, s.handleSearch)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "upsert_document",
		Description: "Insert a document or merge it into the one with the same url",
	}, s.handleUpsert)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_document_field",
		Description: "Set one field (name, note, description, keywords, tags) of an indexed document",
	}, s.handleUpdateField)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_documents",
		Description: "Remove documents by url or tag",
	}, s.handleRemove)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "index_stats",
		Description: "Report index size, version and collector statistics",
	}, s.handleStats)
}

func (s *Server) handleSearch(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}

	results, err := s.ix.Search(input.Query, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchHit, len(results)),
		Count:   len(results),
	}
	for i, r := range results {
		hit := SearchHit{
			URL:         r.Document.URL,
			Name:        r.Document.Name,
			Title:       r.Document.Title,
			Description: r.Document.Description,
			Note:        r.Document.Note,
			Tags:        r.Document.Tags,
			Score:       r.Score,
		}
		for _, m := range r.Matches {
			hit.Matches = append(hit.Matches, HitMatch{Field: m.Field, Value: m.Value})
		}
		output.Results[i] = hit
	}

	s.logger.Debug("search", "query", input.Query, "results", len(results))
	return nil, output, nil
}

func (s *Server) handleUpsert(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input UpsertInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	if err := s.ix.Upsert(input.Document); err != nil {
		if errors.Is(err, document.ErrMissingIdentity) {
			return nil, DocumentOutput{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		return nil, DocumentOutput{}, err
	}

	url, _ := input.Document["url"].(string)
	return nil, s.lookup(url), nil
}

func (s *Server) handleUpdateField(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input UpdateFieldInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	if input.URL == "" {
		return nil, DocumentOutput{}, fmt.Errorf("%w: url is required", ErrInvalidRequest)
	}
	if _, err := document.ParseField(input.Field); err != nil {
		return nil, DocumentOutput{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	if err := s.ix.UpdateField(input.URL, input.Field, input.Value); err != nil {
		return nil, DocumentOutput{}, err
	}
	return nil, s.lookup(input.URL), nil
}

func (s *Server) handleRemove(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RemoveInput,
) (*mcp.CallToolResult, RemoveOutput, error) {
	var pred document.Predicate
	switch {
	case input.URL != "" && input.Tag != "":
		return nil, RemoveOutput{}, fmt.Errorf("%w: give url or tag, not both", ErrInvalidRequest)
	case input.URL != "":
		pred = document.ByURL(input.URL)
	case input.Tag != "":
		pred = document.ByTag(input.Tag)
	default:
		return nil, RemoveOutput{}, fmt.Errorf("%w: url or tag is required", ErrInvalidRequest)
	}

	removed, err := s.ix.Remove(pred)
	if err != nil {
		return nil, RemoveOutput{}, err
	}

	output := RemoveOutput{
		Removed: make([]string, len(removed)),
		Count:   len(removed),
	}
	for i, doc := range removed {
		output.Removed[i] = doc.URL
	}
	return nil, output, nil
}

func (s *Server) handleStats(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ StatsInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	state := s.ix.Handle()
	return nil, StatsOutput{
		Documents:   len(state.Documents),
		Version:     s.ix.Version(),
		Fingerprint: state.Fingerprint,
		Stats:       s.ix.Stats().Snapshot(),
	}, nil
}

func (s *Server) lookup(url string) DocumentOutput {
	doc, ok := s.ix.Get(url)
	if !ok {
		return DocumentOutput{}
	}
	return DocumentOutput{Found: true, Document: &doc}
}
