package search

import (
	"fmt"
	"testing"

	"github.com/jonwraymond/docindex/document"
)

func benchDocuments(n int) []document.Document {
	docs := make([]document.Document, n)
	for i := range docs {
		docs[i] = document.Document{
			URL:         fmt.Sprintf("https://site%d.example/page", i),
			Name:        fmt.Sprintf("page %d", i),
			Title:       fmt.Sprintf("Article number %d about golang", i),
			Description: "a sample description for benchmarking",
			Content:     "lorem ipsum dolor sit amet consectetur adipiscing",
			Tags:        []string{"bench", fmt.Sprintf("group%d", i%10)},
		}
	}
	return docs
}

func BenchmarkBuild(b *testing.B) {
	docs := benchDocuments(500)
	for b.Loop() {
		eng, err := Build(DefaultFields(), docs, DefaultQueryOptions())
		if err != nil {
			b.Fatal(err)
		}
		_ = eng.Close()
	}
}

func BenchmarkQuery(b *testing.B) {
	eng, err := Build(DefaultFields(), benchDocuments(500), DefaultQueryOptions())
	if err != nil {
		b.Fatal(err)
	}
	defer eng.Close()

	for b.Loop() {
		if _, err := eng.Query("golang", 10); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkQuery_Extended(b *testing.B) {
	eng, err := Build(DefaultFields(), benchDocuments(500), DefaultQueryOptions())
	if err != nil {
		b.Fatal(err)
	}
	defer eng.Close()

	for b.Loop() {
		if _, err := eng.Query("article !group3 | ^lorem", 10); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRemoveWhere(b *testing.B) {
	eng, err := Build(DefaultFields(), nil, DefaultQueryOptions())
	if err != nil {
		b.Fatal(err)
	}
	defer eng.Close()

	doc := document.Document{URL: "https://bench.example", Name: "bench"}
	for b.Loop() {
		_ = eng.Add(doc)
		_, _ = eng.RemoveWhere(document.ByURL(doc.URL))
	}
}
