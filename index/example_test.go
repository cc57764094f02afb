package index_test

import (
	"errors"
	"fmt"

	"github.com/jonwraymond/docindex/document"
	"github.com/jonwraymond/docindex/index"
)

func ExampleIndex_Upsert() {
	ix := index.New(index.Options{})
	if err := ix.Init(); err != nil {
		fmt.Println("error:", err)
		return
	}
	defer ix.Close()

	// A tab collector knows the title, a content scraper later knows the body.
	_ = ix.Upsert(map[string]any{"url": "https://go.dev/doc", "title": "Documentation", "name": "Go docs"})
	_ = ix.Upsert(map[string]any{"url": "https://go.dev/doc", "title": "Documentation", "content": "tutorials and references"})

	doc, _ := ix.Get("https://go.dev/doc")
	fmt.Println(ix.Len(), doc.Name, "|", doc.Content)
	// Output:
	// 1 Go docs | tutorials and references
}

func ExampleIndex_InsertNew_missingIdentity() {
	ix := index.New(index.Options{})
	_ = ix.Init()
	defer ix.Close()

	err := ix.InsertNew(map[string]any{"name": "no url"})
	fmt.Println(errors.Is(err, document.ErrMissingIdentity))
	// Output:
	// true
}

func ExampleIndex_UpdateField() {
	ix := index.New(index.Options{})
	_ = ix.Init()
	defer ix.Close()

	_ = ix.Upsert(map[string]any{"url": "https://example.com"})
	_ = ix.UpdateField("https://example.com", "note", "read later")

	results, _ := ix.Search("later", 5)
	fmt.Println(results.URLs())
	// Output:
	// [https://example.com]
}

func ExampleIndex_OnChange() {
	ix := index.New(index.Options{})
	_ = ix.Init()
	defer ix.Close()

	unsub := ix.OnChange(func(ev index.ChangeEvent) {
		fmt.Println(ev.Type, ev.URL)
	})
	defer unsub()

	_ = ix.Upsert(map[string]any{"url": "https://example.com"})
	_, _ = ix.Remove(document.ByURL("https://example.com"))
	// Output:
	// upserted https://example.com
	// removed https://example.com
}
