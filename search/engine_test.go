package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/docindex/document"
)

func newTestEngine(t *testing.T, docs ...document.Document) *Engine {
	t.Helper()
	eng, err := Build(DefaultFields(), docs, DefaultQueryOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })
	return eng
}

func mustAdd(t *testing.T, eng *Engine, doc document.Document) {
	t.Helper()
	require.NoError(t, eng.Add(doc))
}

// ============================================================
// Build
// ============================================================

func TestBuild_InitialDocuments(t *testing.T) {
	eng := newTestEngine(t,
		document.Document{URL: "https://a.example", Name: "alpha"},
		document.Document{URL: "https://b.example", Name: "bravo"},
	)

	assert.Equal(t, 2, eng.Len())

	results, err := eng.Query("bravo", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "https://b.example", results[0].Document.URL)
}

func TestBuild_RejectsInvalidFields(t *testing.T) {
	cases := map[string][]Field{
		"empty":    nil,
		"unknown":  {{Name: "body", Weight: 1}},
		"zero":     {{Name: "name", Weight: 0}},
		"negative": {{Name: "name", Weight: -1}},
		"dup":      {{Name: "name", Weight: 1}, {Name: "name", Weight: 2}},
	}
	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Build(fields, nil, DefaultQueryOptions())
			assert.ErrorIs(t, err, ErrInvalidField)
		})
	}
}

func TestBuild_RejectsInvalidOptions(t *testing.T) {
	opts := DefaultQueryOptions()
	opts.Threshold = 2

	_, err := Build(DefaultFields(), nil, opts)
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

// ============================================================
// Add / RemoveWhere
// ============================================================

func TestAdd_DoesNotDeduplicate(t *testing.T) {
	eng := newTestEngine(t)
	mustAdd(t, eng, document.Document{URL: "u", Name: "first"})
	mustAdd(t, eng, document.Document{URL: "u", Name: "second"})

	assert.Equal(t, 2, eng.Len())
}

func TestRemoveWhere_ReturnsRemovedInInsertionOrder(t *testing.T) {
	eng := newTestEngine(t)
	mustAdd(t, eng, document.Document{URL: "a", Tags: []string{"ts"}})
	mustAdd(t, eng, document.Document{URL: "b"})
	mustAdd(t, eng, document.Document{URL: "c", Tags: []string{"ts"}})

	removed, err := eng.RemoveWhere(document.ByTag("ts"))
	require.NoError(t, err)

	require.Len(t, removed, 2)
	assert.Equal(t, "a", removed[0].URL)
	assert.Equal(t, "c", removed[1].URL)
	assert.Equal(t, 1, eng.Len())
}

func TestRemoveWhere_NoMatchReturnsEmpty(t *testing.T) {
	eng := newTestEngine(t)
	mustAdd(t, eng, document.Document{URL: "a"})

	removed, err := eng.RemoveWhere(document.ByURL("zzz"))
	require.NoError(t, err)
	require.NotNil(t, removed)
	assert.Empty(t, removed)
	assert.Equal(t, 1, eng.Len())
}

func TestRemoveWhere_RemovedDocumentsNotSearchable(t *testing.T) {
	eng := newTestEngine(t)
	mustAdd(t, eng, document.Document{URL: "a", Name: "kubernetes"})

	_, err := eng.RemoveWhere(document.ByURL("a"))
	require.NoError(t, err)

	results, err := eng.Query("kubernetes", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAdd_StoresCopy(t *testing.T) {
	eng := newTestEngine(t)
	doc := document.Document{URL: "a", Tags: []string{"t"}}
	mustAdd(t, eng, doc)

	doc.Tags[0] = "changed"
	assert.Equal(t, []string{"t"}, eng.Documents()[0].Tags)
}

// ============================================================
// Query
// ============================================================

func TestQuery_EmptyIndex(t *testing.T) {
	eng := newTestEngine(t)

	results, err := eng.Query("anything", 10)
	require.NoError(t, err)
	require.NotNil(t, results)
	assert.Empty(t, results)
}

func TestQuery_EmptyTerm(t *testing.T) {
	eng := newTestEngine(t, document.Document{URL: "a", Name: "alpha"})

	results, err := eng.Query("   ", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestQuery_ShortTermsIgnored(t *testing.T) {
	eng := newTestEngine(t, document.Document{URL: "a", Name: "go"})

	results, err := eng.Query("go", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestQuery_CaseInsensitive(t *testing.T) {
	eng := newTestEngine(t, document.Document{URL: "a", Title: "Kubernetes Operators"})

	results, err := eng.Query("KUBERNETES", 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestQuery_Substring(t *testing.T) {
	eng := newTestEngine(t, document.Document{URL: "a", Name: "examples"})

	results, err := eng.Query("exam", 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestQuery_SearchesEveryWeightedField(t *testing.T) {
	eng := newTestEngine(t,
		document.Document{URL: "1", Name: "zebra"},
		document.Document{URL: "2", Note: "zebra"},
		document.Document{URL: "3", Title: "zebra"},
		document.Document{URL: "4", Tags: []string{"zebra"}},
		document.Document{URL: "https://zebra.example"},
		document.Document{URL: "6", Description: "zebra"},
		document.Document{URL: "7", Keywords: "zebra"},
		document.Document{URL: "8", Content: "zebra"},
		document.Document{URL: "9", BookmarkID: "zebra"},
	)

	results, err := eng.Query("zebra", 0)
	require.NoError(t, err)
	assert.Len(t, results, 8)
	assert.NotContains(t, results.URLs(), "9")
}

func TestQuery_CommonWordsAreSearchable(t *testing.T) {
	words := []string{"the", "about", "same", "other", "where", "before", "which", "would"}
	eng := newTestEngine(t)
	for _, w := range words {
		mustAdd(t, eng, document.Document{URL: "https://" + w + ".example", Name: w})
	}

	for _, w := range words {
		t.Run(w, func(t *testing.T) {
			results, err := eng.Query(w, 10)
			require.NoError(t, err)
			assert.Contains(t, results.URLs(), "https://"+w+".example")

			results, err = eng.Query("'"+w, 10)
			require.NoError(t, err)
			assert.Contains(t, results.URLs(), "https://"+w+".example")
		})
	}
}

func TestQuery_NameOutranksContent(t *testing.T) {
	eng := newTestEngine(t,
		document.Document{URL: "content-match", Content: "golang"},
		document.Document{URL: "name-match", Name: "golang"},
	)

	results, err := eng.Query("golang", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "name-match", results[0].Document.URL)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestQuery_Limit(t *testing.T) {
	eng := newTestEngine(t)
	for _, u := range []string{"a", "b", "c", "d"} {
		mustAdd(t, eng, document.Document{URL: u, Name: "shared"})
	}

	results, err := eng.Query("shared", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	all, err := eng.Query("shared", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestQuery_EqualScoresKeepInsertionOrder(t *testing.T) {
	eng := newTestEngine(t)
	for _, u := range []string{"first", "second", "third"} {
		mustAdd(t, eng, document.Document{URL: u, Name: "same"})
	}

	results, err := eng.Query("same", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, results.URLs())
}

func TestQuery_ThresholdZeroIsExact(t *testing.T) {
	eng := newTestEngine(t, document.Document{URL: "a", Name: "golang"})

	results, err := eng.Query("golanf", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestQuery_ThresholdAllowsTypos(t *testing.T) {
	opts := DefaultQueryOptions()
	opts.Threshold = 0.3
	eng, err := Build(DefaultFields(), []document.Document{{URL: "a", Name: "golang"}}, opts)
	require.NoError(t, err)
	defer eng.Close()

	results, err := eng.Query("golanf", 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestQuery_ExtendedSyntax(t *testing.T) {
	eng := newTestEngine(t,
		document.Document{URL: "go", Name: "golang tutorial"},
		document.Document{URL: "py", Name: "python tutorial"},
		document.Document{URL: "rs", Name: "rust handbook"},
	)

	cases := []struct {
		query  string
		expect []string
	}{
		{"tutorial !golang", []string{"py"}},
		{"^pyth", []string{"py"}},
		{"golang | handbook", []string{"go", "rs"}},
		{"'book", []string{"rs"}},
		{"book$", []string{"rs"}},
		{"!tutorial", []string{"rs"}},
		{"golang python", nil},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			results, err := eng.Query(tc.query, 0)
			require.NoError(t, err)
			assert.ElementsMatch(t, tc.expect, results.URLs())
		})
	}
}

func TestQuery_PlainModeMatchesAnyWord(t *testing.T) {
	opts := DefaultQueryOptions()
	opts.UseExtendedSearch = false
	eng, err := Build(DefaultFields(), []document.Document{
		{URL: "go", Name: "golang"},
		{URL: "py", Name: "python"},
	}, opts)
	require.NoError(t, err)
	defer eng.Close()

	results, err := eng.Query("golang python", 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"go", "py"}, results.URLs())
}

func TestQuery_IncludeMatches(t *testing.T) {
	eng := newTestEngine(t, document.Document{URL: "a", Name: "golang tutorial"})

	results, err := eng.Query("tutorial", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	var nameMatch *Match
	for i := range results[0].Matches {
		if results[0].Matches[i].Field == "name" {
			nameMatch = &results[0].Matches[i]
		}
	}
	require.NotNil(t, nameMatch)
	assert.Equal(t, "golang tutorial", nameMatch.Value)
	assert.Contains(t, nameMatch.Indices, [2]int{7, 15})
}

func TestQuery_OptionsDisableScoreAndMatches(t *testing.T) {
	opts := DefaultQueryOptions()
	opts.IncludeScore = false
	opts.IncludeMatches = false
	eng, err := Build(DefaultFields(), []document.Document{{URL: "a", Name: "golang"}}, opts)
	require.NoError(t, err)
	defer eng.Close()

	results, err := eng.Query("golang", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Zero(t, results[0].Score)
	assert.Nil(t, results[0].Matches)
}

// ============================================================
// Export / Close
// ============================================================

func TestExport(t *testing.T) {
	eng := newTestEngine(t)
	empty := eng.Export()
	assert.Empty(t, empty.Documents)
	assert.Equal(t, DefaultFields(), empty.Fields)
	assert.Equal(t, DefaultQueryOptions(), empty.Options)

	mustAdd(t, eng, document.Document{URL: "a"})
	state := eng.Export()
	require.Len(t, state.Documents, 1)
	assert.NotEqual(t, empty.Fingerprint, state.Fingerprint)
}

func TestClose(t *testing.T) {
	eng, err := Build(DefaultFields(), nil, DefaultQueryOptions())
	require.NoError(t, err)

	require.NoError(t, eng.Close())
	require.NoError(t, eng.Close())

	assert.ErrorIs(t, eng.Add(document.Document{URL: "a"}), ErrClosed)
	_, err = eng.Query("x", 1)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = eng.RemoveWhere(document.All())
	assert.ErrorIs(t, err, ErrClosed)
}

// ============================================================
// Results helpers
// ============================================================

func TestResultsHelpers(t *testing.T) {
	results := Results{
		{Document: document.Document{URL: "a", Tags: []string{"x"}}, Score: 3},
		{Document: document.Document{URL: "b"}, Score: 1},
	}

	assert.Equal(t, []string{"a", "b"}, results.URLs())
	assert.Len(t, results.Documents(), 2)
	assert.Equal(t, []string{"a"}, results.FilterByTag("x").URLs())
	assert.Equal(t, []string{"a"}, results.FilterByMinScore(2).URLs())
}

func TestLookup(t *testing.T) {
	eng := newTestEngine(t)
	mustAdd(t, eng, document.Document{URL: "u", Name: "first"})
	mustAdd(t, eng, document.Document{URL: "u", Name: "second"})

	doc, ok := eng.Lookup("u")
	require.True(t, ok)
	assert.Equal(t, "first", doc.Name)

	_, ok = eng.Lookup("missing")
	assert.False(t, ok)
}
