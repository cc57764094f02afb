package search

import (
	"strings"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// substringBoost scales substring matches below whole-term matches.
const substringBoost = 0.5

type matchKind int

const (
	matchFuzzy matchKind = iota
	matchInclude
	matchExact
	matchPrefix
	matchSuffix
)

type queryTerm struct {
	kind   matchKind
	text   string
	negate bool
}

// parseQuery splits a query into OR-groups of AND-ed terms.
//
// Without extended syntax every whitespace-separated word is its own group,
// so any word may match. Terms shorter than minLen runes are dropped, and
// groups left without terms are removed.
func parseQuery(q string, extended bool, minLen int) [][]queryTerm {
	if !extended {
		var groups [][]queryTerm
		for _, word := range strings.Fields(q) {
			if utf8.RuneCountInString(word) < minLen {
				continue
			}
			groups = append(groups, []queryTerm{{kind: matchFuzzy, text: word}})
		}
		return groups
	}

	var groups [][]queryTerm
	for _, part := range strings.Split(q, "|") {
		var group []queryTerm
		for _, word := range strings.Fields(part) {
			t, ok := parseTerm(word)
			if !ok || utf8.RuneCountInString(t.text) < minLen {
				continue
			}
			group = append(group, t)
		}
		if len(group) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}

func parseTerm(word string) (queryTerm, bool) {
	t := queryTerm{kind: matchFuzzy}

	if strings.HasPrefix(word, "!") {
		t.negate = true
		word = word[1:]
	}

	switch {
	case strings.HasPrefix(word, "^") && strings.HasSuffix(word, "$") && len(word) > 2:
		t.kind = matchExact
		word = word[1 : len(word)-1]
	case strings.HasPrefix(word, "^"):
		t.kind = matchPrefix
		word = word[1:]
	case strings.HasPrefix(word, "="):
		t.kind = matchExact
		word = word[1:]
	case strings.HasPrefix(word, "'"):
		t.kind = matchInclude
		word = word[1:]
	case strings.HasSuffix(word, "$"):
		t.kind = matchSuffix
		word = word[:len(word)-1]
	}

	if t.negate && t.kind == matchFuzzy {
		t.kind = matchInclude
	}

	t.text = strings.Trim(word, `"`)
	return t, t.text != ""
}

// buildQuery turns parsed groups into a Bleve query. It returns nil when
// no group produced a usable clause.
func buildQuery(groups [][]queryTerm, fields []Field, fuzziness int) query.Query {
	var alternatives []query.Query
	for _, group := range groups {
		bq := bleve.NewBooleanQuery()
		positive, clauses := false, 0
		for _, t := range group {
			q := termQuery(t, fields, fuzziness)
			if q == nil {
				continue
			}
			clauses++
			if t.negate {
				bq.AddMustNot(q)
			} else {
				bq.AddMust(q)
				positive = true
			}
		}
		if clauses == 0 {
			continue
		}
		if !positive {
			bq.AddMust(bleve.NewMatchAllQuery())
		}
		alternatives = append(alternatives, bq)
	}

	switch len(alternatives) {
	case 0:
		return nil
	case 1:
		return alternatives[0]
	default:
		return bleve.NewDisjunctionQuery(alternatives...)
	}
}

// termQuery expands one term across every weighted field.
func termQuery(t queryTerm, fields []Field, fuzziness int) query.Query {
	pattern := wildcardPattern(t.text)

	var clauses []query.Query
	for _, f := range fields {
		switch t.kind {
		case matchFuzzy:
			mq := bleve.NewMatchQuery(t.text)
			mq.SetField(f.Name)
			mq.SetBoost(f.Weight)
			mq.SetFuzziness(fuzziness)
			clauses = append(clauses, mq)
			if pattern != "" {
				clauses = append(clauses, wildcard("*"+pattern+"*", f.Name, f.Weight*substringBoost))
			}
		case matchInclude:
			if pattern != "" {
				clauses = append(clauses, wildcard("*"+pattern+"*", f.Name, f.Weight))
			}
		case matchExact:
			pq := bleve.NewMatchPhraseQuery(t.text)
			pq.SetField(f.Name)
			pq.SetBoost(f.Weight)
			clauses = append(clauses, pq)
		case matchPrefix:
			if pattern != "" {
				pq := bleve.NewPrefixQuery(pattern)
				pq.SetField(f.Name)
				pq.SetBoost(f.Weight)
				clauses = append(clauses, pq)
			}
		case matchSuffix:
			if pattern != "" {
				clauses = append(clauses, wildcard("*"+pattern, f.Name, f.Weight))
			}
		}
	}

	if len(clauses) == 0 {
		return nil
	}
	return bleve.NewDisjunctionQuery(clauses...)
}

func wildcard(pattern, field string, boost float64) query.Query {
	wq := bleve.NewWildcardQuery(pattern)
	wq.SetField(field)
	wq.SetBoost(boost)
	return wq
}

// wildcardPattern lowercases text to match indexed terms and strips
// characters that carry wildcard meaning.
func wildcardPattern(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch r {
		case '*', '?', '\\', ' ', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
