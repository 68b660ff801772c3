package topicmodel

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
	"github.com/custodia-labs/sercha-topics/internal/core/ports/driven"
)

// Ensure CountVectoriser implements the interface.
var _ driven.Vectoriser = (*CountVectoriser)(nil)

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// CountVectoriser converts texts into term counts over a shared vocabulary.
// Text is lowercased and stop words are removed before counting. No frequency
// thresholds are applied.
type CountVectoriser struct {
	stopWords map[string]struct{}
}

// NewCountVectoriser creates a vectoriser that drops the given stop words.
func NewCountVectoriser(stopWords map[string]struct{}) *CountVectoriser {
	if stopWords == nil {
		stopWords = map[string]struct{}{}
	}
	return &CountVectoriser{stopWords: stopWords}
}

// Tokenise splits text into lowercase tokens, stop words removed.
func (v *CountVectoriser) Tokenise(text string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, stop := v.stopWords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}

// Vectorise returns the term-count matrix of texts.
// The vocabulary is sorted, so term indices do not depend on document order.
func (v *CountVectoriser) Vectorise(ctx context.Context, texts []string) (*domain.TermMatrix, error) {
	docs := make([]map[string]int, len(texts))
	seen := make(map[string]struct{})
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		counts := make(map[string]int)
		for _, tok := range v.Tokenise(text) {
			counts[tok]++
			seen[tok] = struct{}{}
		}
		docs[i] = counts
	}

	if len(seen) == 0 {
		return nil, domain.ErrEmptyVocabulary
	}

	vocabulary := make([]string, 0, len(seen))
	for term := range seen {
		vocabulary = append(vocabulary, term)
	}
	sort.Strings(vocabulary)

	index := make(map[string]int, len(vocabulary))
	for i, term := range vocabulary {
		index[term] = i
	}

	rows := make([][]domain.TermCount, len(docs))
	for i, counts := range docs {
		row := make([]domain.TermCount, 0, len(counts))
		for term, n := range counts {
			row = append(row, domain.TermCount{Term: index[term], Count: float64(n)})
		}
		sort.Slice(row, func(a, b int) bool { return row[a].Term < row[b].Term })
		rows[i] = row
	}

	return &domain.TermMatrix{Vocabulary: vocabulary, Rows: rows}, nil
}
