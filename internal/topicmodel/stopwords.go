package topicmodel

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
)

//go:embed stopwords/english.txt
var englishStopWords string

// EnglishStopWords returns the built-in English closed-class word list.
func EnglishStopWords() []string {
	return strings.Fields(englishStopWords)
}

// ResolveStopWords expands a stop word selector into a word set.
// A single "english" or "none" entry selects a built-in list; anything else
// is taken as an explicit list of words.
func ResolveStopWords(selector []string) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	if len(selector) == 1 {
		switch strings.ToLower(strings.TrimSpace(selector[0])) {
		case domain.StopWordsEnglish:
			for _, w := range EnglishStopWords() {
				set[w] = struct{}{}
			}
			return set, nil
		case domain.StopWordsNone, "":
			return set, nil
		}
	}
	for _, w := range selector {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if w == domain.StopWordsEnglish || w == domain.StopWordsNone {
			return nil, fmt.Errorf("%w: %q cannot be combined with other stop words", domain.ErrInvalidInput, w)
		}
		set[w] = struct{}{}
	}
	return set, nil
}
