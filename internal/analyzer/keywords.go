package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zombar/textsense/internal/models"
)

const (
	// DefaultMaxKeywords is the keyword limit used when the caller gives none
	DefaultMaxKeywords = 10

	// MinKeywordLength is the shortest token that can become a keyword
	MinKeywordLength = 3
)

// frequencyTable counts words while remembering the order in which each word
// was first seen
type frequencyTable struct {
	entries []models.WordFrequency
	index   map[string]int
}

func newFrequencyTable() *frequencyTable {
	return &frequencyTable{index: make(map[string]int)}
}

func (t *frequencyTable) add(word string) {
	if i, ok := t.index[word]; ok {
		t.entries[i].Count++
		return
	}
	t.index[word] = len(t.entries)
	t.entries = append(t.entries, models.WordFrequency{Word: word, Count: 1})
}

// top returns up to limit entries by descending count. Equal counts keep
// first-seen order.
func (t *frequencyTable) top(limit int) []models.WordFrequency {
	ranked := make([]models.WordFrequency, len(t.entries))
	copy(ranked, t.entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// wordFrequencies tokenizes text and counts every token that is long enough
// and not a stop word
func wordFrequencies(text string, stopWords StopWordSet) *frequencyTable {
	table := newFrequencyTable()
	for _, word := range Tokens(text) {
		if len(word) >= MinKeywordLength && !stopWords.IsStopWord(word) {
			table.add(word)
		}
	}
	return table
}

func validateKeywordArgs(text string, maxKeywords int) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text must not be blank", models.ErrInvalidInput)
	}
	if maxKeywords < 1 {
		return fmt.Errorf("%w: maxKeywords must be greater than zero, got %d", models.ErrInvalidInput, maxKeywords)
	}
	return nil
}

// ExtractKeywordFrequencies returns the maxKeywords most frequent words of
// text together with their counts
func ExtractKeywordFrequencies(text string, maxKeywords int, stopWords StopWordSet) ([]models.WordFrequency, error) {
	if err := validateKeywordArgs(text, maxKeywords); err != nil {
		return nil, err
	}
	return wordFrequencies(text, stopWords).top(maxKeywords), nil
}

// ExtractKeywords returns the maxKeywords most frequent words of text,
// skipping stop words and words shorter than MinKeywordLength
func ExtractKeywords(text string, maxKeywords int, stopWords StopWordSet) ([]string, error) {
	ranked, err := ExtractKeywordFrequencies(text, maxKeywords, stopWords)
	if err != nil {
		return nil, err
	}

	keywords := make([]string, len(ranked))
	for i, wf := range ranked {
		keywords[i] = wf.Word
	}
	return keywords, nil
}

// ExtractKeywordsWithStopWords runs ExtractKeywords with extra stop words
// merged case-insensitively into the base set
func ExtractKeywordsWithStopWords(text string, maxKeywords int, extra []string) ([]string, error) {
	return ExtractKeywords(text, maxKeywords, BaseStopWords().WithExtra(extra...))
}
