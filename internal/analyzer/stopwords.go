package analyzer

import (
	"sort"
	"strings"
)

// baseStopWordList holds common English function words that carry little
// meaning on their own
var baseStopWordList = []string{
	"a", "an", "and", "are", "as", "at", "be", "by", "for", "from",
	"has", "he", "in", "is", "it", "its", "of", "on", "that", "the",
	"to", "was", "will", "with", "i", "you", "we", "they", "she",
	"but", "or", "can", "have", "been", "had", "were", "this", "these",
	"those", "am", "which", "who", "what", "when", "where", "why", "how",
	"could", "would", "should", "may", "might", "must", "not", "do", "does",
	"did", "their", "them", "his", "her", "my", "your", "our", "all", "more",
	"about", "into", "through", "during", "before", "after", "above", "below",
	"between", "under", "again", "further", "then", "once", "here", "there",
	"so", "than", "too", "very", "just", "now", "such", "some", "any",
}

// baseStopWords is built once and only ever read afterwards
var baseStopWords = newStopWordSet(baseStopWordList)

// StopWordSet is an immutable set of lower-cased words to ignore during
// keyword extraction. The zero value is an empty set.
type StopWordSet struct {
	words map[string]struct{}
}

func newStopWordSet(words []string) StopWordSet {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w = normalizeStopWord(w); w != "" {
			set[w] = struct{}{}
		}
	}
	return StopWordSet{words: set}
}

func normalizeStopWord(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// BaseStopWords returns the built-in English stop word set
func BaseStopWords() StopWordSet {
	return baseStopWords
}

// IsStopWord reports whether word is in the set, ignoring case
func (s StopWordSet) IsStopWord(word string) bool {
	_, ok := s.words[normalizeStopWord(word)]
	return ok
}

// WithExtra returns a new set holding s plus extra. s is left untouched.
func (s StopWordSet) WithExtra(extra ...string) StopWordSet {
	merged := make(map[string]struct{}, len(s.words)+len(extra))
	for w := range s.words {
		merged[w] = struct{}{}
	}
	for _, w := range extra {
		if w = normalizeStopWord(w); w != "" {
			merged[w] = struct{}{}
		}
	}
	return StopWordSet{words: merged}
}

// Len returns the number of words in the set
func (s StopWordSet) Len() int {
	return len(s.words)
}

// Words returns the set's words sorted alphabetically
func (s StopWordSet) Words() []string {
	words := make([]string, 0, len(s.words))
	for w := range s.words {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
