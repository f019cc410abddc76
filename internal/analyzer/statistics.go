package analyzer

import (
	"strings"
	"unicode"

	"github.com/zombar/textsense/internal/models"
)

// ReadingSecondsPerCharacter is the reading pace used for ReadingTimeSeconds
const ReadingSecondsPerCharacter = 0.15

// AnalyzeStatistics computes character, word and sentence counts and the
// estimated reading time. Blank text yields all-zero statistics.
//
// Character and word counts are derived independently: characters are the
// non-whitespace runes of the trimmed text, words are the whitespace-separated
// pieces of it.
func AnalyzeStatistics(text string) (models.TextStatistics, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return models.TextStatistics{}, nil
	}

	sentenceCount, err := countSentences(trimmed)
	if err != nil {
		return models.TextStatistics{}, err
	}

	characters := countCharacters(trimmed)
	return models.TextStatistics{
		CharacterCount:     characters,
		WordCount:          countWords(text),
		SentenceCount:      sentenceCount,
		ReadingTimeSeconds: float64(characters) * ReadingSecondsPerCharacter,
	}, nil
}

// countCharacters counts the non-whitespace runes of text
func countCharacters(text string) int {
	count := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			count++
		}
	}
	return count
}

// countWords counts whitespace-delimited pieces of the trimmed text
func countWords(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	return len(strings.Fields(trimmed))
}

// countSentences counts the non-blank sentence segments of text
func countSentences(text string) (int, error) {
	sentences, err := SplitSentences(text)
	if err != nil {
		return 0, err
	}
	return len(sentences), nil
}
