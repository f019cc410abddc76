package analyzer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/data"
	"github.com/neurosnap/sentences/english"

	"github.com/zombar/textsense/internal/models"
)

// extraAbbreviations are honorifics and business suffixes that must never end
// a sentence, on top of those learned in the bundled English training data
var extraAbbreviations = []string{
	"dr", "mr", "mrs", "ms", "prof", "sr", "jr", "st", "vs", "etc", "inc", "ltd", "co",
}

var (
	segmenterOnce sync.Once
	segmenter     *sentences.DefaultSentenceTokenizer
	segmenterErr  error
)

// sentenceSegmenter loads the Punkt English model on first use. The tokenizer
// is read-only afterwards and shared by all goroutines.
func sentenceSegmenter() (*sentences.DefaultSentenceTokenizer, error) {
	segmenterOnce.Do(func() {
		b, err := data.Asset("data/english.json")
		if err != nil {
			segmenterErr = fmt.Errorf("load sentence model: %w", err)
			return
		}

		training, err := sentences.LoadTraining(b)
		if err != nil {
			segmenterErr = fmt.Errorf("parse sentence model: %w", err)
			return
		}
		for _, abbr := range extraAbbreviations {
			training.AbbrevTypes.Add(abbr)
		}

		segmenter, segmenterErr = english.NewSentenceTokenizer(training)
	})
	return segmenter, segmenterErr
}

// SplitSentences returns the non-blank sentences of text, trimmed
func SplitSentences(text string) ([]string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}

	tokenizer, err := sentenceSegmenter()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrAnalysisFailure, err)
	}

	var result []string
	for _, s := range tokenizer.Tokenize(trimmed) {
		if sentence := strings.TrimSpace(s.Text); sentence != "" {
			result = append(result, sentence)
		}
	}
	return result, nil
}
