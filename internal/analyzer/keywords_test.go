package analyzer

import (
	"errors"
	"reflect"
	"testing"

	"github.com/zombar/textsense/internal/models"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"lowercases", "Hello World", []string{"hello", "world"}},
		{"punctuation splits", "fast, fast, fast!", []string{"fast", "fast", "fast"}},
		{"digits split", "abc123def", []string{"abc", "def"}},
		{"apostrophe splits", "don't", []string{"don", "t"}},
		{"non-ascii splits", "café au lait", []string{"caf", "au", "lait"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokens(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected []string
	}{
		{"frequency order", "dog cat dog bird cat fish", 2, []string{"dog", "cat"}},
		{"ties keep first appearance", "zebra apple mango", 3, []string{"zebra", "apple", "mango"}},
		{"limit larger than vocabulary", "alpha beta", 10, []string{"alpha", "beta"}},
		{"stop words removed", "the cat and the hat", 5, []string{"cat", "hat"}},
		{"short words removed", "go to ox run", 5, []string{"run"}},
		{"case folded", "Rust RUST rust Go", 5, []string{"rust"}},
		{"only stop words", "the and of", 5, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractKeywords(tt.input, tt.max, BaseStopWords())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestExtractKeywordsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
	}{
		{"blank text", "   ", 5},
		{"zero limit", "some words here", 0},
		{"negative limit", "some words here", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractKeywords(tt.input, tt.max, BaseStopWords())
			if !errors.Is(err, models.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestExtractKeywordFrequencies(t *testing.T) {
	got, err := ExtractKeywordFrequencies("It runs fast, fast, fast! The fox runs.", 3, BaseStopWords())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []models.WordFrequency{
		{Word: "fast", Count: 3},
		{Word: "runs", Count: 2},
		{Word: "fox", Count: 1},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestExtractKeywordsWithStopWords(t *testing.T) {
	got, err := ExtractKeywordsWithStopWords("Golang gophers love golang channels", 5, []string{" GOLANG "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"gophers", "love", "channels"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}

	if BaseStopWords().IsStopWord("golang") {
		t.Error("extra stop words must not modify the base set")
	}
}

func TestKeywordProperties(t *testing.T) {
	text := "Every keyword must be lower case, at least three letters, and never a stop word. " +
		"Keywords repeat: keyword keyword words words words."

	got, err := ExtractKeywordFrequencies(text, 100, BaseStopWords())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[string]bool)
	for i, wf := range got {
		if len(wf.Word) < MinKeywordLength {
			t.Errorf("keyword %q is too short", wf.Word)
		}
		if BaseStopWords().IsStopWord(wf.Word) {
			t.Errorf("keyword %q is a stop word", wf.Word)
		}
		if seen[wf.Word] {
			t.Errorf("keyword %q appears twice", wf.Word)
		}
		seen[wf.Word] = true
		if i > 0 && got[i-1].Count < wf.Count {
			t.Errorf("keywords not in descending count order at %d: %v", i, got)
		}
	}
}

func TestStopWordSet(t *testing.T) {
	base := BaseStopWords()

	for _, w := range []string{"the", "THE", " and ", "Which"} {
		if !base.IsStopWord(w) {
			t.Errorf("expected %q to be a stop word", w)
		}
	}
	if base.IsStopWord("keyword") {
		t.Error("keyword should not be a stop word")
	}

	extended := base.WithExtra("Custom", "", "the")
	if extended.Len() != base.Len()+1 {
		t.Errorf("expected %d words, got %d", base.Len()+1, extended.Len())
	}
	if !extended.IsStopWord("custom") {
		t.Error("extended set should contain custom")
	}

	words := base.Words()
	if len(words) != base.Len() {
		t.Errorf("Words returned %d entries, expected %d", len(words), base.Len())
	}
	for i := 1; i < len(words); i++ {
		if words[i-1] >= words[i] {
			t.Fatalf("words not sorted at %d: %q >= %q", i, words[i-1], words[i])
		}
	}

	var empty StopWordSet
	if empty.IsStopWord("the") || empty.Len() != 0 {
		t.Error("zero StopWordSet should be empty")
	}
}
