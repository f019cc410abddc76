package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Label is the five-level sentiment category
type Label int

const (
	VeryNegative Label = iota
	Negative
	Neutral
	Positive
	VeryPositive
)

// MinScore and MaxScore bound the numeric sentiment scale
const (
	MinScore = 0
	MaxScore = 4
)

var labelNames = map[Label]string{
	VeryNegative: "Very Negative",
	Negative:     "Negative",
	Neutral:      "Neutral",
	Positive:     "Positive",
	VeryPositive: "Very Positive",
}

var labelScores = map[Label]int{
	VeryNegative: 0,
	Negative:     1,
	Neutral:      2,
	Positive:     3,
	VeryPositive: 4,
}

var labelsByScore = map[int]Label{
	0: VeryNegative,
	1: Negative,
	2: Neutral,
	3: Positive,
	4: VeryPositive,
}

// Labels returns every label ordered by score
func Labels() []Label {
	return []Label{VeryNegative, Negative, Neutral, Positive, VeryPositive}
}

// Valid reports whether l is one of the five defined labels
func (l Label) Valid() bool {
	_, ok := labelNames[l]
	return ok
}

// Score returns the numeric score of the label, or -1 for an undefined label
func (l Label) Score() int {
	if s, ok := labelScores[l]; ok {
		return s
	}
	return -1
}

// String returns the display name of the label
func (l Label) String() string {
	if name, ok := labelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Label(%d)", int(l))
}

// LabelFromScore returns the label for a score in [0,4]
func LabelFromScore(score int) (Label, bool) {
	l, ok := labelsByScore[score]
	return l, ok
}

// ParseLabel parses a label name case-insensitively. Spaces, underscores and
// hyphens between words are optional, so "Very Positive", "very_positive" and
// "VeryPositive" all parse.
func ParseLabel(s string) (Label, bool) {
	key := normalizeLabel(s)
	for l, name := range labelNames {
		if normalizeLabel(name) == key {
			return l, true
		}
	}
	return 0, false
}

func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

// MarshalJSON encodes the label as its display name
func (l Label) MarshalJSON() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("cannot marshal undefined label %d", int(l))
	}
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a label from its display name
func (l *Label) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("label must be a string: %w", err)
	}
	parsed, ok := ParseLabel(name)
	if !ok {
		return fmt.Errorf("unknown sentiment label %q", name)
	}
	*l = parsed
	return nil
}

// NewSentimentResult builds a result whose label matches score
func NewSentimentResult(score int) (SentimentResult, error) {
	label, ok := LabelFromScore(score)
	if !ok {
		return SentimentResult{}, fmt.Errorf("sentiment score %d outside [%d,%d]", score, MinScore, MaxScore)
	}
	return SentimentResult{Score: score, Label: label}, nil
}
