package models

// TextStatistics holds the locally computed counts for a piece of text
type TextStatistics struct {
	CharacterCount     int     `json:"characterCount"`
	WordCount          int     `json:"wordCount"`
	SentenceCount      int     `json:"sentenceCount"`
	ReadingTimeSeconds float64 `json:"readingTimeSeconds"`
}

// WordFrequency represents a keyword and the number of times it occurred
type WordFrequency struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// SentimentResult is the classification returned by a sentiment classifier.
// Score and Label always agree; build one with NewSentimentResult.
type SentimentResult struct {
	Score int   `json:"score"`
	Label Label `json:"label"`
}

// TextSenseResult is the combined analysis returned for one request
type TextSenseResult struct {
	Statistics TextStatistics  `json:"statistics"`
	Sentiment  SentimentResult `json:"sentiment"`
	Keywords   []string        `json:"keywords"`
}
