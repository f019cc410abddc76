package sentiment

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync/atomic"

	"github.com/zombar/textsense/internal/analyzer"
	"github.com/zombar/textsense/internal/models"
)

var positiveWords = []string{
	"good", "great", "excellent", "amazing", "wonderful", "fantastic", "best", "love", "loved", "loving",
	"beautiful", "perfect", "awesome", "brilliant", "outstanding", "superb", "exceptional", "incredible",
	"magnificent", "marvelous", "pleasant", "delightful", "enjoyable", "happy", "glad", "pleased",
	"satisfied", "terrific", "fabulous", "splendid", "impressive", "remarkable", "positive", "advantage",
	"benefit", "success", "successful", "win", "winning", "winner", "better", "improvement", "improved",
	"exciting", "excited", "enthusiasm", "enthusiastic", "optimistic", "hopeful", "promising", "favorable",
	"like", "liked", "enjoy", "enjoyed", "lovely", "nice", "fine", "calm", "kind", "helpful",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "horrible", "poor", "worst", "hate", "hated", "hating", "ugly", "disgusting",
	"disappointing", "disappointed", "disappointment", "fail", "failed", "failure", "wrong", "problem",
	"problems", "issue", "issues", "error", "errors", "difficult", "difficulty", "hard", "impossible",
	"negative", "unfortunate", "sad", "unhappy", "angry", "frustrated", "frustrating", "annoying", "annoyed",
	"concern", "concerned", "worried", "worry", "fear", "afraid", "scary", "dangerous", "risk", "threat",
	"damage", "damaged", "harm", "harmful", "worse", "loss", "lost", "losing", "loser", "decline", "declined",
	"broken", "useless", "boring", "slow", "rude", "miserable",
}

// negators flip the polarity of the next polar word within negationWindow
// tokens. "t" is what remains of contractions such as "don't" after
// tokenization.
var negators = []string{"not", "no", "never", "nor", "without", "t"}

const negationWindow = 3

// Lexicon scores sentiment by counting positive and negative words per
// sentence. It needs no external resources but still honours the
// Initialize/Shutdown lifecycle.
type Lexicon struct {
	positive map[string]struct{}
	negative map[string]struct{}
	negators map[string]struct{}
	ready    atomic.Bool
}

// NewLexicon creates a lexicon classifier with the built-in word lists
func NewLexicon() *Lexicon {
	return &Lexicon{
		positive: toSet(positiveWords),
		negative: toSet(negativeWords),
		negators: toSet(negators),
	}
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// Initialize marks the classifier ready. Calling it again is a no-op.
func (l *Lexicon) Initialize(ctx context.Context) error {
	l.ready.Store(true)
	return nil
}

// Shutdown marks the classifier unavailable
func (l *Lexicon) Shutdown(ctx context.Context) error {
	l.ready.Store(false)
	return nil
}

// ClassifySentiment scores each sentence as 2 plus its clamped word balance
// and returns the label of the rounded mean
func (l *Lexicon) ClassifySentiment(ctx context.Context, text string) (models.SentimentResult, error) {
	if !l.ready.Load() {
		return models.SentimentResult{}, fmt.Errorf("%w: lexicon classifier not initialized", models.ErrSentimentUnavailable)
	}
	if strings.TrimSpace(text) == "" {
		return models.SentimentResult{}, fmt.Errorf("%w: text must not be blank", models.ErrInvalidInput)
	}

	sentences, err := analyzer.SplitSentences(text)
	if err != nil {
		return models.SentimentResult{}, err
	}
	if len(sentences) == 0 {
		return models.NewSentimentResult(models.Neutral.Score())
	}

	total := 0
	for _, sentence := range sentences {
		if err := ctx.Err(); err != nil {
			return models.SentimentResult{}, err
		}
		total += l.sentenceScore(sentence)
	}

	mean := float64(total) / float64(len(sentences))
	return models.NewSentimentResult(clamp(int(math.Round(mean)), models.MinScore, models.MaxScore))
}

// sentenceScore maps one sentence to [0,4]
func (l *Lexicon) sentenceScore(sentence string) int {
	balance := 0
	negated := 0
	for _, token := range analyzer.Tokens(sentence) {
		if _, ok := l.negators[token]; ok {
			negated = negationWindow
			continue
		}

		polarity := 0
		if _, ok := l.positive[token]; ok {
			polarity = 1
		} else if _, ok := l.negative[token]; ok {
			polarity = -1
		}
		if polarity == 0 {
			if negated > 0 {
				negated--
			}
			continue
		}

		if negated > 0 {
			polarity = -polarity
			negated = 0
		}
		balance += polarity
	}

	return models.Neutral.Score() + clamp(balance, -2, 2)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
