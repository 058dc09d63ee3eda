package analysis

import "math"

// Label classifies a sentiment score.
type Label int

const (
	Neutral Label = iota
	Positive
	Negative
)

func (l Label) String() string {
	switch l {
	case Positive:
		return "Positive"
	case Negative:
		return "Negative"
	default:
		return "Neutral"
	}
}

// Sentiment is a polarity score in [-1, 1] with its label.
type Sentiment struct {
	Score float64
	Label Label
}

// LabelFor classifies score: above zero is Positive, below zero Negative,
// exactly zero Neutral.
func LabelFor(score float64) Label {
	switch {
	case score > 0:
		return Positive
	case score < 0:
		return Negative
	default:
		return Neutral
	}
}

// NewSentiment clamps score into [-1, 1] and labels it. NaN scores are
// treated as zero.
func NewSentiment(score float64) Sentiment {
	score = clamp(score)
	return Sentiment{Score: score, Label: LabelFor(score)}
}

func clamp(score float64) float64 {
	switch {
	case math.IsNaN(score):
		return 0
	case score > 1:
		return 1
	case score < -1:
		return -1
	default:
		return score
	}
}

// Scorer assigns a polarity to text. Results outside [-1, 1] are clamped by
// the Analyzer.
type Scorer interface {
	Polarity(text string) float64
}

// ScorerFunc adapts a plain function to Scorer.
type ScorerFunc func(text string) float64

func (f ScorerFunc) Polarity(text string) float64 { return f(text) }
