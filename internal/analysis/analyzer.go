package analysis

// Result holds the metrics derived from one text.
type Result struct {
	Length    int // number of tokens
	Frequency *Frequency
	Sentiment Sentiment
}

// Analyzer derives lexical and sentiment metrics from raw text.
type Analyzer struct {
	Scorer Scorer // nil uses LexiconScorer with the built-in lexicon
}

// Analyze computes length, word frequency and sentiment of text. Empty
// text yields a zero length, an empty distribution and a neutral score.
func (a Analyzer) Analyze(text string) Result {
	tokens := Tokenize(text)

	scorer := a.Scorer
	if scorer == nil {
		scorer = LexiconScorer{}
	}

	var score float64
	if len(tokens) > 0 {
		score = scorer.Polarity(text)
	}

	return Result{
		Length:    len(tokens),
		Frequency: NewFrequency(tokens),
		Sentiment: NewSentiment(score),
	}
}
