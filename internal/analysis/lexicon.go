package analysis

import (
	"strings"
	"unicode"
)

// LexiconScorer scores text as the mean polarity of the words it finds in
// a polarity lexicon.
//
// A negator ("not", "never", "don't", ...) flips and damps the next polar
// word within a short window; an intensifier ("very", "so", ...) scales it.
type LexiconScorer struct {
	// Lexicon maps lower-case words to polarities in [-1, 1]. Nil uses the
	// built-in English lexicon.
	Lexicon map[string]float64
}

const (
	negationFactor  = -0.5
	negationWindow  = 3
	intensifyFactor = 1.5
)

// Polarity implements Scorer.
func (s LexiconScorer) Polarity(text string) float64 {
	lexicon := s.Lexicon
	if lexicon == nil {
		lexicon = defaultLexicon
	}

	var sum float64
	var matched int
	negateFor := 0
	boost := 1.0

	for _, tok := range Tokenize(text) {
		word := lookupForm(tok)
		if word == "" {
			continue
		}

		if isNegator(word) {
			negateFor = negationWindow
			continue
		}
		if factor, ok := intensifiers[word]; ok {
			boost *= factor
			continue
		}

		polarity, ok := lexicon[word]
		if !ok {
			if negateFor > 0 {
				negateFor--
			}
			continue
		}

		polarity *= boost
		if negateFor > 0 {
			polarity *= negationFactor
		}
		sum += clamp(polarity)
		matched++

		negateFor = 0
		boost = 1.0
	}

	if matched == 0 {
		return 0
	}
	return clamp(sum / float64(matched))
}

// lookupForm strips surrounding punctuation and lowercases. It is only
// used for lexicon lookup.
func lookupForm(tok string) string {
	tok = strings.ReplaceAll(tok, "’", "'")
	tok = strings.TrimFunc(tok, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return lower(tok)
}

func isNegator(word string) bool {
	if _, ok := negators[word]; ok {
		return true
	}
	return strings.HasSuffix(word, "n't")
}

var negators = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "nor": {}, "none": {},
	"nobody": {}, "nothing": {}, "neither": {}, "cannot": {}, "aint": {},
}

var intensifiers = map[string]float64{
	"very":       intensifyFactor,
	"so":         intensifyFactor,
	"really":     intensifyFactor,
	"too":        intensifyFactor,
	"extremely":  intensifyFactor,
	"totally":    intensifyFactor,
	"truly":      intensifyFactor,
	"completely": intensifyFactor,
	"absolutely": intensifyFactor,
	"such":       intensifyFactor,
	"barely":     0.5,
	"hardly":     0.5,
	"slightly":   0.5,
	"somewhat":   0.5,
}

var defaultLexicon = map[string]float64{
	// positive
	"love": 0.5, "loved": 0.7, "loving": 0.6, "lovely": 0.5, "like": 0.2,
	"happy": 0.8, "happiness": 0.8, "joy": 0.8, "joyful": 0.8, "glad": 0.5,
	"good": 0.7, "great": 0.8, "best": 1.0, "better": 0.5, "beautiful": 0.85,
	"sweet": 0.35, "nice": 0.6, "wonderful": 1.0, "amazing": 0.6, "awesome": 1.0,
	"perfect": 1.0, "fine": 0.4, "free": 0.4, "fun": 0.3, "smile": 0.3,
	"smiling": 0.3, "laugh": 0.3, "shine": 0.3, "shining": 0.3, "bright": 0.7,
	"heaven": 0.5, "dream": 0.3, "hope": 0.4, "kiss": 0.4, "warm": 0.6,
	"peace": 0.5, "alive": 0.1, "together": 0.2, "forever": 0.2, "true": 0.35,
	"gold": 0.3, "rich": 0.4, "win": 0.8, "winning": 0.5, "proud": 0.8,
	"cool": 0.35, "baby": 0.1, "dance": 0.3, "dancing": 0.3, "delight": 0.7,
	"thrill": 0.5, "thriller": 0.1, "magic": 0.5, "safe": 0.5, "strong": 0.4,
	"sunshine": 0.6, "yes": 0.2, "friend": 0.3, "trust": 0.4, "precious": 0.5,

	// negative
	"hate": -0.8, "hated": -0.9, "sad": -0.5, "sadness": -0.6, "cry": -0.5,
	"crying": -0.5, "tears": -0.5, "pain": -0.6, "hurt": -0.6, "hurts": -0.6,
	"bad": -0.7, "worse": -0.6, "worst": -1.0, "wrong": -0.5, "evil": -1.0,
	"alone": -0.3, "lonely": -0.5, "lost": -0.3, "broken": -0.4, "break": -0.3,
	"die": -0.6, "dying": -0.6, "dead": -0.2, "death": -0.6, "kill": -0.7,
	"killer": -0.5, "fear": -0.6, "afraid": -0.6, "scared": -0.5, "scream": -0.4,
	"dark": -0.15, "darkness": -0.4, "cold": -0.3, "angry": -0.5, "anger": -0.5,
	"mad": -0.6, "cruel": -0.8, "lie": -0.4, "lies": -0.4, "liar": -0.6,
	"fight": -0.3, "war": -0.6, "blood": -0.3, "bleed": -0.5, "sorrow": -0.7,
	"misery": -0.8, "miserable": -1.0, "sick": -0.7, "tired": -0.4, "weak": -0.4,
	"ugly": -0.7, "terrible": -1.0, "horrible": -1.0, "awful": -1.0, "poor": -0.4,
	"goodbye": -0.2, "gone": -0.2, "leave": -0.1, "cheat": -0.6, "regret": -0.5,
	"danger": -0.5, "dangerous": -0.6, "hell": -0.6, "ghost": -0.2, "beat": -0.1,
}
