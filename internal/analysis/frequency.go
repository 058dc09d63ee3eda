// Package analysis computes lexical and sentiment metrics for lyric text.
package analysis

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lower lowercases s without locale rules. Unlike full case folding it
// keeps "ß" distinct from "ss". Casers carry state, so one is created per
// call.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Tokenize splits text into whitespace-delimited tokens. Punctuation stays
// attached to its token.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// WordCount is one entry of a frequency distribution.
type WordCount struct {
	Word  string
	Count int
}

// WordWeight is a WordCount scaled against the most frequent word, in (0, 1].
type WordWeight struct {
	WordCount
	Weight float64
}

// Frequency counts lowercased tokens and remembers the order in which
// each word first appeared.
type Frequency struct {
	counts map[string]int
	order  []string
	total  int
}

// NewFrequency builds the distribution of tokens.
func NewFrequency(tokens []string) *Frequency {
	f := &Frequency{counts: make(map[string]int)}
	for _, tok := range tokens {
		word := lower(tok)
		if word == "" {
			continue
		}
		if _, ok := f.counts[word]; !ok {
			f.order = append(f.order, word)
		}
		f.counts[word]++
		f.total++
	}
	return f
}

// Count returns how often word occurred, matching case-insensitively.
func (f *Frequency) Count(word string) int {
	return f.counts[lower(word)]
}

// Total is the number of counted tokens.
func (f *Frequency) Total() int { return f.total }

// Len is the number of distinct words.
func (f *Frequency) Len() int { return len(f.order) }

// Entries returns every word with its count in first-occurrence order.
func (f *Frequency) Entries() []WordCount {
	entries := make([]WordCount, len(f.order))
	for i, w := range f.order {
		entries[i] = WordCount{Word: w, Count: f.counts[w]}
	}
	return entries
}

// MostFrequent returns at most n words by descending count. Words with equal
// counts keep their first-occurrence order.
func (f *Frequency) MostFrequent(n int) []WordCount {
	if n <= 0 {
		return []WordCount{}
	}
	entries := f.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Weights returns the top n words with weights relative to the most
// frequent one, for word cloud sizing.
func (f *Frequency) Weights(n int) []WordWeight {
	top := f.MostFrequent(n)
	weights := make([]WordWeight, len(top))
	if len(top) == 0 {
		return weights
	}
	max := float64(top[0].Count)
	for i, wc := range top {
		weights[i] = WordWeight{WordCount: wc, Weight: float64(wc.Count) / max}
	}
	return weights
}
