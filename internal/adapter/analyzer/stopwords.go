package analyzer

import "sort"

// stopwords is built once at init and never mutated.
var stopwords = defaultStopwords()

// IsStopWord reports whether word is an exact member of the stopword set.
// The set is lowercase, so callers must lowercase word first.
func IsStopWord(word string) bool {
	_, ok := stopwords[word]
	return ok
}

// StopWords returns the stopword set as a sorted slice. The slice is a copy.
func StopWords() []string {
	words := make([]string, 0, len(stopwords))
	for w := range stopwords {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// defaultStopwords returns a set of common English stopwords.
func defaultStopwords() map[string]struct{} {
	stops := []string{
		"the", "and", "is", "in", "to", "it", "of", "a", "that", "on", "for",
		"with", "as", "was", "at", "by", "an", "be", "this", "which", "or",
		"from", "are", "but", "not", "have", "has", "they", "you", "we",
	}
	m := make(map[string]struct{}, len(stops))
	for _, s := range stops {
		m[s] = struct{}{}
	}
	return m
}
