package analyzer

import (
	"strings"
	"unicode"

	"tokencost/internal/port"
)

var _ port.Tokenizer = (*Tokenizer)(nil)

// Tokenizer lowercases text, splits it on whitespace and drops stopwords.
// Unless configured to keep them, ASCII punctuation characters are removed
// before splitting.
type Tokenizer struct {
	includeSpecialChars bool
}

// NewTokenizer creates a new Tokenizer.
func NewTokenizer(includeSpecialChars bool) *Tokenizer {
	return &Tokenizer{includeSpecialChars: includeSpecialChars}
}

// IncludeSpecialChars reports whether punctuation is kept in tokens.
func (t *Tokenizer) IncludeSpecialChars() bool {
	return t.includeSpecialChars
}

// Tokenize splits text into filtered tokens.
func (t *Tokenizer) Tokenize(text string) []string {
	return FilteredTokens(text, t.includeSpecialChars)
}

// CountTokens returns the number of filtered tokens in text.
func (t *Tokenizer) CountTokens(text string) int {
	return len(t.Tokenize(text))
}

// FilteredTokens converts text into an ordered list of lowercase tokens with
// stopwords removed. Duplicates are kept. It never fails; an empty or
// stopword-only text yields an empty list.
//
// With includeSpecialChars set, punctuation stays attached to its word, so
// "the," is not recognised as the stopword "the".
func FilteredTokens(text string, includeSpecialChars bool) []string {
	if !includeSpecialChars {
		text = stripPunctuation(text)
	}

	words := strings.FieldsFunc(lower(text), isSpace)
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if IsStopWord(word) {
			continue
		}
		tokens = append(tokens, word)
	}

	return tokens
}

// lower lowercases text. U+0130 (dotted capital I) becomes "i" followed by a
// combining dot above, so "İt" does not collapse into the stopword "it".
func lower(text string) string {
	if strings.ContainsRune(text, '\u0130') {
		text = strings.ReplaceAll(text, "\u0130", "i\u0307")
	}
	return strings.ToLower(text)
}

// isSpace also treats the ASCII information separators U+001C..U+001F as
// whitespace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// stripPunctuation deletes ASCII punctuation. Characters are removed, not
// replaced, so "don't" becomes "dont".
func stripPunctuation(text string) string {
	if strings.IndexFunc(text, isASCIIPunct) < 0 {
		return text
	}
	return strings.Map(func(r rune) rune {
		if isASCIIPunct(r) {
			return -1
		}
		return r
	}, text)
}

func isASCIIPunct(r rune) bool {
	switch {
	case r >= '!' && r <= '/':
	case r >= ':' && r <= '@':
	case r >= '[' && r <= '`':
	case r >= '{' && r <= '~':
	default:
		return false
	}
	return true
}
