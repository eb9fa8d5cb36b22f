package port

// Tokenizer turns text into the filtered tokens that are priced.
type Tokenizer interface {
	Tokenize(text string) []string

	CountTokens(text string) int
}
