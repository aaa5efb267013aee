// Package tokenizer splits text into whitespace-delimited word slices and
// validates that words contain no control characters.
//
// Grounded on the original search server's SplitIntoWords / IsValidWord:
// whitespace is exactly the space character 0x20, nothing else, and a word is
// invalid if any byte in it is less than 0x20.
package tokenizer

// Split returns the ordered sequence of maximal runs of non-space bytes in
// text. Whitespace is exactly 0x20; no other byte is treated as a separator.
// Empty input yields an empty (nil) slice.
func Split(text string) []string {
	var words []string
	start := -1
	for i := 0; i < len(text); i++ {
		if text[i] == ' ' {
			if start >= 0 {
				words = append(words, text[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, text[start:])
	}
	return words
}

// Validate reports whether term contains only bytes >= 0x20. An empty term is
// considered valid by this check alone; emptiness is a separate concern
// handled by callers (the query parser treats an empty token as a distinct
// error).
func Validate(term string) bool {
	for i := 0; i < len(term); i++ {
		if term[i] < 0x20 {
			return false
		}
	}
	return true
}
