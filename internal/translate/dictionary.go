// Package translate renders English summaries in Urdu.
package translate

import (
	"context"
	"strings"
)

// phraseJoiner glues the words of a multi-word Urdu entry into one token.
// ZWNJ is the conventional half-space in Urdu and Persian typography.
const phraseJoiner = "\u200c"

// Dictionary translates word by word from a fixed English→Urdu table. Inflected
// forms and words with attached punctuation are not found and pass through as is.
type Dictionary struct {
	words map[string]string
}

// NewDictionary returns a translator over the built-in table.
func NewDictionary() *Dictionary {
	return &Dictionary{words: urduWords}
}

// Translate never fails. The output has exactly one token per whitespace-delimited
// input token.
func (d *Dictionary) Translate(_ context.Context, text string) (string, error) {
	tokens := strings.Fields(text)
	for i, tok := range tokens {
		if urdu, ok := d.words[strings.ToLower(tok)]; ok {
			tokens[i] = strings.ReplaceAll(urdu, " ", phraseJoiner)
		}
	}
	return strings.Join(tokens, " "), nil
}

// Len reports the number of dictionary entries.
func (d *Dictionary) Len() int {
	return len(d.words)
}
