package normalizer

import (
	"unicode"

	"github.com/baditaflorin/go_issue_similarity/internal/ports"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldingNormalizer strips diacritics before applying the default rule,
// so "Café" and "Cafe" produce the same normalized text.
type FoldingNormalizer struct {
	base ports.Normalizer
}

// NewFoldingNormalizer creates a diacritic-folding normalizer.
func NewFoldingNormalizer() ports.Normalizer {
	return &FoldingNormalizer{base: NewDefaultNormalizer()}
}

// Normalize folds accents and then normalizes like DefaultNormalizer.
func (n *FoldingNormalizer) Normalize(text string) string {
	// transform.Chain is stateful, so every call builds its own chain.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	return n.base.Normalize(folded)
}
