package normalizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/baditaflorin/go_issue_similarity/internal/pool"
	"github.com/baditaflorin/go_issue_similarity/internal/ports"
)

// DefaultNormalizer lower-cases text, drops every rune that is neither a
// letter, a digit nor whitespace, and collapses whitespace runs to a single
// space with no leading or trailing space.
type DefaultNormalizer struct {
	bytePool *pool.BufferPool
}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{
		bytePool: pool.NewBufferPool(256),
	}
}

// Normalize returns the canonical form of text. It is safe for concurrent use.
func (n *DefaultNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)

	pendingSpace := false
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsSpace(r):
			// Leading whitespace never produces a separator.
			if len(*buffer) > 0 {
				pendingSpace = true
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSpace {
				*buffer = append(*buffer, ' ')
				pendingSpace = false
			}
			*buffer = utf8.AppendRune(*buffer, r)
		}
	}

	return string(*buffer)
}
