package normalizer

import (
	"fmt"
	"strings"

	"github.com/baditaflorin/go_issue_similarity/internal/ports"
)

// NormalizerType selects a normalization strategy.
type NormalizerType int

const (
	// DefaultNormalizerType lower-cases, strips punctuation and collapses whitespace.
	DefaultNormalizerType NormalizerType = iota
	// FoldingNormalizerType additionally removes diacritics.
	FoldingNormalizerType
)

// String returns the configuration name of the type.
func (t NormalizerType) String() string {
	switch t {
	case FoldingNormalizerType:
		return "folding"
	default:
		return "default"
	}
}

// ParseType maps a configuration name to a NormalizerType.
func ParseType(name string) (NormalizerType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return DefaultNormalizerType, nil
	case "folding":
		return FoldingNormalizerType, nil
	default:
		return DefaultNormalizerType, fmt.Errorf("unknown normalizer %q", name)
	}
}

// NormalizerFactory creates normalizers by type.
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// CreateNormalizer creates a normalizer of the specified type
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType) ports.Normalizer {
	switch normalizerType {
	case FoldingNormalizerType:
		return NewFoldingNormalizer()
	default:
		return NewDefaultNormalizer()
	}
}
