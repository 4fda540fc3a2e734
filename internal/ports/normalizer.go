package ports

// Normalizer defines the interface for text normalization.
// Implementations must be total, side-effect free and idempotent.
type Normalizer interface {
	Normalize(text string) string
}
