// logger.go
// Package issuesimilarity provides shared utilities for the go_issue_similarity package.
package issuesimilarity

import (
	"io"
	"os"

	"github.com/baditaflorin/l"
)

// NewLogger creates an l.Logger suitable for duplicates.WithLogger.
// A nil output writes to stdout.
func NewLogger(output io.Writer, jsonFormat bool) (l.Logger, error) {
	if output == nil {
		output = os.Stdout
	}
	cfg := l.Config{
		Output:      output,
		JsonFormat:  jsonFormat,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,      // 1MB buffer
		MaxFileSize: 10 * 1024 * 1024, // 10MB max file size
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	}
	return l.NewStandardFactory().CreateLogger(cfg)
}
