package ports

import (
	"context"
	"io"
)

// ReportSink stores report files by name
type ReportSink interface {
	// Write replaces the named report with the content of r and returns its location
	Write(ctx context.Context, name string, r io.Reader) (string, error)
}
