package filesystem

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"specifytools/internal/ports"
)

// ReportDir implements ports.ReportSink on a local directory
type ReportDir struct {
	dir string
}

// Ensure ReportDir implements ReportSink
var _ ports.ReportSink = (*ReportDir)(nil)

// NewReportDir creates a sink writing into dir; an empty dir means the working directory
func NewReportDir(dir string) *ReportDir {
	if dir == "" {
		dir = "."
	}
	return &ReportDir{dir: expandHome(dir)}
}

// Write replaces name inside the directory.
// Content goes to a temp file first so a failed write never leaves half a report.
func (d *ReportDir) Write(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	target := filepath.Join(d.dir, name)
	tmp, err := os.CreateTemp(d.dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", fmt.Errorf("failed to set permissions on %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("failed to move %s into place: %w", name, err)
	}

	return target, nil
}
