package page

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileSink saves the page to Path. The file is replaced atomically so a
// reader never sees a partial page.
type FileSink struct {
	Path string
}

func (s FileSink) Save(page []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.Path), ".heatmap-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(page); err != nil {
		tmp.Close()
		return fmt.Errorf("write page: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod page: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close page: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("rename page: %w", err)
	}
	return nil
}

// WriterSink saves the page to W, typically stdout.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Save(page []byte) error {
	if _, err := s.W.Write(page); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}
