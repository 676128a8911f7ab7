package extension

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/polishedai/polished/internal/progress"
)

// WriteZip writes the bundle as a zip archive with every file at the root.
func (b *Bundle) WriteZip(w io.Writer) error {
	zw := zip.NewWriter(w)
	modified := time.Now()
	for _, f := range b.Files {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return fmt.Errorf("adding %s to archive: %w", f.Name, err)
		}
		if _, err := fw.Write(f.Content); err != nil {
			return fmt.Errorf("writing %s to archive: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return nil
}

// Zip returns the archive bytes.
func (b *Bundle) Zip() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.WriteZip(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDir writes the unpacked extension into dir, creating it if needed.
// A nil reporter reports nothing.
func (b *Bundle) WriteDir(dir string, reporter progress.Reporter) error {
	if reporter == nil {
		reporter = progress.Nop{}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating extension directory: %w", err)
	}

	reporter.Start(len(b.Files), "Writing extension")
	defer reporter.Finish()
	for i, f := range b.Files {
		if err := os.WriteFile(filepath.Join(dir, f.Name), f.Content, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", f.Name, err)
		}
		reporter.Update(i+1, f.Name)
	}
	return nil
}
