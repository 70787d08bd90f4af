package gen

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"view-generator/internal/errors"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// GeneratedFile is one generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file relative to the output directory.
	Filename string
	// Content is the formatted source.
	Content []byte
}

// WriteFiles writes all generated files to the output directory.
// It creates the directory if it doesn't exist.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return errors.Wrapf(err, "writing file %s", file.Filename)
		}
	}

	return nil
}

// Drifted reports whether file differs from the copy already written in
// outputDir. A missing file has drifted.
func Drifted(file GeneratedFile, outputDir string) (bool, error) {
	existing, err := os.ReadFile(filepath.Join(outputDir, file.Filename))
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}

	if err != nil {
		return false, errors.Wrapf(err, "reading %s", file.Filename)
	}

	return !bytes.Equal(existing, file.Content), nil
}

// writeDebugUnformatted keeps source go/format rejected as
// <name>.unformatted.go in outDir, so the broken output can be inspected.
// Nothing is written without an output location.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	sidecar := strings.TrimSuffix(filename, ".go") + ".unformatted.go"

	return errors.Wrapf(os.WriteFile(filepath.Join(outDir, sidecar), content, filePerm),
		"writing %s", sidecar)
}
