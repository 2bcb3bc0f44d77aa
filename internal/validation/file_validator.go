// Package validation provides filesystem checks shared by the CLI entry
// points: input files exist and look like workbooks, output directories are
// writable.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileValidator validates input/output locations before processing starts.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a file validator.
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateInputFile checks that path exists, is a regular file and carries
// the .xlsx extension.
func (v *FileValidator) ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file %s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return fmt.Errorf("input file %s is not an .xlsx workbook", path)
	}
	return nil
}

// ValidateInputDirectory checks that dir exists and reports how many .xlsx
// workbooks it contains. Zero matches is not an error, just nothing to do.
func (v *FileValidator) ValidateInputDirectory(dir string) (int, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return 0, fmt.Errorf("input directory %s does not exist", dir)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to stat directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%s is not a directory", dir)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.xlsx"))
	if err != nil {
		return 0, fmt.Errorf("failed to list workbooks: %w", err)
	}
	v.logger.Info("input directory validated",
		slog.String("directory", dir),
		slog.Int("workbooks_found", len(matches)))
	return len(matches), nil
}

// ValidateOutputDirectory ensures dir exists (creating it if needed) and is
// writable.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)
	return nil
}
