// =============================================================================
// Shift Reconciliation - Report File Manager
// =============================================================================
//
// This module manages the report output directories: creating them,
// producing collision-safe file names, and archiving written reports
// for long-term storage.
//
// ARCHIVAL STRATEGY:
//   - Reports are written to the output directory.
//   - After a successful write, a copy goes to the archive directory.
//   - A name collision (same date and shift exported twice) gets a
//     short unique suffix instead of overwriting the earlier report.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileManager handles report file operations.
type FileManager struct {
	// OutputDir is the directory where reports are written.
	OutputDir string

	// ArchiveDir is the directory where written reports are copied.
	ArchiveDir string
}

// NewFileManager creates a FileManager for the given directories.
func NewFileManager(outputDir, archiveDir string) *FileManager {
	return &FileManager{
		OutputDir:  outputDir,
		ArchiveDir: archiveDir,
	}
}

// EnsureDirectories creates the output and archive directories if they
// don't exist.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.OutputDir, fm.ArchiveDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// UniqueOutputPath returns a path in the output directory for the given
// file name. If the name is already taken, a short unique suffix is
// inserted before the extension so an earlier report is never
// overwritten.
func (fm *FileManager) UniqueOutputPath(fileName string) string {
	path := filepath.Join(fm.OutputDir, fileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	ext := filepath.Ext(fileName)
	stem := strings.TrimSuffix(fileName, ext)
	suffix := uuid.NewString()[:8]
	return filepath.Join(fm.OutputDir, fmt.Sprintf("%s_%s%s", stem, suffix, ext))
}

// ArchiveReport copies a written report into the archive directory.
// The original stays in the output directory for the attendant.
func (fm *FileManager) ArchiveReport(path string) error {
	if fm.ArchiveDir == "" {
		return nil
	}

	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open report for archival: %w", err)
	}
	defer src.Close()

	dstPath := filepath.Join(fm.ArchiveDir, filepath.Base(path))
	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("failed to create archive copy: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to copy report to archive: %w", err)
	}
	return nil
}
