// Package security confines file access to the directories the server was
// configured with: templates and data files are read from one directory,
// generated documents are written to another.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathGuard validates read paths against the input directory and write
// paths against the output directory.
type PathGuard struct {
	inputDirectory  string
	outputDirectory string
}

// NewPathGuard creates a guard for the given directory pair. The
// directories do not need to exist yet; missing directories skip
// validation until they are created.
func NewPathGuard(inputDirectory, outputDirectory string) (*PathGuard, error) {
	if inputDirectory == "" {
		return nil, fmt.Errorf("input directory cannot be empty")
	}
	if outputDirectory == "" {
		return nil, fmt.Errorf("output directory cannot be empty")
	}

	return &PathGuard{
		inputDirectory:  inputDirectory,
		outputDirectory: outputDirectory,
	}, nil
}

// ValidateReadPath checks that a path to be read lies inside the input directory
func (g *PathGuard) ValidateReadPath(path string) error {
	return validateWithin(path, g.inputDirectory)
}

// ValidateWritePath checks that a path to be written lies inside the output directory
func (g *PathGuard) ValidateWritePath(path string) error {
	return validateWithin(path, g.outputDirectory)
}

// InputDirectory returns the configured input directory
func (g *PathGuard) InputDirectory() string {
	return g.inputDirectory
}

// OutputDirectory returns the configured output directory
func (g *PathGuard) OutputDirectory() string {
	return g.outputDirectory
}

func validateWithin(path, dir string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	// If the directory doesn't exist yet, skip validation
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	within, err := isPathWithin(path, dir)
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}
	if !within {
		return fmt.Errorf("path is outside configured directory: %s", path)
	}

	return nil
}

// isPathWithin reports whether path is dir itself or one of its descendants.
// Symlinks on either side are resolved so a link cannot escape the directory.
func isPathWithin(path, dir string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, fmt.Errorf("failed to resolve directory: %w", err)
	}

	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(absDir)

	realPath := cleanPath
	if info, err := os.Lstat(cleanPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(cleanPath); err == nil {
			realPath = resolved
		}
	}

	realDir := cleanDir
	if resolved, err := filepath.EvalSymlinks(cleanDir); err == nil {
		realDir = resolved
	}

	return hasDirPrefix(cleanPath, cleanDir) && hasDirPrefix(realPath, realDir) ||
		hasDirPrefix(cleanPath, realDir) && hasDirPrefix(realPath, realDir), nil
}

func hasDirPrefix(path, dir string) bool {
	if path == dir {
		return true
	}
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return strings.HasPrefix(path, dir)
}
