// Package pathutil converts between absolute and relative paths.
//
// Reporters (text/json/sarif/github/gitlab) and stored facts read as
// project-relative for portability across clones and CI runners. The
// walker records each file's relative path itself; this package offers the
// same absolute-to-relative conversion as a standalone helper, and no other
// Drift package imports it.
package pathutil

import (
	"path/filepath"
	"strings"
)

// ToRelative converts an absolute path to relative based on a root directory.
// Falls back to the original path if conversion fails or path is already relative.
//
// Examples:
//   - ToRelative("/home/user/project/src/main.go", "/home/user/project") → "src/main.go"
//   - ToRelative("/other/location/file.go", "/home/user/project") → "/other/location/file.go" (outside root)
//   - ToRelative("src/main.go", "/home/user/project") → "src/main.go" (already relative)
func ToRelative(absPath, rootDir string) string {
	if absPath == "" || rootDir == "" {
		return absPath
	}

	if !filepath.IsAbs(absPath) {
		return absPath
	}

	absPath = filepath.Clean(absPath)
	rootDir = filepath.Clean(rootDir)

	relPath, err := filepath.Rel(rootDir, absPath)
	if err != nil {
		return absPath
	}

	if strings.HasPrefix(relPath, "..") {
		return absPath
	}

	return relPath
}
