package pathutil

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestToRelative(t *testing.T) {
	tests := []struct {
		name     string
		absPath  string
		rootDir  string
		expected string
	}{
		{
			name:     "simple relative path",
			absPath:  "/home/user/project/src/main.go",
			rootDir:  "/home/user/project",
			expected: "src/main.go",
		},
		{
			name:     "nested relative path",
			absPath:  "/home/user/project/internal/detector/engine.go",
			rootDir:  "/home/user/project",
			expected: "internal/detector/engine.go",
		},
		{
			name:     "root level file",
			absPath:  "/home/user/project/README.md",
			rootDir:  "/home/user/project",
			expected: "README.md",
		},
		{
			name:     "same directory",
			absPath:  "/home/user/project",
			rootDir:  "/home/user/project",
			expected: ".",
		},
		{
			name:     "already relative path",
			absPath:  "src/main.go",
			rootDir:  "/home/user/project",
			expected: "src/main.go",
		},
		{
			name:     "path outside root - fallback to absolute",
			absPath:  "/other/location/file.go",
			rootDir:  "/home/user/project",
			expected: "/other/location/file.go",
		},
		{
			name:     "empty root directory",
			absPath:  "/home/user/project/file.go",
			rootDir:  "",
			expected: "/home/user/project/file.go",
		},
		{
			name:     "empty absolute path",
			absPath:  "",
			rootDir:  "/home/user/project",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToRelative(tt.absPath, tt.rootDir)

			if runtime.GOOS == "windows" {
				result = filepath.ToSlash(result)
				expected := filepath.ToSlash(tt.expected)
				if result != expected {
					t.Errorf("ToRelative() = %v, want %v", result, expected)
				}
			} else {
				if result != tt.expected {
					t.Errorf("ToRelative() = %v, want %v", result, tt.expected)
				}
			}
		})
	}
}
