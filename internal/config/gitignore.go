package config

import (
	"os"
	"path/filepath"

	gitignore "github.com/sabhiram/go-gitignore"
)

// IgnoreMatcher answers whether a project-relative path should be
// excluded. The walker layers a built-in list, .gitignore, and
// .driftignore behind this single interface (spec §4.1 "layered ignore
// files ... parsed as hierarchical gitignore semantics").
type IgnoreMatcher interface {
	MatchesPath(relPath string) bool
}

type compiledIgnore struct{ gi *gitignore.GitIgnore }

func (c *compiledIgnore) MatchesPath(relPath string) bool {
	return c.gi.MatchesPath(relPath)
}

// multiIgnore matches if any underlying matcher matches.
type multiIgnore struct{ matchers []IgnoreMatcher }

func (m *multiIgnore) MatchesPath(relPath string) bool {
	for _, mm := range m.matchers {
		if mm.MatchesPath(relPath) {
			return true
		}
	}
	return false
}

// LoadIgnoreFiles compiles the .gitignore and .driftignore files present at
// root (either may be absent) into a single IgnoreMatcher, honoring the
// Walker config's respect flags. Returns nil (never matches) if neither
// file is enabled/present.
func LoadIgnoreFiles(root string, w Walker) (IgnoreMatcher, error) {
	var matchers []IgnoreMatcher

	if w.RespectGitignore {
		if m, err := loadOne(filepath.Join(root, ".gitignore")); err != nil {
			return nil, err
		} else if m != nil {
			matchers = append(matchers, m)
		}
	}
	if w.RespectDriftignore {
		if m, err := loadOne(filepath.Join(root, ".driftignore")); err != nil {
			return nil, err
		} else if m != nil {
			matchers = append(matchers, m)
		}
	}

	switch len(matchers) {
	case 0:
		return nil, nil
	case 1:
		return matchers[0], nil
	default:
		return &multiIgnore{matchers: matchers}, nil
	}
}

func loadOne(path string) (IgnoreMatcher, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	gi, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, err
	}
	return &compiledIgnore{gi: gi}, nil
}
