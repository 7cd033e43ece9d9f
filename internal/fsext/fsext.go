// Package fsext resolves user-supplied paths.
package fsext

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// Expand resolves shell symbols (such as '~') and environment variables in
// s the way a shell would for a single word, using lookup for variables.
func Expand(s string, lookup func(string) string) (string, error) {
	if s == "" {
		return "", nil
	}
	if lookup == nil {
		lookup = os.Getenv
	}
	p := syntax.NewParser()
	word, err := p.Document(strings.NewReader(s))
	if err != nil {
		return "", err
	}
	cfg := &expand.Config{
		Env: expand.FuncEnviron(lookup),
	}
	return expand.Literal(cfg, word)
}

// IsPattern reports whether path contains glob metacharacters.
func IsPattern(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

// Glob returns the files matching pattern, which may use '**', in lexical
// order. Directories are skipped.
func Glob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	slices.Sort(matches)
	return matches, nil
}

// PrettyPath shortens path relative to the working directory, or to '~'.
func PrettyPath(path string) string {
	if cwd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(cwd, path); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" && strings.HasPrefix(path, home) {
		return "~" + strings.TrimPrefix(path, home)
	}
	return path
}
