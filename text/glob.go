package text

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Glob returns the files matching pattern, sorted. Patterns use '/' as
// separator on every platform; '*' stays within one path segment while
// '**' spans any number of them, and {a,b} alternatives are supported.
//
// A pattern without metacharacters names a single file. A pattern that
// matches nothing yields an empty result, not an error.
func Glob(pattern string) ([]string, error) {
	pattern = path.Clean(filepath.ToSlash(pattern))
	if !hasMeta(pattern) {
		name := filepath.FromSlash(pattern)
		if _, err := os.Stat(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, nil
			}
			return nil, err
		}
		return []string{name}, nil
	}

	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, pattern, err)
	}

	root := staticPrefix(pattern)
	var matches []string
	err = filepath.WalkDir(filepath.FromSlash(root), func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		if g.Match(filepath.ToSlash(name)) {
			matches = append(matches, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, `*?[{\`)
}

// staticPrefix returns the leading directories of pattern that contain
// no metacharacters; the walk starts there.
func staticPrefix(pattern string) string {
	segments := strings.Split(pattern, "/")
	n := 0
	for n < len(segments)-1 && !hasMeta(segments[n]) {
		n++
	}
	prefix := strings.Join(segments[:n], "/")
	switch {
	case prefix == "" && strings.HasPrefix(pattern, "/"):
		return "/"
	case prefix == "":
		return "."
	}
	return prefix
}
