// Package locator enumerates record files in a documentation directory.
package locator

import (
	"fmt"
	"iter"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/starford/docindex/internal/apperr"
	"github.com/starford/docindex/internal/storage"
)

// DefaultIgnore is the reserved set of names that are never records.
var DefaultIgnore = []string{"README.md", "template.md", "index.md"}

var filenameRe = regexp.MustCompile(`^(\d{4})-(.+)\.md$`)

// Candidate is a located record file.
type Candidate struct {
	Dir  string // directory relative to the tree root
	Name string // file name, e.g. "0007-event-sourcing.md"
}

// Path returns the candidate path relative to the tree root.
func (c Candidate) Path() string {
	return path.Join(c.Dir, c.Name)
}

// Scan lists record candidates in dir in filename order. Names matching any
// ignore pattern, names without a .md suffix and names not shaped like
// NNNN-slug.md are skipped. A missing dir yields nothing.
//
// The sequence is evaluated lazily and re-reads the directory on every
// iteration.
func Scan(store storage.Provider, dir string, ignore []string) iter.Seq2[Candidate, error] {
	return func(yield func(Candidate, error) bool) {
		names, err := store.ListDir(dir)
		if err != nil {
			yield(Candidate{}, fmt.Errorf("locator: scan %s: %w", dir, err))
			return
		}
		for _, name := range names {
			if !IsRecordName(name, ignore) {
				continue
			}
			if !yield(Candidate{Dir: dir, Name: name}, nil) {
				return
			}
		}
	}
}

// IsRecordName reports whether name is a record file name not covered by
// ignore.
func IsRecordName(name string, ignore []string) bool {
	if !strings.HasSuffix(name, ".md") {
		return false
	}
	for _, pattern := range ignore {
		// Patterns are validated at config load; a bad one never matches.
		if ok, _ := doublestar.Match(pattern, name); ok {
			return false
		}
	}
	return filenameRe.MatchString(name)
}

// ParseFilename splits a record file name into its number and slug.
func ParseFilename(name string) (int, string, error) {
	m := filenameRe.FindStringSubmatch(name)
	if m == nil {
		return 0, "", fmt.Errorf("%w: %q does not match NNNN-slug.md", apperr.ErrMalformedFilename, name)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", fmt.Errorf("%w: %q: %v", apperr.ErrMalformedFilename, name, err)
	}
	return n, m[2], nil
}
