// Package markers rewrites the machine-owned region between two sentinel
// lines of a host document.
package markers

import (
	"fmt"
	"strings"

	"github.com/starford/docindex/internal/apperr"
)

// Replace returns text with everything between the first start marker and
// the first end marker after it replaced by content. Text before start and
// after end is kept byte for byte; later marker occurrences are left alone.
func Replace(text, start, end, content string) (string, error) {
	before, rest, ok := strings.Cut(text, start)
	if !ok {
		return "", fmt.Errorf("%w: start marker %q not found", apperr.ErrMissingMarkers, start)
	}
	_, after, ok := strings.Cut(rest, end)
	if !ok {
		return "", fmt.Errorf("%w: end marker %q not found after %q", apperr.ErrMissingMarkers, end, start)
	}

	var b strings.Builder
	b.Grow(len(before) + len(start) + len(content) + len(end) + len(after) + 2)
	b.WriteString(before)
	b.WriteString(start)
	b.WriteByte('\n')
	b.WriteString(content)
	b.WriteByte('\n')
	b.WriteString(end)
	b.WriteString(after)
	return b.String(), nil
}
