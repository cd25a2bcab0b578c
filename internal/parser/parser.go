// Package parser extracts the title and metadata table of a record document.
package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/starford/docindex/internal/locator"
	"github.com/starford/docindex/internal/models"
)

var (
	headingRe = regexp.MustCompile(`(?m)^\s*#\s+(.+?)\s*$`)
	metaRowRe = regexp.MustCompile(`(?m)^\|\s*\*\*([^*]+)\*\*\s*\|\s*(.*?)\s*\|?\s*$`)
)

// Parse builds a Record from the text of filename. titlePrefix, when non-nil,
// is stripped from the start of the title.
func Parse(data []byte, filename string, titlePrefix *regexp.Regexp) (models.Record, error) {
	number, _, err := locator.ParseFilename(filename)
	if err != nil {
		return models.Record{}, fmt.Errorf("parser: %w", err)
	}

	fm, body := splitFrontmatter(data)
	meta := ParseMetadata(body)

	title := ParseTitle(body, fm["title"], titlePrefix)
	if title == "" {
		title = StripPrefix(strings.TrimSuffix(filename, ".md"), titlePrefix)
	}

	return models.Record{
		Number:   number,
		Filename: filename,
		Title:    title,
		Date:     firstNonEmpty(meta["date"], fm["date"]),
		Status:   firstNonEmpty(meta["status"], fm["status"]),
		Tags:     firstNonEmpty(meta["tags"], fm["tags"]),
	}, nil
}

// ParseTitle returns the first level-one heading of body, falling back to
// fallback when there is none, with titlePrefix stripped.
func ParseTitle(body, fallback string, titlePrefix *regexp.Regexp) string {
	title := fallback
	if m := headingRe.FindStringSubmatch(body); m != nil {
		title = strings.TrimSpace(m[1])
	}
	return StripPrefix(title, titlePrefix)
}

// StripPrefix removes a leading "ADR 0001: " style prefix from title.
func StripPrefix(title string, titlePrefix *regexp.Regexp) string {
	if titlePrefix != nil {
		title = titlePrefix.ReplaceAllString(title, "")
	}
	return strings.TrimSpace(title)
}

// ParseMetadata collects "| **Field** | value |" rows keyed by the lowercased
// field name. Later rows win over earlier rows with the same field.
func ParseMetadata(body string) map[string]string {
	meta := make(map[string]string)
	for _, m := range metaRowRe.FindAllStringSubmatch(body, -1) {
		key := strings.ToLower(strings.TrimSpace(m[1]))
		meta[key] = CleanCell(m[2])
	}
	return meta
}

// CleanCell normalises a table cell: <br/> becomes a space and whitespace
// runs collapse. A value wrapped in one pair of backticks loses them;
// otherwise a code span at the start of the value is unwrapped. Code spans
// further inside are kept.
func CleanCell(value string) string {
	v := strings.TrimSpace(value)
	v = strings.ReplaceAll(v, "<br/>", " ")
	v = strings.ReplaceAll(v, "<br />", " ")
	v = strings.Join(strings.Fields(v), " ")

	if !strings.HasPrefix(v, "`") {
		return v
	}
	if len(v) >= 2 && strings.HasSuffix(v, "`") {
		return strings.TrimSpace(v[1 : len(v)-1])
	}
	end := strings.IndexByte(v[1:], '`')
	if end < 0 {
		return v
	}
	end++
	return strings.Join(strings.Fields(v[1:end]+v[end+1:]), " ")
}

// splitFrontmatter separates an optional YAML frontmatter block from the
// body. Malformed frontmatter leaves the whole text as body.
func splitFrontmatter(data []byte) (map[string]string, string) {
	var raw map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(data), &raw)
	if err != nil {
		return nil, string(data)
	}
	if len(raw) == 0 {
		return nil, string(body)
	}
	fm := make(map[string]string, len(raw))
	for k, v := range raw {
		if s := stringify(v); s != "" {
			fm[strings.ToLower(strings.TrimSpace(k))] = s
		}
	}
	return fm, string(body)
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return CleanCell(t)
	case time.Time:
		return t.Format(time.DateOnly)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := stringify(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return CleanCell(fmt.Sprint(t))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
