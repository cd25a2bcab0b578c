package parser

import (
	"errors"
	"regexp"
	"testing"

	"github.com/starford/docindex/internal/apperr"
)

var adrPrefix = regexp.MustCompile(`(?i)^\s*ADR\s+\d{4}\s*:\s*`)

func TestParse_HeadingAndMetadata(t *testing.T) {
	input := []byte("# ADR 0002: Foo\n\n| Field | Value |\n|---|---|\n" +
		"| **Date** | 2024-01-05 |\n| **Status** | Accepted |\n| **Tags** | infra |\n")
	r, err := Parse(input, "0002-foo.md", adrPrefix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Number != 2 || r.Filename != "0002-foo.md" {
		t.Errorf("number/filename = %d/%q", r.Number, r.Filename)
	}
	if r.Title != "Foo" {
		t.Errorf("title = %q, want %q", r.Title, "Foo")
	}
	if r.Date != "2024-01-05" || r.Status != "Accepted" || r.Tags != "infra" {
		t.Errorf("meta = %q/%q/%q", r.Date, r.Status, r.Tags)
	}
}

func TestParse_TitleStripping(t *testing.T) {
	r, err := Parse([]byte("# ADR 0007: Use Event Sourcing\n"), "0007-es.md", adrPrefix)
	if err != nil {
		t.Fatal(err)
	}
	if r.Title != "Use Event Sourcing" {
		t.Errorf("title = %q", r.Title)
	}
}

func TestParse_TitlePrefixCaseInsensitive(t *testing.T) {
	r, _ := Parse([]byte("# adr 0007:   Lower\n"), "0007-x.md", adrPrefix)
	if r.Title != "Lower" {
		t.Errorf("title = %q", r.Title)
	}
}

func TestParse_NoHeadingFallsBackToStem(t *testing.T) {
	r, err := Parse([]byte("Just text.\n## Not a title\n"), "0003-no-heading.md", adrPrefix)
	if err != nil {
		t.Fatal(err)
	}
	if r.Title != "0003-no-heading" {
		t.Errorf("title = %q, want stem", r.Title)
	}
	if r.Date != "" || r.Status != "" || r.Tags != "" {
		t.Errorf("expected empty metadata, got %+v", r)
	}
}

func TestParse_FirstHeadingWins(t *testing.T) {
	r, _ := Parse([]byte("intro\n#  First  \n# Second\n"), "0001-a.md", nil)
	if r.Title != "First" {
		t.Errorf("title = %q", r.Title)
	}
}

func TestParse_MalformedFilename(t *testing.T) {
	for _, name := range []string{"notes.md", "12-short.md", "0001-x.txt", "0001.md"} {
		_, err := Parse([]byte("# X"), name, nil)
		if !errors.Is(err, apperr.ErrMalformedFilename) {
			t.Errorf("%s: err = %v, want ErrMalformedFilename", name, err)
		}
	}
}

func TestParseMetadata_LastWins(t *testing.T) {
	meta := ParseMetadata("| **Status** | Draft |\n| **status** | Accepted |\n")
	if meta["status"] != "Accepted" {
		t.Errorf("status = %q", meta["status"])
	}
}

func TestParseMetadata_NoTrailingPipe(t *testing.T) {
	meta := ParseMetadata("|  **Date**  |  2024-02-01\n")
	if meta["date"] != "2024-02-01" {
		t.Errorf("date = %q", meta["date"])
	}
}

func TestParseMetadata_IgnoresNonBoldRows(t *testing.T) {
	meta := ParseMetadata("| Date | 2024-02-01 |\n| **Owner** | team |\n")
	if _, ok := meta["date"]; ok {
		t.Errorf("plain row should not be metadata: %v", meta)
	}
	if meta["owner"] != "team" {
		t.Errorf("owner = %q", meta["owner"])
	}
}

func TestCleanCell(t *testing.T) {
	cases := []struct{ in, want string }{
		{"`draft`  <br/> extra", "draft extra"},
		{"  `Accepted`  ", "Accepted"},
		{"` spaced `", "spaced"},
		{"a<br />b", "a b"},
		{"a \t  b", "a b"},
		{"plain", "plain"},
		{"", ""},
		{"`", "`"},
	}
	for _, c := range cases {
		if got := CleanCell(c.in); got != c.want {
			t.Errorf("CleanCell(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCleanCell_InnerCodeSpansKept(t *testing.T) {
	cases := []struct{ in, want string }{
		{"a `b` c", "a `b` c"},
		{"`lead` then `inner` x", "lead then `inner` x"},
		{"`a` and `b`", "a` and `b"},
	}
	for _, c := range cases {
		if got := CleanCell(c.in); got != c.want {
			t.Errorf("CleanCell(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParse_FrontmatterFallback(t *testing.T) {
	input := []byte("---\ntitle: From Frontmatter\nstatus: Proposed\ntags:\n  - api\n  - auth\n---\n" +
		"| **Status** | Accepted |\n")
	r, err := Parse(input, "0004-fm.md", nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.Title != "From Frontmatter" {
		t.Errorf("title = %q", r.Title)
	}
	if r.Status != "Accepted" {
		t.Errorf("table row should win over frontmatter, status = %q", r.Status)
	}
	if r.Tags != "api, auth" {
		t.Errorf("tags = %q", r.Tags)
	}
}

func TestParse_HeadingWinsOverFrontmatterTitle(t *testing.T) {
	input := []byte("---\ntitle: Ignored\n# yaml comment\n---\n# RFC Heading\n")
	r, _ := Parse(input, "0001-x.md", nil)
	if r.Title != "RFC Heading" {
		t.Errorf("title = %q", r.Title)
	}
}
