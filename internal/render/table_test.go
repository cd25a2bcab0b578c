package render

import (
	"strings"
	"testing"

	"github.com/starford/docindex/internal/models"
)

var headers = []string{"ADR", "Title", "Status", "Date", "Tags"}

func TestTable_Rows(t *testing.T) {
	records := []models.Record{
		{Number: 1, Filename: "0001-bar.md", Title: "Bar"},
		{Number: 2, Filename: "0002-foo.md", Title: "Foo", Date: "2024-01-05", Status: "Accepted", Tags: "infra"},
	}
	got := Table(headers, records, "")
	want := strings.Join([]string{
		"| ADR | Title | Status | Date | Tags |",
		"| --- | --- | --- | --- | --- |",
		"| [0001](0001-bar.md) | Bar | - | - | - |",
		"| [0002](0002-foo.md) | Foo | Accepted | 2024-01-05 | infra |",
	}, "\n")
	if got != want {
		t.Errorf("table mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestTable_EmptyUsesPlaceholder(t *testing.T) {
	if got := Table(headers, nil, ""); got != DefaultPlaceholder {
		t.Errorf("got %q, want default placeholder", got)
	}
	if got := Table(headers, nil, "_Nothing here._"); got != "_Nothing here._" {
		t.Errorf("got %q, want custom placeholder", got)
	}
}

func TestTable_EmptyTitleAndPipes(t *testing.T) {
	got := Table(headers, []models.Record{{Number: 42, Filename: "0042-x.md", Tags: "a | b"}}, "")
	lines := strings.Split(got, "\n")
	if lines[2] != `| [0042](0042-x.md) | - | - | - | a \| b |` {
		t.Errorf("row = %q", lines[2])
	}
}

func TestTable_AlreadyEscapedPipeKept(t *testing.T) {
	got := Table(headers, []models.Record{{Number: 1, Filename: "0001-x.md", Title: "T", Tags: `a \| b`}}, "")
	lines := strings.Split(got, "\n")
	if lines[2] != `| [0001](0001-x.md) | T | - | - | a \| b |` {
		t.Errorf("row = %q", lines[2])
	}
}

func TestTable_MixedPipes(t *testing.T) {
	got := Table(headers, []models.Record{{Number: 1, Filename: "0001-x.md", Title: `|x\||`}}, "")
	lines := strings.Split(got, "\n")
	if lines[2] != `| [0001](0001-x.md) | \|x\|\| | - | - | - |` {
		t.Errorf("row = %q", lines[2])
	}
}
