package locator

import (
	"errors"
	"reflect"
	"testing"

	"github.com/starford/docindex/internal/apperr"
	"github.com/starford/docindex/internal/testutil"
)

func collect(t *testing.T, seq func(func(Candidate, error) bool)) []string {
	t.Helper()
	var names []string
	for c, err := range seq {
		if err != nil {
			t.Fatalf("scan: %v", err)
		}
		names = append(names, c.Name)
	}
	return names
}

func TestScan_FiltersAndOrders(t *testing.T) {
	root, store := testutil.TestTree(t)
	for _, name := range []string{
		"0010-later.md", "0002-b.md", "0001-a.md",
		"index.md", "README.md", "template.md", "notes.md", "0003-draft.txt", "draft-0004.md",
	} {
		testutil.WriteFile(t, root, "adr/"+name, "# x")
	}

	got := collect(t, Scan(store, "adr", DefaultIgnore))
	want := []string{"0001-a.md", "0002-b.md", "0010-later.md"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScan_MissingDirectory(t *testing.T) {
	_, store := testutil.TestTree(t)
	if got := collect(t, Scan(store, "docs/rfc", DefaultIgnore)); len(got) != 0 {
		t.Errorf("got %v, want nothing", got)
	}
}

func TestScan_IgnoreGlob(t *testing.T) {
	root, store := testutil.TestTree(t)
	testutil.WriteFile(t, root, "rfc/0001-keep.md", "")
	testutil.WriteFile(t, root, "rfc/0002-wip-draft.md", "")

	got := collect(t, Scan(store, "rfc", []string{"*-wip-*"}))
	if !reflect.DeepEqual(got, []string{"0001-keep.md"}) {
		t.Errorf("got %v", got)
	}
}

func TestScan_Restartable(t *testing.T) {
	root, store := testutil.TestTree(t)
	testutil.WriteFile(t, root, "adr/0001-a.md", "")
	seq := Scan(store, "adr", DefaultIgnore)
	if n := len(collect(t, seq)); n != 1 {
		t.Fatalf("first pass: %d", n)
	}
	testutil.WriteFile(t, root, "adr/0002-b.md", "")
	if n := len(collect(t, seq)); n != 2 {
		t.Errorf("second pass should see new file, got %d", n)
	}
}

func TestScan_StopsEarly(t *testing.T) {
	root, store := testutil.TestTree(t)
	testutil.WriteFile(t, root, "adr/0001-a.md", "")
	testutil.WriteFile(t, root, "adr/0002-b.md", "")
	n := 0
	for range Scan(store, "adr", nil) {
		n++
		break
	}
	if n != 1 {
		t.Errorf("n = %d", n)
	}
}

func TestScan_ReservedNamesCaseSensitive(t *testing.T) {
	if IsRecordName("index.md", DefaultIgnore) {
		t.Error("index.md must be excluded")
	}
	if !IsRecordName("0001-index.md", DefaultIgnore) {
		t.Error("0001-index.md is a record")
	}
}

func TestParseFilename(t *testing.T) {
	n, slug, err := ParseFilename("0042-use-go.md")
	if err != nil || n != 42 || slug != "use-go" {
		t.Errorf("got %d %q %v", n, slug, err)
	}
	if _, _, err := ParseFilename("42-use-go.md"); !errors.Is(err, apperr.ErrMalformedFilename) {
		t.Errorf("err = %v", err)
	}
}
