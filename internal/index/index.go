// Package index regenerates the record tables embedded in index documents.
package index

import (
	"regexp"

	"github.com/starford/docindex/internal/locator"
	"github.com/starford/docindex/internal/models"
)

// DocType bundles one record directory with the index document that lists
// it and the rules used to render the listing.
type DocType struct {
	Name         string
	Directory    string
	IndexFile    string
	StartMarker  string
	EndMarker    string
	TitlePrefix  *regexp.Regexp
	TableHeaders []string
	Placeholder  string
	Ignore       []string
}

func (dt DocType) ignore() []string {
	if dt.Ignore == nil {
		return locator.DefaultIgnore
	}
	return dt.Ignore
}

// Result describes the outcome of one document type pass.
type Result struct {
	Name      string
	IndexFile string
	Records   []models.Record
	Changed   bool
	Written   bool
	Checksum  string
}

// Status returns the human-readable status line for r.
func (r Result) Status() string {
	switch {
	case r.Written:
		return "Updated " + r.Name + " index -> " + r.IndexFile
	case r.Changed:
		return r.Name + " index is stale -> " + r.IndexFile
	default:
		return r.Name + " index already up to date."
	}
}
