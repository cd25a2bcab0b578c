package index

import (
	"fmt"

	"github.com/starford/docindex/internal/apperr"
	"github.com/starford/docindex/internal/models"
)

// Validate reports records whose number is already used by an earlier
// record. records must be sorted by number.
func Validate(records []models.Record) []error {
	var problems []error
	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1], records[i]
		if prev.Number == cur.Number {
			problems = append(problems, fmt.Errorf("%w: %s used by %s and %s",
				apperr.ErrDuplicateNumber, cur.Key(), prev.Filename, cur.Filename))
		}
	}
	return problems
}
