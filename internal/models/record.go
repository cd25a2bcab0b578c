// Package models defines the domain types for docindex.
package models

import "fmt"

// Record is one parsed decision or proposal document. It is built once per
// indexing pass and never mutated afterwards.
type Record struct {
	Number   int    `json:"number"`
	Filename string `json:"filename"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Status   string `json:"status"`
	Tags     string `json:"tags"`
}

// Key returns the zero-padded display key, e.g. "0007".
func (r Record) Key() string {
	return fmt.Sprintf("%04d", r.Number)
}
