// Package apperr holds the error kinds shared across the indexing pipeline.
package apperr

import "errors"

var (
	ErrMissingIndexFile  = errors.New("missing index file")
	ErrMissingMarkers    = errors.New("missing markers")
	ErrMalformedFilename = errors.New("malformed record filename")
	ErrStaleIndex        = errors.New("index is stale")
	ErrDuplicateNumber   = errors.New("duplicate record number")
)
