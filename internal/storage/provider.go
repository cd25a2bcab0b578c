// Package storage defines the documentation tree file-system abstraction.
package storage

// Provider is the interface for documentation tree file operations. All
// paths are relative to the tree root.
type Provider interface {
	// ListDir returns the names of regular files directly inside dir in
	// lexicographic order. A missing dir yields no names and no error.
	ListDir(dir string) ([]string, error)
	// Exists reports whether a regular file exists at path.
	Exists(path string) (bool, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically replaces the file at path with content.
	Write(path string, content []byte) error
	// Abs resolves path to an absolute path under the root.
	Abs(path string) (string, error)
}
