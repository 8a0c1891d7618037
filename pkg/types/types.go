// Package types holds the data types shared between the transport client,
// the planner and the CLI.
package types

import "github.com/simpledav/simpledav/internal/davpath"

// EntryKind distinguishes files from directories in a listing.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDirectory
)

func (k EntryKind) String() string {
	if k == KindDirectory {
		return "directory"
	}
	return "file"
}

// DirectoryEntry describes one resource returned by a listing query.
// Size is meaningful only for files.
type DirectoryEntry struct {
	Path davpath.Token
	Name string
	Kind EntryKind
	Size int64
}

// IsDir reports whether the entry is a directory.
func (e DirectoryEntry) IsDir() bool {
	return e.Kind == KindDirectory
}
