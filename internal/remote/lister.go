// Package remote implements the server-side file operations built on the
// transport client: directory listing, remove and mkdir.
package remote

import (
	"context"
	"fmt"

	"github.com/simpledav/simpledav/internal/daverr"
	"github.com/simpledav/simpledav/internal/davpath"
	"github.com/simpledav/simpledav/pkg/client"
	"github.com/simpledav/simpledav/pkg/types"
)

// Lister answers "what are the children of this remote path" with a single
// query per call. It never recurses on its own.
type Lister struct {
	client *client.Client
}

// NewLister creates a lister on top of the transport client.
func NewLister(c *client.Client) *Lister {
	return &Lister{client: c}
}

// List returns the children of dir in server order. It fails with
// ErrNotFound when dir does not exist and ErrNotADirectory when dir exists
// but is a plain file.
func (l *Lister) List(ctx context.Context, dir davpath.Token) ([]types.DirectoryEntry, error) {
	entries, err := l.client.Propfind(ctx, dir, 1)
	if err != nil {
		return nil, err
	}

	var self *types.DirectoryEntry
	children := make([]types.DirectoryEntry, 0, len(entries))
	for i := range entries {
		if entries[i].Path.Equal(dir) {
			self = &entries[i]
			continue
		}
		children = append(children, entries[i])
	}

	if self == nil {
		return nil, fmt.Errorf("%w: %s", daverr.ErrNotFound, dir)
	}
	if self.Kind != types.KindDirectory {
		return nil, fmt.Errorf("%w: %s", daverr.ErrNotADirectory, dir)
	}
	return children, nil
}

// Stat describes the resource at path itself, without its children.
func (l *Lister) Stat(ctx context.Context, path davpath.Token) (types.DirectoryEntry, error) {
	entries, err := l.client.Propfind(ctx, path, 0)
	if err != nil {
		return types.DirectoryEntry{}, err
	}
	for _, e := range entries {
		if e.Path.Equal(path) {
			return e, nil
		}
	}
	// Some servers answer Depth 0 with a single response whose href is
	// formatted differently; accept it when it is the only one.
	if len(entries) == 1 {
		return entries[0], nil
	}
	return types.DirectoryEntry{}, fmt.Errorf("%w: %s", daverr.ErrNotFound, path)
}
