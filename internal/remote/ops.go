package remote

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/simpledav/simpledav/internal/daverr"
	"github.com/simpledav/simpledav/internal/davpath"
	"github.com/simpledav/simpledav/pkg/client"
	"github.com/simpledav/simpledav/pkg/types"
)

// Remove deletes the remote file or directory at path. A directory is
// deleted only when recursive is set, by removing all children post-order
// first: the server deletes a directory only once it is empty. Without
// recursive, hitting a directory fails before any delete is issued.
func Remove(ctx context.Context, c *client.Client, path davpath.Token, recursive bool) error {
	return removeTree(ctx, c, NewLister(c), path, recursive)
}

func removeTree(ctx context.Context, c *client.Client, lister *Lister, path davpath.Token, recursive bool) error {
	children, err := lister.List(ctx, path)
	switch {
	case errors.Is(err, daverr.ErrNotADirectory):
		// Plain file: one delete request.
		return c.Delete(ctx, path)
	case err != nil:
		return err
	}

	if !recursive {
		return fmt.Errorf("%w: %s", daverr.ErrNotEmptyOrDirectory, path)
	}

	sort.Slice(children, func(i, j int) bool { return children[i].Name < children[j].Name })
	for _, child := range children {
		if child.Kind == types.KindDirectory {
			if err := removeTree(ctx, c, lister, child.Path, true); err != nil {
				return err
			}
			continue
		}
		if err := c.Delete(ctx, child.Path); err != nil {
			return err
		}
	}
	return c.Delete(ctx, path)
}

// Mkdir creates the remote directory at path. Without parents it issues a
// single create that fails with ErrParentNotFound when the immediate
// parent is absent. With parents it creates the ancestor chain shallowest
// first, tolerating directories that already exist.
func Mkdir(ctx context.Context, c *client.Client, path davpath.Token, parents bool) error {
	if path.IsRoot() {
		if parents {
			// The root always exists.
			return nil
		}
		return fmt.Errorf("%w: /", daverr.ErrAlreadyExists)
	}

	if !parents {
		return c.Mkcol(ctx, path)
	}

	for _, prefix := range path.Ancestors() {
		err := c.Mkcol(ctx, prefix)
		if err != nil && !errors.Is(err, daverr.ErrAlreadyExists) {
			return err
		}
	}
	return nil
}
