package plan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/go-git/go-billy/v5"

	"github.com/simpledav/simpledav/internal/daverr"
	"github.com/simpledav/simpledav/internal/davpath"
	"github.com/simpledav/simpledav/pkg/types"
)

// RemoteLister is the listing surface the download planner consumes.
// Implementations issue exactly one query per call.
type RemoteLister interface {
	List(ctx context.Context, dir davpath.Token) ([]types.DirectoryEntry, error)
	Stat(ctx context.Context, path davpath.Token) (types.DirectoryEntry, error)
}

// workItem is one pending traversal frame. Directories expand into their
// sorted children when popped; files emit a CopyFile.
type workItem struct {
	source davpath.Token
	dest   davpath.Token
	dir    bool
	size   int64
}

// PlanUpload walks the local tree under localRoot (a path relative to
// localFS) and plans its transfer to remoteDest. A single file plans to
// one CopyFile; a directory plans to a MakeDir followed by the sub-plans
// of its children in name order, parents always before descendants.
// Symlinks and other non-regular entries are skipped.
func PlanUpload(localFS billy.Filesystem, localRoot, remoteDest davpath.Token) (*Plan, error) {
	info, err := localFS.Lstat(localRoot.FilePath())
	if err != nil {
		return nil, mapFSError(localRoot, err)
	}

	p := &Plan{Direction: Upload}

	if !info.IsDir() {
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("%w: %s is not a regular file or directory", daverr.ErrInvalidPath, localRoot)
		}
		p.Actions = append(p.Actions, NewCopyFile(localRoot, remoteDest, info.Size()))
		return p, nil
	}

	stack := []workItem{{source: localRoot, dest: remoteDest, dir: true}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !item.dir {
			p.Actions = append(p.Actions, NewCopyFile(item.source, item.dest, item.size))
			continue
		}

		p.Actions = append(p.Actions, NewMakeDir(item.dest))

		infos, err := localFS.ReadDir(item.source.FilePath())
		if err != nil {
			return nil, mapFSError(item.source, err)
		}
		sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })

		// Push in reverse so children pop in name order, each child's
		// whole sub-plan ahead of its next sibling.
		for i := len(infos) - 1; i >= 0; i-- {
			child := infos[i]
			if !child.IsDir() && !child.Mode().IsRegular() {
				continue
			}
			src, err := item.source.Append(child.Name())
			if err != nil {
				return nil, err
			}
			dst, err := item.dest.Append(child.Name())
			if err != nil {
				return nil, err
			}
			stack = append(stack, workItem{source: src, dest: dst, dir: child.IsDir(), size: child.Size()})
		}
	}
	return p, nil
}

// PlanDownload mirrors PlanUpload for the remote-to-local direction,
// walking the server tree through lister. The root is probed with a
// single stat: a plain file plans to one CopyFile, a directory to a
// MakeDir followed by its recursively planned children in name order.
func PlanDownload(ctx context.Context, lister RemoteLister, remoteRoot, localDest davpath.Token) (*Plan, error) {
	root, err := lister.Stat(ctx, remoteRoot)
	if err != nil {
		return nil, err
	}

	p := &Plan{Direction: Download}

	if root.Kind == types.KindFile {
		p.Actions = append(p.Actions, NewCopyFile(remoteRoot, localDest, root.Size))
		return p, nil
	}

	stack := []workItem{{source: remoteRoot, dest: localDest, dir: true}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !item.dir {
			p.Actions = append(p.Actions, NewCopyFile(item.source, item.dest, item.size))
			continue
		}

		p.Actions = append(p.Actions, NewMakeDir(item.dest))

		children, err := lister.List(ctx, item.source)
		if err != nil {
			return nil, err
		}
		// Server order is not guaranteed; sort for deterministic plans.
		sort.Slice(children, func(i, j int) bool { return children[i].Name < children[j].Name })

		for i := len(children) - 1; i >= 0; i-- {
			child := children[i]
			dst, err := item.dest.Append(child.Name)
			if err != nil {
				return nil, err
			}
			stack = append(stack, workItem{
				source: child.Path,
				dest:   dst,
				dir:    child.Kind == types.KindDirectory,
				size:   child.Size,
			})
		}
	}
	return p, nil
}

func mapFSError(path davpath.Token, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s", daverr.ErrNotFound, path)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s", daverr.ErrPermission, path)
	default:
		return fmt.Errorf("%s: %w", path, err)
	}
}
