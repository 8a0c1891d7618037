// Package transfer executes transfer plans against the live endpoints.
// Execution is strictly sequential and fail-fast: actions run one at a
// time in plan order, and the first failure voids the rest of the plan
// with no rollback of completed actions.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-billy/v5"

	"github.com/simpledav/simpledav/internal/daverr"
	"github.com/simpledav/simpledav/internal/davpath"
	"github.com/simpledav/simpledav/internal/plan"
)

// RemoteStore is the transfer surface of the transport client.
type RemoteStore interface {
	Get(ctx context.Context, path davpath.Token) (io.ReadCloser, error)
	Put(ctx context.Context, path davpath.Token, body io.Reader, size int64) error
	Mkcol(ctx context.Context, path davpath.Token) error
}

// Failure identifies the action that aborted a transfer and why.
type Failure struct {
	Action plan.Action
	Err    error
}

// TransferResult reports what the executor did: the actions completed in
// order, and the failure that stopped it, if any.
type TransferResult struct {
	Completed []plan.Action
	Failure   *Failure
}

// Err flattens the result into a single error naming the failing action
// and its cause, or nil on full success.
func (r TransferResult) Err() error {
	if r.Failure == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", r.Failure.Action, r.Failure.Err)
}

// Executor performs planned actions against one remote store and one
// local filesystem. It does no reordering and no dependency resolution:
// plan order is the sole guarantee that parents exist before children.
type Executor struct {
	remote   RemoteStore
	local    billy.Filesystem
	progress io.Writer
}

// NewExecutor creates an executor. progress receives one "SRC -> DST"
// line per copied file; pass nil for silent operation.
func NewExecutor(remote RemoteStore, local billy.Filesystem, progress io.Writer) *Executor {
	return &Executor{remote: remote, local: local, progress: progress}
}

// Execute runs the plan in order and stops at the first failure.
func (e *Executor) Execute(ctx context.Context, p *plan.Plan) TransferResult {
	var res TransferResult
	for _, a := range p.Actions {
		var err error
		switch {
		case a.Kind == plan.MakeDir && p.Direction == plan.Upload:
			err = e.makeRemoteDir(ctx, a.Path)
		case a.Kind == plan.MakeDir:
			err = e.makeLocalDir(a.Path)
		case p.Direction == plan.Upload:
			err = e.uploadFile(ctx, a)
		default:
			err = e.downloadFile(ctx, a)
		}
		if err != nil {
			res.Failure = &Failure{Action: a, Err: err}
			return res
		}
		res.Completed = append(res.Completed, a)
	}
	return res
}

func (e *Executor) makeRemoteDir(ctx context.Context, path davpath.Token) error {
	err := e.remote.Mkcol(ctx, path)
	if errors.Is(err, daverr.ErrAlreadyExists) {
		return nil
	}
	return err
}

func (e *Executor) makeLocalDir(path davpath.Token) error {
	if err := e.local.MkdirAll(path.FilePath(), 0o755); err != nil {
		return mapFSError(path, err)
	}
	return nil
}

func (e *Executor) uploadFile(ctx context.Context, a plan.Action) error {
	f, err := e.local.Open(a.Source.FilePath())
	if err != nil {
		return mapFSError(a.Source, err)
	}
	defer f.Close()

	if err := e.remote.Put(ctx, a.Dest, f, a.SizeHint); err != nil {
		return err
	}
	e.echo(a.Source.FilePath(), a.Dest.String())
	return nil
}

func (e *Executor) downloadFile(ctx context.Context, a plan.Action) error {
	body, err := e.remote.Get(ctx, a.Source)
	if err != nil {
		return err
	}
	defer body.Close()

	f, err := e.local.Create(a.Dest.FilePath())
	if err != nil {
		return mapFSError(a.Dest, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", a.Dest, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", a.Dest, err)
	}
	e.echo(a.Source.String(), a.Dest.FilePath())
	return nil
}

func (e *Executor) echo(src, dst string) {
	if e.progress != nil {
		fmt.Fprintf(e.progress, "%s -> %s\n", src, dst)
	}
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
