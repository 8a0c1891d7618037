// Package plan builds transfer plans: ordered, side-effect-free sequences
// of atomic actions describing exactly what a recursive upload or download
// must do. Planning only reads metadata; no bytes move until the executor
// consumes the plan.
package plan

import (
	"fmt"

	"github.com/simpledav/simpledav/internal/davpath"
)

// ActionKind selects the variant of an Action.
type ActionKind int

const (
	// MakeDir creates one directory at Path. Idempotent.
	MakeDir ActionKind = iota
	// CopyFile copies one file's bytes from Source to Dest.
	CopyFile
)

func (k ActionKind) String() string {
	if k == MakeDir {
		return "mkdir"
	}
	return "copy"
}

// Action is one atomic unit of planned work. It is a closed tagged
// variant: Kind selects which fields are meaningful. Path belongs to
// MakeDir; Source, Dest and SizeHint belong to CopyFile (SizeHint is -1
// when unknown).
type Action struct {
	Kind     ActionKind
	Path     davpath.Token
	Source   davpath.Token
	Dest     davpath.Token
	SizeHint int64
}

// NewMakeDir builds a MakeDir action.
func NewMakeDir(path davpath.Token) Action {
	return Action{Kind: MakeDir, Path: path}
}

// NewCopyFile builds a CopyFile action.
func NewCopyFile(source, dest davpath.Token, sizeHint int64) Action {
	return Action{Kind: CopyFile, Source: source, Dest: dest, SizeHint: sizeHint}
}

// Target returns the path the action creates.
func (a Action) Target() davpath.Token {
	if a.Kind == MakeDir {
		return a.Path
	}
	return a.Dest
}

func (a Action) String() string {
	if a.Kind == MakeDir {
		return fmt.Sprintf("mkdir %s", a.Path)
	}
	return fmt.Sprintf("copy %s -> %s", a.Source, a.Dest)
}

// Direction tells the executor which side is read and which is written.
type Direction int

const (
	Upload Direction = iota
	Download
)

func (d Direction) String() string {
	if d == Upload {
		return "upload"
	}
	return "download"
}

// Plan is an immutable snapshot of intended work: produced once by a
// single recursive walk, consumed once by the executor, then discarded.
// Every MakeDir precedes every action targeting a strict descendant of
// its path; this ordering is the only encoding of the hierarchy.
type Plan struct {
	Direction Direction
	Actions   []Action
}
