// Package davpath provides the normalized, traversal-safe path
// representation used throughout the client. A Token is an ordered
// sequence of single path segments; the zero value is the root.
package davpath

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/simpledav/simpledav/internal/daverr"
)

// Token is a normalized path. It is immutable: every operation returns a
// new Token. No segment is empty, ".", "..", or contains a separator.
type Token struct {
	segs []string
}

// Root returns the empty token, which addresses the server root.
func Root() Token {
	return Token{}
}

// Parse normalizes a slash-separated path into a Token. "." segments are
// dropped, ".." segments resolve against the preceding segment, and leading
// or doubled slashes are ignored. A ".." that would climb above the root
// fails with ErrInvalidPath, as does a backslash anywhere in the path.
func Parse(raw string) (Token, error) {
	if strings.ContainsRune(raw, '\\') {
		return Token{}, fmt.Errorf("%w: %q contains a backslash", daverr.ErrInvalidPath, raw)
	}

	var segs []string
	for _, part := range strings.Split(raw, "/") {
		switch part {
		case "", ".":
			// no-op
		case "..":
			if len(segs) == 0 {
				return Token{}, fmt.Errorf("%w: %q escapes the root", daverr.ErrInvalidPath, raw)
			}
			segs = segs[:len(segs)-1]
		default:
			segs = append(segs, part)
		}
	}
	return Token{segs: segs}, nil
}

// ParseHref decodes a WebDAV href (absolute URL or absolute path) into a
// Token. Percent-escapes are resolved before normalization.
func ParseHref(href string) (Token, error) {
	u, err := url.Parse(href)
	if err != nil {
		return Token{}, fmt.Errorf("%w: href %q: %v", daverr.ErrInvalidPath, href, err)
	}
	return Parse(u.Path)
}

// Append returns a new token with one more segment. The name must be a
// single segment: non-empty, not "." or "..", no separators.
func (t Token) Append(name string) (Token, error) {
	if name == "" || name == "." || name == ".." {
		return Token{}, fmt.Errorf("%w: invalid segment %q", daverr.ErrInvalidPath, name)
	}
	if strings.ContainsAny(name, `/\`) {
		return Token{}, fmt.Errorf("%w: segment %q contains a separator", daverr.ErrInvalidPath, name)
	}
	segs := make([]string, len(t.segs)+1)
	copy(segs, t.segs)
	segs[len(t.segs)] = name
	return Token{segs: segs}, nil
}

// Join returns the concatenation of t and child.
func (t Token) Join(child Token) Token {
	if len(child.segs) == 0 {
		return t
	}
	segs := make([]string, 0, len(t.segs)+len(child.segs))
	segs = append(segs, t.segs...)
	segs = append(segs, child.segs...)
	return Token{segs: segs}
}

// Parent returns the token with the last segment removed. The parent of
// the root is the root.
func (t Token) Parent() Token {
	if len(t.segs) == 0 {
		return t
	}
	segs := make([]string, len(t.segs)-1)
	copy(segs, t.segs[:len(t.segs)-1])
	return Token{segs: segs}
}

// Base returns the last segment, or "/" for the root.
func (t Token) Base() string {
	if len(t.segs) == 0 {
		return "/"
	}
	return t.segs[len(t.segs)-1]
}

// IsRoot reports whether the token has no segments.
func (t Token) IsRoot() bool {
	return len(t.segs) == 0
}

// Equal reports segment-sequence equality.
func (t Token) Equal(other Token) bool {
	if len(t.segs) != len(other.segs) {
		return false
	}
	for i, s := range t.segs {
		if other.segs[i] != s {
			return false
		}
	}
	return true
}

// IsDescendantOf reports whether t is a strict descendant of ancestor.
func (t Token) IsDescendantOf(ancestor Token) bool {
	if len(t.segs) <= len(ancestor.segs) {
		return false
	}
	for i, s := range ancestor.segs {
		if t.segs[i] != s {
			return false
		}
	}
	return true
}

// Ancestors returns every non-root prefix of t, shallowest first,
// including t itself. The root yields an empty slice.
func (t Token) Ancestors() []Token {
	out := make([]Token, 0, len(t.segs))
	for i := 1; i <= len(t.segs); i++ {
		segs := make([]string, i)
		copy(segs, t.segs[:i])
		out = append(out, Token{segs: segs})
	}
	return out
}

// Segments returns a copy of the segment sequence.
func (t Token) Segments() []string {
	segs := make([]string, len(t.segs))
	copy(segs, t.segs)
	return segs
}

// String renders the token for display, always with a leading slash.
func (t Token) String() string {
	return "/" + strings.Join(t.segs, "/")
}

// URLPath renders the token as a percent-escaped URL path.
func (t Token) URLPath() string {
	if len(t.segs) == 0 {
		return "/"
	}
	escaped := make([]string, len(t.segs))
	for i, s := range t.segs {
		escaped[i] = url.PathEscape(s)
	}
	return "/" + strings.Join(escaped, "/")
}

// FilePath renders the token as a relative slash path for filesystem use.
// The root renders as ".".
func (t Token) FilePath() string {
	if len(t.segs) == 0 {
		return "."
	}
	return strings.Join(t.segs, "/")
}
