package davpath

import (
	"errors"
	"testing"

	"github.com/simpledav/simpledav/internal/daverr"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"simple", "/a/b/c", "/a/b/c"},
		{"no leading slash", "a/b", "/a/b"},
		{"trailing slash", "/a/b/", "/a/b"},
		{"doubled slashes", "//a///b", "/a/b"},
		{"dot segments dropped", "/a/./b/.", "/a/b"},
		{"dotdot resolves", "/a/b/../c", "/a/c"},
		{"root", "/", "/"},
		{"empty", "", "/"},
		{"lone dot", ".", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.raw, err)
			}
			if got := tok.String(); got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseRejectsTraversal(t *testing.T) {
	for _, raw := range []string{"..", "/..", "/a/../..", "../a", `a\b`} {
		t.Run(raw, func(t *testing.T) {
			if _, err := Parse(raw); !errors.Is(err, daverr.ErrInvalidPath) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidPath", raw, err)
			}
		})
	}
}

func TestParseHref(t *testing.T) {
	tok, err := ParseHref("http://localhost:8080/docs/hello%20world.txt")
	if err != nil {
		t.Fatalf("ParseHref error: %v", err)
	}
	if got := tok.String(); got != "/docs/hello world.txt" {
		t.Errorf("ParseHref = %q, want %q", got, "/docs/hello world.txt")
	}

	tok, err = ParseHref("/docs/sub/")
	if err != nil {
		t.Fatalf("ParseHref error: %v", err)
	}
	if got := tok.String(); got != "/docs/sub" {
		t.Errorf("ParseHref = %q, want %q", got, "/docs/sub")
	}
}

func TestAppend(t *testing.T) {
	base, _ := Parse("/a")
	tok, err := base.Append("b")
	if err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if tok.String() != "/a/b" {
		t.Errorf("Append = %q, want /a/b", tok.String())
	}
	// base must be unchanged
	if base.String() != "/a" {
		t.Errorf("Append mutated receiver: %q", base.String())
	}

	for _, bad := range []string{"", ".", "..", "x/y", `x\y`} {
		if _, err := base.Append(bad); !errors.Is(err, daverr.ErrInvalidPath) {
			t.Errorf("Append(%q) error = %v, want ErrInvalidPath", bad, err)
		}
	}
}

func TestJoin(t *testing.T) {
	a, _ := Parse("/a/b")
	b, _ := Parse("c/d")
	if got := a.Join(b).String(); got != "/a/b/c/d" {
		t.Errorf("Join = %q, want /a/b/c/d", got)
	}
	if got := a.Join(Root()).String(); got != "/a/b" {
		t.Errorf("Join(root) = %q, want /a/b", got)
	}
}

func TestEqualAndDescendant(t *testing.T) {
	a, _ := Parse("/a/b")
	b, _ := Parse("/a/b")
	c, _ := Parse("/a/b/c")
	d, _ := Parse("/a/x/c")

	if !a.Equal(b) {
		t.Error("expected /a/b == /a/b")
	}
	if a.Equal(c) {
		t.Error("expected /a/b != /a/b/c")
	}
	if !c.IsDescendantOf(a) {
		t.Error("expected /a/b/c descendant of /a/b")
	}
	if a.IsDescendantOf(a) {
		t.Error("a path is not its own strict descendant")
	}
	if d.IsDescendantOf(a) {
		t.Error("expected /a/x/c not descendant of /a/b")
	}
	if !c.IsDescendantOf(Root()) {
		t.Error("expected everything descendant of root")
	}
}

func TestAncestors(t *testing.T) {
	tok, _ := Parse("/a/b/c")
	got := tok.Ancestors()
	want := []string{"/a", "/a/b", "/a/b/c"}
	if len(got) != len(want) {
		t.Fatalf("Ancestors returned %d tokens, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].String() != w {
			t.Errorf("Ancestors[%d] = %q, want %q", i, got[i].String(), w)
		}
	}
	if n := len(Root().Ancestors()); n != 0 {
		t.Errorf("root Ancestors = %d tokens, want 0", n)
	}
}

func TestParentAndSegments(t *testing.T) {
	tok, _ := Parse("/a/b/c")
	if got := tok.Parent().String(); got != "/a/b" {
		t.Errorf("Parent = %q, want /a/b", got)
	}
	if got := Root().Parent().String(); got != "/" {
		t.Errorf("root Parent = %q, want /", got)
	}

	segs := tok.Segments()
	segs[0] = "mutated"
	if tok.String() != "/a/b/c" {
		t.Error("Segments exposed internal state")
	}
}

func TestRendering(t *testing.T) {
	tok, _ := Parse("/my docs/a+b")
	if got := tok.URLPath(); got != "/my%20docs/a+b" {
		t.Errorf("URLPath = %q", got)
	}
	if got := tok.FilePath(); got != "my docs/a+b" {
		t.Errorf("FilePath = %q", got)
	}
	if got := Root().URLPath(); got != "/" {
		t.Errorf("root URLPath = %q, want /", got)
	}
	if got := Root().FilePath(); got != "." {
		t.Errorf("root FilePath = %q, want .", got)
	}
	if got := Root().Base(); got != "/" {
		t.Errorf("root Base = %q, want /", got)
	}
}
