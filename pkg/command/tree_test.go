// SPDX-License-Identifier: MPL-2.0

package command

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/treecli/treecli/pkg/argtype"
)

func noop(context.Context, Args) error { return nil }

func TestRegisterLeafRequiresParent(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	err := tree.RegisterLeaf(ParsePath("math add"), Command{Run: noop})

	var parentErr *MissingParentError
	if !errors.As(err, &parentErr) {
		t.Fatalf("RegisterLeaf() error = %v, want *MissingParentError", err)
	}
	if !slices.Equal(parentErr.Prefix, []string{"math"}) {
		t.Errorf("Prefix = %v, want [math]", parentErr.Prefix)
	}
	if !strings.Contains(err.Error(), "register a base command") {
		t.Errorf("message should tell the author what to do: %q", err.Error())
	}
	if _, ok := tree.Lookup([]string{"math"}); ok {
		t.Error("failed registration must not create nodes")
	}
}

func TestRegisterLeafReportsFirstMissingPrefix(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	if err := tree.RegisterBase([]string{"a", "b"}, Command{}); err != nil {
		t.Fatalf("RegisterBase() error = %v", err)
	}

	// "a" exists only as an implicit group
	err := tree.RegisterLeaf([]string{"a", "b", "c"}, Command{Run: noop})
	var parentErr *MissingParentError
	if !errors.As(err, &parentErr) {
		t.Fatalf("RegisterLeaf() error = %v, want *MissingParentError", err)
	}
	if !slices.Equal(parentErr.Prefix, []string{"a"}) {
		t.Errorf("Prefix = %v, want [a]", parentErr.Prefix)
	}
}

func TestRegisterBaseCreatesGroups(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	if err := tree.RegisterBase(ParsePath("db migrate"), Command{Short: "Migrations"}); err != nil {
		t.Fatalf("RegisterBase() error = %v", err)
	}

	db, ok := tree.Lookup([]string{"db"})
	if !ok || db.Kind() != KindGroup || db.Command() != nil {
		t.Fatalf("db node = %+v, want implicit group", db)
	}
	mig, ok := tree.Lookup([]string{"db", "migrate"})
	if !ok || mig.Kind() != KindBase {
		t.Fatalf("db migrate node = %+v, want base", mig)
	}
	if got := mig.Path(); !slices.Equal(got, []string{"db", "migrate"}) {
		t.Errorf("Path() = %v", got)
	}
}

func TestRegisterLeafAfterBase(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	if err := tree.RegisterBase([]string{"math"}, Command{}); err != nil {
		t.Fatalf("RegisterBase() error = %v", err)
	}
	cmd := Command{Params: []Param{Arg("x", argtype.Int, "first")}, Run: noop}
	if err := tree.RegisterLeaf(ParsePath("math add"), cmd); err != nil {
		t.Fatalf("RegisterLeaf() error = %v", err)
	}
	// leaves may parent other leaves
	if err := tree.RegisterLeaf(ParsePath("math add fast"), Command{Run: noop}); err != nil {
		t.Fatalf("RegisterLeaf() under a leaf error = %v", err)
	}

	n, ok := tree.Lookup(ParsePath("math add"))
	if !ok || n.Kind() != KindLeaf || len(n.Command().Params) != 1 {
		t.Errorf("math add node = %+v", n)
	}
}

func TestRegisterRootLeaf(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	if err := tree.RegisterLeaf(nil, Command{Run: noop}); err != nil {
		t.Fatalf("RegisterLeaf(root) error = %v", err)
	}
	if tree.Root().Kind() != KindLeaf || !tree.Root().IsRoot() {
		t.Errorf("root kind = %s, want leaf", tree.Root().Kind())
	}
}

func TestRegisterOverwriteKeepsChildren(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	_ = tree.RegisterBase([]string{"svc"}, Command{Short: "old"})
	_ = tree.RegisterLeaf([]string{"svc", "start"}, Command{Run: noop})
	if err := tree.RegisterBase([]string{"svc"}, Command{Short: "new"}); err != nil {
		t.Fatalf("RegisterBase() error = %v", err)
	}

	n, _ := tree.Lookup([]string{"svc"})
	if n.Command().Short != "new" {
		t.Errorf("Short = %q, want overwritten value", n.Command().Short)
	}
	if _, ok := n.Child("start"); !ok {
		t.Error("overwrite dropped children")
	}
}

func TestInvalidRegistrations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    []string
		cmd     Command
		base    bool
		wantErr error
	}{
		{name: "empty segment", path: []string{""}, cmd: Command{Run: noop}, wantErr: ErrInvalidPath},
		{name: "segment with space", path: []string{"a b"}, base: true, wantErr: ErrInvalidPath},
		{name: "segment looks like flag", path: []string{"--x"}, base: true, wantErr: ErrInvalidPath},
		{name: "leaf without handler", path: []string{"run"}, wantErr: ErrMissingHandler},
		{name: "bad param name", path: []string{"run"}, cmd: Command{Run: noop, Params: []Param{Arg("1x", argtype.Int, "")}}, wantErr: ErrInvalidParam},
		{name: "duplicate param", path: []string{"run"}, cmd: Command{Run: noop, Params: []Param{Arg("x", argtype.Int, ""), Arg("x", argtype.Float, "")}}, wantErr: ErrInvalidParam},
		{name: "reserved param", path: []string{"run"}, cmd: Command{Run: noop, Params: []Param{Arg("help", argtype.Bool, "")}}, wantErr: ErrInvalidParam},
		{name: "whitespace help", path: []string{"run"}, cmd: Command{Run: noop, Params: []Param{Arg("x", argtype.Int, "   ")}}, wantErr: ErrInvalidParam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree := NewTree()
			var err error
			if tt.base {
				err = tree.RegisterBase(tt.path, tt.cmd)
			} else {
				err = tree.RegisterLeaf(tt.path, tt.cmd)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("register error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterBaseChecksOnlyThePath(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	cmd := Command{Short: "  ", Params: []Param{Arg("x", nil, ""), Arg("x", argtype.Int, "")}}
	if err := tree.RegisterBase([]string{"grp"}, cmd); err != nil {
		t.Fatalf("RegisterBase() error = %v, want nil", err)
	}
	if n, ok := tree.Lookup([]string{"grp"}); !ok || n.Kind() != KindBase {
		t.Errorf("grp node = %+v, want base", n)
	}
}

func TestWalkInsertionOrder(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := tree.RegisterBase([]string{name}, Command{}); err != nil {
			t.Fatalf("RegisterBase(%s) error = %v", name, err)
		}
	}
	_ = tree.RegisterLeaf([]string{"alpha", "b"}, Command{Run: noop})
	_ = tree.RegisterLeaf([]string{"alpha", "a"}, Command{Run: noop})

	var visited []string
	err := tree.Walk(func(n *Node) error {
		visited = append(visited, strings.Join(n.Path(), " "))
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	want := []string{"", "zeta", "alpha", "alpha b", "alpha a", "mid"}
	if !slices.Equal(visited, want) {
		t.Errorf("Walk() order = %q, want %q", visited, want)
	}

	stop := errors.New("stop")
	count := 0
	err = tree.Walk(func(*Node) error {
		count++
		if count == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) || count != 2 {
		t.Errorf("Walk() should stop at the first error, got %v after %d nodes", err, count)
	}
}
