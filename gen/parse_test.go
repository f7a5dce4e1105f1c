package gen

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func newTestGenerator(t *testing.T) *Generator {
	g, err := New(Options{}, nil)
	require.NoError(t, err)
	return g
}

func TestParseFileFindsDirectives(t *testing.T) {
	g := newTestGenerator(t)

	file, err := g.ParseFile("config.go", `package app

// Config is the application configuration.
//
//singleton:safe
type Config struct {
	Addr string
}

//singleton:unsafe
type state struct {
	hits int
}

type (
	//singleton:safe
	Pool struct{}

	plain struct{}
)

type Untouched struct{}
`)
	require.NoError(t, err)

	assert.Equal(t, "app", file.Package)
	require.Len(t, file.Decls, 3)

	assert.Equal(t, "Config", file.Decls[0].Name)
	assert.Equal(t, KindSafe, file.Decls[0].Kind)
	assert.Equal(t, 6, file.Decls[0].Pos.Line)

	assert.Equal(t, "state", file.Decls[1].Name)
	assert.Equal(t, KindUnsafe, file.Decls[1].Kind)

	assert.Equal(t, "Pool", file.Decls[2].Name)
	assert.Equal(t, KindSafe, file.Decls[2].Kind)
}

func TestParseFileRejectsNonStruct(t *testing.T) {
	g := newTestGenerator(t)

	cases := []struct {
		name string
		src  string
		msg  string
	}{
		{
			name: "interface",
			src:  "package app\n\n//singleton:safe\ntype Store interface{}\n",
			msg:  "bad.go:3:1: //singleton:safe must annotate a struct type, Store is an interface",
		},
		{
			name: "named type",
			src:  "package app\n\n//singleton:unsafe\ntype Port int\n",
			msg:  "bad.go:3:1: //singleton:unsafe must annotate a struct type, Port is not a struct literal",
		},
		{
			name: "alias",
			src:  "package app\n\ntype Other struct{}\n\n//singleton:safe\ntype Alias = Other\n",
			msg:  "bad.go:5:1: //singleton:safe must annotate a struct type, Alias is an alias",
		},
		{
			name: "generic",
			src:  "package app\n\n//singleton:safe\ntype Box[T any] struct{ v T }\n",
			msg:  "bad.go:3:1: //singleton:safe cannot annotate generic type Box",
		},
		{
			name: "func",
			src:  "package app\n\n//singleton:safe\nfunc Run() {}\n",
			msg:  "bad.go:3:1: //singleton:safe must annotate a struct type, not a func Run",
		},
		{
			name: "var",
			src:  "package app\n\n//singleton:unsafe\nvar cfg struct{}\n",
			msg:  "bad.go:3:1: //singleton:unsafe must annotate a struct type, not a var declaration",
		},
		{
			name: "grouped",
			src:  "package app\n\n//singleton:safe\ntype (\n\tA struct{}\n)\n",
			msg:  "bad.go:3:1: //singleton:safe must annotate a struct type, not a grouped type declaration",
		},
		{
			name: "arguments",
			src:  "package app\n\n//singleton:safe lazy\ntype A struct{}\n",
			msg:  "bad.go:3:1: //singleton:safe takes no arguments",
		},
		{
			name: "unknown",
			src:  "package app\n\n//singleton:global\ntype A struct{}\n",
			msg:  "bad.go:3:1: unknown directive //singleton:global",
		},
		{
			name: "empty",
			src:  "package app\n\n//singleton:\ntype A struct{}\n",
			msg:  "bad.go:3:1: missing singleton kind, want //singleton:safe or //singleton:unsafe",
		},
		{
			name: "duplicate",
			src:  "package app\n\n//singleton:safe\n//singleton:safe\ntype A struct{}\n",
			msg:  "bad.go:4:1: duplicate //singleton:safe on A",
		},
		{
			name: "conflict",
			src:  "package app\n\n//singleton:safe\n//singleton:unsafe\ntype A struct{}\n",
			msg:  "bad.go:4:1: //singleton:unsafe conflicts with //singleton:safe on A",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			file, err := g.ParseFile("bad.go", c.src)
			assert.Nil(t, file)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDirective))
			assert.EqualError(t, err, c.msg)
		})
	}
}

func TestParseFileReportsEveryProblem(t *testing.T) {
	g := newTestGenerator(t)

	_, err := g.ParseFile("bad.go", `package app

//singleton:safe
type A int

//singleton:unsafe
func B() {}

//singleton:safe
type C struct{}
`)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
}

func TestParseFileSyntaxError(t *testing.T) {
	g := newTestGenerator(t)

	_, err := g.ParseFile("broken.go", "package app\n\n//singleton:safe\ntype A struct {\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse broken.go")
	assert.False(t, errors.Is(err, ErrInvalidDirective))
}

func TestParseFileIgnoresLookalikes(t *testing.T) {
	g := newTestGenerator(t)

	file, err := g.ParseFile("ok.go", `package app

// singleton:safe is only a directive without the space
type A struct{}

type B struct {
	//singleton:safe
	Field int
}
`)
	require.NoError(t, err)
	assert.Empty(t, file.Decls)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "safe", KindSafe.String())
	assert.Equal(t, "unsafe", KindUnsafe.String())
	assert.Equal(t, "unknown", Kind(0).String())
	assert.Equal(t, "//singleton:unsafe", KindUnsafe.Directive())
}
