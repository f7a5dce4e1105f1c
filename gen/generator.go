// Package gen finds struct types annotated with //singleton:safe or
// //singleton:unsafe and renders their accessor files.
package gen

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

type Generator struct {
	opts Options
	log  *zap.SugaredLogger
	tmpl *template.Template
}

// Output is one file to write, or to remove when Remove is set.
type Output struct {
	Path   string
	Source []byte
	Remove bool
}

func New(opts Options, logger *zap.Logger) (*Generator, error) {
	if err := defaults.Set(&opts); err != nil {
		return nil, errors.Wrap(err, "apply option defaults")
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	tmpl, err := template.New("singleton").Parse(fileTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "parse template")
	}

	return &Generator{
		opts: opts,
		log:  logger.Sugar(),
		tmpl: tmpl,
	}, nil
}

func (g *Generator) Options() Options {
	return g.opts
}

func (g *Generator) skip(path string) bool {
	return strings.HasSuffix(path, "_test.go") || g.isGenerated(path)
}

// ScanDir parses every non-test source file in dir, in name order. Files
// carrying the generated header are ignored.
func (g *Generator) ScanDir(ctx context.Context, dir string) ([]*File, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", dir)
	}

	var (
		files []*File
		errs  error
	)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if g.skip(path) {
			continue
		}

		file, err := g.ParseFile(path, nil)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		files = append(files, file)
	}

	if errs != nil {
		return nil, errs
	}

	if err := g.checkCollisions(files); err != nil {
		return nil, err
	}
	return files, nil
}

// checkCollisions rejects declarations whose generated identifiers clash
// with identifiers already declared in the package or generated for another
// declaration.
func (g *Generator) checkCollisions(files []*File) error {
	var (
		errs      error
		declared  = make(map[string]string)
		generated = make(map[string]Decl)
	)

	for _, f := range files {
		for name, pos := range f.names {
			declared[f.Package+"."+name] = pos.String()
		}
	}

	for _, f := range files {
		for _, decl := range f.Decls {
			for _, name := range g.generatedNames(decl) {
				key := f.Package + "." + name
				if pos, ok := declared[key]; ok {
					errs = multierr.Append(errs, &DirectiveError{
						Pos: decl.Pos,
						Msg: fmt.Sprintf("generated identifier %s for %s collides with declaration at %s", name, decl.Name, pos),
					})
				}
				if other, ok := generated[key]; ok {
					errs = multierr.Append(errs, &DirectiveError{
						Pos: decl.Pos,
						Msg: fmt.Sprintf("generated identifier %s for %s collides with the one generated for %s", name, decl.Name, other.Name),
					})
				}
				generated[key] = decl
			}
		}
	}

	return errs
}

// GenerateDir renders companion files for every annotated source file in
// dir. A previously generated file yields a Remove output once its source
// lost its directives or no longer exists.
func (g *Generator) GenerateDir(ctx context.Context, dir string) ([]Output, error) {
	files, err := g.ScanDir(ctx, dir)
	if err != nil {
		return nil, err
	}

	var (
		outputs []Output
		owned   = make(map[string]bool, len(files))
	)
	for _, f := range files {
		path := g.OutputPath(f.Path)
		owned[path] = true

		if len(f.Decls) == 0 {
			if g.isGenerated(path) {
				outputs = append(outputs, Output{Path: path, Remove: true})
			}
			continue
		}

		src, err := g.Render(f)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, Output{Path: path, Source: src})
	}

	orphans, err := g.orphans(dir, owned)
	if err != nil {
		return nil, err
	}
	outputs = append(outputs, orphans...)

	slices.SortFunc(outputs, func(a, b Output) int {
		return strings.Compare(a.Path, b.Path)
	})
	return outputs, nil
}

// orphans lists generated files in dir whose source file is gone.
func (g *Generator) orphans(dir string, owned map[string]bool) ([]Output, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*"+g.opts.Suffix))
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", dir)
	}

	var outputs []Output
	for _, path := range paths {
		if owned[path] || !g.isGenerated(path) {
			continue
		}
		outputs = append(outputs, Output{Path: path, Remove: true})
	}
	return outputs, nil
}

// isGenerated reports whether path exists and starts with our header.
func (g *Generator) isGenerated(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.TrimSpace(line) == header
}

// WriteOutputs writes or removes each output, skipping files whose content
// is already up to date.
func (g *Generator) WriteOutputs(outputs []Output) error {
	var errs error

	for _, out := range outputs {
		if out.Remove {
			if err := os.Remove(out.Path); err != nil && !os.IsNotExist(err) {
				errs = multierr.Append(errs, errors.Wrapf(err, "remove %s", out.Path))
				continue
			}
			g.log.Infow("removed stale file", "path", out.Path)
			continue
		}

		if old, err := os.ReadFile(out.Path); err == nil && bytes.Equal(old, out.Source) {
			g.log.Debugw("file up to date", "path", out.Path)
			continue
		}

		if err := os.WriteFile(out.Path, out.Source, 0o644); err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "write %s", out.Path))
			continue
		}
		g.log.Infow("generated file", "path", out.Path)
	}

	return errs
}
