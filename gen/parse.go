package gen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Decl is a struct type carrying a singleton directive.
type Decl struct {
	Name string
	Kind Kind
	Pos  token.Position
}

// File is the result of scanning one Go source file.
type File struct {
	Path    string
	Package string
	Decls   []Decl

	// top-level identifiers declared by the file, used for collision checks
	names map[string]token.Position
}

// ParseFile scans a single Go source file for singleton directives. src may
// be nil, in which case the file is read from path. Every misplaced directive
// in the file is reported in the returned error.
func (g *Generator) ParseFile(path string, src interface{}) (*File, error) {
	var fset = token.NewFileSet()

	f, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}

	file := &File{
		Path:    path,
		Package: f.Name.Name,
		names:   make(map[string]token.Position),
	}

	var errs error
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil {
				file.names[d.Name.Name] = fset.Position(d.Name.Pos())
			}
			errs = multierr.Append(errs, rejectAll(fset, d.Doc, "func "+d.Name.Name))
		case *ast.GenDecl:
			errs = multierr.Append(errs, g.inspectGenDecl(fset, file, d))
		}
	}

	if errs != nil {
		return nil, errs
	}

	g.log.Debugw("parsed file", "path", path, "package", file.Package, "decls", len(file.Decls))
	return file, nil
}

func (g *Generator) inspectGenDecl(fset *token.FileSet, file *File, d *ast.GenDecl) error {
	var errs error

	for _, spec := range d.Specs {
		switch s := spec.(type) {
		case *ast.ValueSpec:
			for _, name := range s.Names {
				file.names[name.Name] = fset.Position(name.Pos())
			}
		case *ast.TypeSpec:
			file.names[s.Name.Name] = fset.Position(s.Name.Pos())
		}
	}

	if d.Tok != token.TYPE {
		return rejectAll(fset, d.Doc, d.Tok.String()+" declaration")
	}

	if d.Lparen.IsValid() {
		// grouped: directives belong on the individual specs
		errs = multierr.Append(errs, rejectAll(fset, d.Doc, "grouped type declaration"))
	}

	for _, spec := range d.Specs {
		ts := spec.(*ast.TypeSpec)

		doc := ts.Doc
		if !d.Lparen.IsValid() {
			doc = d.Doc
		}

		decl, err := inspectTypeSpec(fset, ts, doc)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if decl != nil {
			file.Decls = append(file.Decls, *decl)
		}
	}

	return errs
}

func inspectTypeSpec(fset *token.FileSet, ts *ast.TypeSpec, doc *ast.CommentGroup) (*Decl, error) {
	found, errs := directives(fset, doc)
	if len(errs) > 0 {
		return nil, multierr.Combine(errs...)
	}
	if len(found) == 0 {
		return nil, nil
	}

	var (
		first = found[0]
		pos   = fset.Position(first.pos)
		name  = ts.Name.Name
	)

	if len(found) > 1 {
		other := found[1]
		if other.kind == first.kind {
			return nil, &DirectiveError{Pos: fset.Position(other.pos), Msg: fmt.Sprintf("duplicate %s on %s", other.kind.Directive(), name)}
		}
		return nil, &DirectiveError{Pos: fset.Position(other.pos), Msg: fmt.Sprintf("%s conflicts with %s on %s", other.kind.Directive(), first.kind.Directive(), name)}
	}

	switch {
	case ts.Assign.IsValid():
		return nil, &DirectiveError{Pos: pos, Msg: fmt.Sprintf("%s must annotate a struct type, %s is an alias", first.kind.Directive(), name)}
	case ts.TypeParams != nil && len(ts.TypeParams.List) > 0:
		return nil, &DirectiveError{Pos: pos, Msg: fmt.Sprintf("%s cannot annotate generic type %s", first.kind.Directive(), name)}
	}

	if _, ok := ts.Type.(*ast.StructType); !ok {
		return nil, &DirectiveError{Pos: pos, Msg: fmt.Sprintf("%s must annotate a struct type, %s is %s", first.kind.Directive(), name, describe(ts.Type))}
	}

	return &Decl{
		Name: name,
		Kind: first.kind,
		Pos:  fset.Position(ts.Name.Pos()),
	}, nil
}

func rejectAll(fset *token.FileSet, doc *ast.CommentGroup, what string) error {
	found, errs := directives(fset, doc)
	for _, d := range found {
		errs = append(errs, &DirectiveError{
			Pos: fset.Position(d.pos),
			Msg: fmt.Sprintf("%s must annotate a struct type, not a %s", d.kind.Directive(), what),
		})
	}
	return multierr.Combine(errs...)
}

func describe(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.InterfaceType:
		return "an interface"
	case *ast.FuncType:
		return "a func type"
	case *ast.MapType:
		return "a map type"
	case *ast.ArrayType:
		if t.Len == nil {
			return "a slice type"
		}
		return "an array type"
	case *ast.ChanType:
		return "a chan type"
	case *ast.StarExpr:
		return "a pointer type"
	default:
		return "not a struct literal"
	}
}
