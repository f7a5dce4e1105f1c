package gen

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/akrennmair/slice"
	"github.com/hnhuaxi/singleton/utils"
	"github.com/pkg/errors"
	"golang.org/x/tools/imports"
)

type declData struct {
	Type       string
	Kind       Kind
	Helper     string
	Initialize string
	Write      string
	Read       string
	Global     string
}

type fileData struct {
	Source  string
	Tags    string
	Package string
	Runtime string
	Decls   []declData
}

// OutputPath is the path of the file generated for source.
func (g *Generator) OutputPath(source string) string {
	return strings.TrimSuffix(source, ".go") + g.opts.Suffix
}

func (g *Generator) declData(decl Decl) declData {
	data := declData{
		Type:       decl.Name,
		Kind:       decl.Kind,
		Initialize: utils.FuncName(g.opts.InitPrefix, decl.Name),
	}

	switch decl.Kind {
	case KindSafe:
		data.Helper = utils.HelperName(decl.Name, "Singleton")
		data.Write = utils.FuncName(g.opts.WritePrefix, decl.Name)
		data.Read = utils.FuncName(g.opts.ReadPrefix, decl.Name)
	case KindUnsafe:
		data.Helper = utils.HelperName(decl.Name, "Unguarded")
		data.Global = utils.FuncName(g.opts.GlobalPrefix, decl.Name)
	}
	return data
}

// generatedNames lists the package-level identifiers emitted for decl.
func (g *Generator) generatedNames(decl Decl) []string {
	data := g.declData(decl)
	if decl.Kind == KindSafe {
		return []string{data.Helper, data.Initialize, data.Write, data.Read}
	}
	return []string{data.Helper, data.Initialize, data.Global}
}

// Render produces the formatted companion file for f.
func (g *Generator) Render(f *File) ([]byte, error) {
	var (
		buf  bytes.Buffer
		path = g.OutputPath(f.Path)
		data = fileData{
			Source:  filepath.Base(f.Path),
			Tags:    g.opts.BuildTags,
			Package: f.Package,
			Runtime: g.opts.RuntimePackage,
			Decls:   slice.Map(f.Decls, g.declData),
		}
	)

	if len(f.Decls) == 0 {
		return nil, errors.Errorf("render %s: no singleton declarations", f.Path)
	}

	if err := g.tmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrapf(err, "render %s", path)
	}

	src, err := imports.Process(path, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "format %s", path)
	}
	return src, nil
}
