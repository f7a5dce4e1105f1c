package gen

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"github.com/pkg/errors"
)

type Kind int

const (
	KindSafe Kind = iota + 1
	KindUnsafe
)

const directivePrefix = "//singleton:"

func (k Kind) String() string {
	switch k {
	case KindSafe:
		return "safe"
	case KindUnsafe:
		return "unsafe"
	default:
		return "unknown"
	}
}

func (k Kind) Directive() string {
	return directivePrefix + k.String()
}

var ErrInvalidDirective = errors.New("invalid singleton directive")

// DirectiveError reports a misplaced or malformed directive at Pos.
type DirectiveError struct {
	Pos token.Position
	Msg string
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func (e *DirectiveError) Is(target error) bool {
	return target == ErrInvalidDirective
}

type directive struct {
	kind Kind
	pos  token.Pos
}

// directives extracts //singleton: lines from a doc comment. Malformed lines
// are returned as errors and left out of the result.
func directives(fset *token.FileSet, doc *ast.CommentGroup) ([]directive, []error) {
	if doc == nil {
		return nil, nil
	}

	var (
		found []directive
		errs  []error
	)
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, directivePrefix) {
			continue
		}

		fields := strings.Fields(strings.TrimPrefix(c.Text, directivePrefix))
		if len(fields) == 0 {
			errs = append(errs, &DirectiveError{Pos: fset.Position(c.Slash), Msg: "missing singleton kind, want //singleton:safe or //singleton:unsafe"})
			continue
		}

		var kind Kind
		switch fields[0] {
		case KindSafe.String():
			kind = KindSafe
		case KindUnsafe.String():
			kind = KindUnsafe
		default:
			errs = append(errs, &DirectiveError{Pos: fset.Position(c.Slash), Msg: fmt.Sprintf("unknown directive %s%s", directivePrefix, fields[0])})
			continue
		}

		if len(fields) > 1 {
			errs = append(errs, &DirectiveError{Pos: fset.Position(c.Slash), Msg: fmt.Sprintf("%s takes no arguments", kind.Directive())})
			continue
		}

		found = append(found, directive{kind: kind, pos: c.Slash})
	}

	return found, errs
}
