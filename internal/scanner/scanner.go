// Package scanner finds the declaration strings a program passes to
// axon.Annotate(...).Declare and checks them without running the program.
package scanner

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/packages"

	"github.com/toyz/axonbind/internal/annotations"
	"github.com/toyz/axonbind/pkg/axon"
)

const axonPackage = "github.com/toyz/axonbind/pkg/axon"

// declareMethods are the methods whose string arguments are declarations
var declareMethods = map[string]bool{
	"Declare":     true,
	"MustDeclare": true,
}

// Problem is a declaration that would be rejected at startup, or a package
// that could not be loaded
type Problem struct {
	Location annotations.SourceLocation
	Raw      string
	Message  string
}

func (p Problem) String() string {
	if p.Raw == "" {
		return fmt.Sprintf("%s: %s", p.Location, p.Message)
	}
	return fmt.Sprintf("%s: %s '%s'", p.Location, p.Message, p.Raw)
}

// Report is the result of a scan
type Report struct {
	Module   string
	Packages int
	// Checked counts string literal declarations that were parsed
	Checked int
	// Skipped counts arguments that were not string literals
	Skipped  int
	Problems []Problem
}

// OK reports whether no problem was found
func (r *Report) OK() bool {
	return len(r.Problems) == 0
}

// Scanner loads packages and checks their declarations
type Scanner struct {
	dir    string
	tests  bool
	parser *annotations.DeclarationParser
}

// Option configures a Scanner
type Option func(*Scanner)

// WithTests includes the packages' test files
func WithTests(tests bool) Option {
	return func(s *Scanner) { s.tests = tests }
}

// New creates a scanner resolving patterns relative to dir
func New(dir string, opts ...Option) *Scanner {
	s := &Scanner{dir: dir, parser: annotations.NewDeclarationParser()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan loads the packages matching patterns, "./..." when none are given,
// and checks every declaration passed to Declare or MustDeclare as a string
// literal
func (s *Scanner) Scan(ctx context.Context, patterns ...string) (*Report, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	report := &Report{}
	if module, err := ModulePath(s.dir); err == nil {
		report.Module = module
	}

	cfg := &packages.Config{
		Context: ctx,
		Dir:     s.dir,
		Tests:   s.tests,
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
			packages.NeedTypes | packages.NeedTypesInfo,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	seen := make(map[string]bool)
	for _, pkg := range pkgs {
		for _, perr := range pkg.Errors {
			report.Problems = append(report.Problems, Problem{
				Location: parsePos(perr.Pos),
				Message:  perr.Msg,
			})
		}
		report.Packages++

		files := make([]*ast.File, 0, len(pkg.Syntax))
		for _, f := range pkg.Syntax {
			name := pkg.Fset.Position(f.Pos()).Filename
			// test variants repeat the package's regular files
			if seen[name] {
				continue
			}
			seen[name] = true
			files = append(files, f)
		}
		s.scanFiles(pkg.Fset, pkg.TypesInfo, files, report)
	}

	sort.SliceStable(report.Problems, func(i, j int) bool {
		a, b := report.Problems[i].Location, report.Problems[j].Location
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Line < b.Line
	})
	return report, nil
}

func (s *Scanner) scanFiles(fset *token.FileSet, info *types.Info, files []*ast.File, report *Report) {
	insp := inspector.New(files)
	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok || !declareMethods[sel.Sel.Name] {
			return
		}
		onMethod, ok := annotatorKind(info, sel)
		if !ok {
			return
		}

		for _, arg := range call.Args {
			lit, ok := arg.(*ast.BasicLit)
			if !ok || lit.Kind != token.STRING {
				report.Skipped++
				continue
			}
			line, err := strconv.Unquote(lit.Value)
			if err != nil {
				report.Skipped++
				continue
			}

			pos := fset.Position(lit.Pos())
			loc := annotations.SourceLocation{File: pos.Filename, Line: pos.Line, Column: pos.Column}
			report.Checked++
			if msg := s.check(line, loc, onMethod); msg != "" {
				report.Problems = append(report.Problems, Problem{Location: loc, Raw: line, Message: msg})
			}
		}
	})
}

// check returns why line would be rejected, or "" when it is valid.
// onMethod tells whether the declaration is attached to a handler method.
func (s *Scanner) check(line string, loc annotations.SourceLocation, onMethod bool) string {
	decl, err := s.parser.Parse(line, loc)
	if err != nil {
		if se, ok := err.(*annotations.SyntaxError); ok {
			if se.Cause != nil {
				return se.Message + ": " + se.Cause.Error()
			}
			return se.Message
		}
		return err.Error()
	}

	switch decl.Kind() {
	case annotations.RouteDeclarationKind:
		if !onMethod {
			return "route declarations need a method"
		}
		if _, ok := axon.ParseVerb(decl.Route.Verb); !ok {
			return fmt.Sprintf("unsupported verb '%s'", decl.Route.Verb)
		}
		if err := axon.AxonPath(decl.Route.Path).Validate(); err != nil {
			return err.Error()
		}
	case annotations.ParamDeclarationKind:
		if !onMethod {
			return "param declarations need a method"
		}
		if _, ok := axon.ParseSourceKind(decl.Param.Source); !ok {
			return fmt.Sprintf("unknown source '%s'", decl.Param.Source)
		}
	}
	return ""
}

// annotatorKind reports whether sel is a call on an axon annotator and, if
// so, whether it is the per-method annotator. Without type information every
// Declare call is checked as a method declaration.
func annotatorKind(info *types.Info, sel *ast.SelectorExpr) (onMethod bool, ok bool) {
	if info == nil {
		return true, true
	}
	selection, found := info.Selections[sel]
	if !found {
		return true, true
	}

	recv := selection.Recv()
	if ptr, isPtr := recv.(*types.Pointer); isPtr {
		recv = ptr.Elem()
	}
	named, isNamed := recv.(*types.Named)
	if !isNamed || named.Obj().Pkg() == nil || named.Obj().Pkg().Path() != axonPackage {
		return false, false
	}
	switch named.Obj().Name() {
	case "MethodAnnotator":
		return true, true
	case "Annotator":
		return false, true
	}
	return false, false
}

// parsePos converts a "file:line:col" position from the go command
func parsePos(pos string) annotations.SourceLocation {
	loc := annotations.SourceLocation{File: pos}
	parts := strings.Split(pos, ":")
	if len(parts) < 3 {
		return loc
	}
	line, lerr := strconv.Atoi(parts[len(parts)-2])
	col, cerr := strconv.Atoi(parts[len(parts)-1])
	if lerr != nil || cerr != nil {
		return loc
	}
	return annotations.SourceLocation{File: strings.Join(parts[:len(parts)-2], ":"), Line: line, Column: col}
}
