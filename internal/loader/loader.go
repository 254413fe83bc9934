// Package loader extracts enum definitions from Go packages. An enum is a
// named integer type together with the package-level constants of that type.
package loader

import (
	"context"
	"fmt"
	"go/constant"
	"go/token"
	"go/types"
	"log/slog"
	"math"
	"sort"

	"golang.org/x/tools/go/packages"

	"github.com/olehluchkiv/enumcheck/internal/analyzer"
)

// Options controls which enums are loaded and kept.
type Options struct {
	Filter            string   // package path prefix filter
	IncludeUnexported bool     // keep enum types with unexported names
	IncludeTests      bool     // also load _test.go files
	Ignore            []string // qualified enum names to drop
}

// Load loads the packages under dir and returns their enum definitions,
// unfiltered, in package order.
func Load(ctx context.Context, dir string, opts Options, logger *slog.Logger) ([]analyzer.Definition, error) {
	logger = logger.With("component", "loader")

	cfg := &packages.Config{
		Mode:    packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
		Dir:     dir,
		Context: ctx,
		Tests:   opts.IncludeTests,
	}

	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}

	logger.Info("packages loaded", "packages_count", len(pkgs))

	var defs []analyzer.Definition
	seen := make(map[string]int) // qualified name -> index in defs
	for _, pkg := range pkgs {
		// Log packages with errors but continue
		for _, e := range pkg.Errors {
			logger.Warn("package load error", "package", pkg.PkgPath, "error", e.Msg)
		}
		if pkg.Types == nil {
			continue
		}
		for _, d := range FromPackageFset(pkg.Types, pkg.Fset) {
			// With Tests the same enum shows up in the package and its test
			// variant. The variant is a superset: it also holds constants
			// declared in _test.go files.
			key := d.QualifiedName()
			if i, ok := seen[key]; ok {
				if pkg.ForTest != "" || len(d.Members) > len(defs[i].Members) {
					defs[i] = d
					logger.Debug("enum replaced by test variant", "enum", key, "members", len(d.Members))
				}
				continue
			}
			seen[key] = len(defs)
			defs = append(defs, d)
			logger.Debug("found enum", "enum", key, "members", len(d.Members))
		}
	}

	logger.Info("enums collected", "enums", len(defs))
	return defs, nil
}

// FromPackage returns the enums declared in pkg. Types are ordered by
// declaration position, as are the members of each type.
func FromPackage(pkg *types.Package) []analyzer.Definition {
	return fromPackage(pkg, func(a, b token.Pos) bool { return a < b })
}

// FromPackageFset is FromPackage for packages whose files were parsed
// concurrently into fset: declarations are ordered by file name, then by
// offset within the file.
func FromPackageFset(pkg *types.Package, fset *token.FileSet) []analyzer.Definition {
	if fset == nil {
		return FromPackage(pkg)
	}
	return fromPackage(pkg, func(a, b token.Pos) bool {
		pa, pb := fset.Position(a), fset.Position(b)
		if pa.Filename != pb.Filename {
			return pa.Filename < pb.Filename
		}
		return pa.Offset < pb.Offset
	})
}

func fromPackage(pkg *types.Package, less func(a, b token.Pos) bool) []analyzer.Definition {
	scope := pkg.Scope()

	type enum struct {
		tn      *types.TypeName
		members []*types.Const
	}
	enums := make(map[*types.TypeName]*enum)

	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok {
			continue
		}
		named, ok := c.Type().(*types.Named)
		if !ok || !isIntegerType(named) {
			continue
		}
		tn := named.Obj()
		if tn.Pkg() != pkg {
			continue
		}
		e, ok := enums[tn]
		if !ok {
			e = &enum{tn: tn}
			enums[tn] = e
		}
		e.members = append(e.members, c)
	}

	ordered := make([]*enum, 0, len(enums))
	for _, e := range enums {
		ordered = append(ordered, e)
	}
	sort.Slice(ordered, func(i, j int) bool { return less(ordered[i].tn.Pos(), ordered[j].tn.Pos()) })

	defs := make([]analyzer.Definition, 0, len(ordered))
	for _, e := range ordered {
		sort.Slice(e.members, func(i, j int) bool { return less(e.members[i].Pos(), e.members[j].Pos()) })
		d := analyzer.Definition{
			Name:    e.tn.Name(),
			PkgPath: pkg.Path(),
			Members: make([]analyzer.Member, 0, len(e.members)),
		}
		for _, c := range e.members {
			d.Members = append(d.Members, memberOf(c))
		}
		defs = append(defs, d)
	}
	return defs
}

func isIntegerType(named *types.Named) bool {
	basic, ok := named.Underlying().(*types.Basic)
	return ok && basic.Info()&types.IsInteger != 0
}

func memberOf(c *types.Const) analyzer.Member {
	mem := analyzer.Member{Name: c.Name()}
	v := constant.ToInt(c.Val())
	if v.Kind() != constant.Int {
		mem.Err = fmt.Errorf("value %s is not an integer", c.Val().ExactString())
		return mem
	}
	i, exact := constant.Int64Val(v)
	if !exact || i < math.MinInt32 || i > math.MaxInt32 {
		mem.Err = fmt.Errorf("value %s overflows int32", v.ExactString())
		return mem
	}
	mem.Value = int32(i)
	return mem
}
