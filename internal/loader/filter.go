package loader

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/olehluchkiv/enumcheck/internal/analyzer"
)

// Filter applies filtering options to loaded definitions.
func Filter(defs []analyzer.Definition, opts Options) []analyzer.Definition {
	ignored := make(map[string]bool, len(opts.Ignore))
	for _, name := range opts.Ignore {
		ignored[name] = true
	}

	var filtered []analyzer.Definition
	for _, d := range defs {
		// Filter unexported
		if !opts.IncludeUnexported && isUnexported(d.Name) {
			continue
		}

		// Filter by package prefix
		if opts.Filter != "" && !strings.HasPrefix(d.PkgPath, opts.Filter) {
			continue
		}

		if ignored[d.QualifiedName()] || ignored[d.Name] {
			continue
		}

		filtered = append(filtered, d)
	}
	return filtered
}

func isUnexported(name string) bool {
	if name == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(r)
}
