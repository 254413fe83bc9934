// Package schema reads enum definitions from a TOML document:
//
//	[[enum]]
//	name = "Status"
//	package = "example.com/api" # optional
//
//	  [[enum.member]]
//	  name = "Unknown"
//	  value = 0
package schema

import (
	"fmt"
	"math"

	"github.com/pelletier/go-toml"

	"github.com/olehluchkiv/enumcheck/internal/analyzer"
)

// LoadFile reads and parses the schema file at path.
func LoadFile(path string) ([]analyzer.Definition, error) {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading schema %s: %w", path, err)
	}
	return fromTree(tree)
}

// Parse parses a schema document. Members with a missing or out-of-range
// value are kept with Err set; structural problems fail the whole document.
func Parse(data []byte) ([]analyzer.Definition, error) {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	return fromTree(tree)
}

func fromTree(tree *toml.Tree) ([]analyzer.Definition, error) {
	if !tree.Has("enum") {
		return nil, nil
	}
	enums, ok := tree.Get("enum").([]*toml.Tree)
	if !ok {
		return nil, fmt.Errorf("%s: enum must be an array of tables", tree.GetPosition("enum"))
	}

	defs := make([]analyzer.Definition, 0, len(enums))
	for _, et := range enums {
		name, ok := et.Get("name").(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("%s: enum without a name", et.Position())
		}
		pkg, _ := et.Get("package").(string)

		d := analyzer.Definition{Name: name, PkgPath: pkg}
		if et.Has("member") {
			members, ok := et.Get("member").([]*toml.Tree)
			if !ok {
				return nil, fmt.Errorf("%s: enum %s: member must be an array of tables", et.GetPosition("member"), name)
			}
			for _, mt := range members {
				mem, err := memberOf(mt)
				if err != nil {
					return nil, fmt.Errorf("enum %s: %w", name, err)
				}
				d.Members = append(d.Members, mem)
			}
		}
		defs = append(defs, d)
	}
	return defs, nil
}

func memberOf(mt *toml.Tree) (analyzer.Member, error) {
	name, ok := mt.Get("name").(string)
	if !ok || name == "" {
		return analyzer.Member{}, fmt.Errorf("%s: member without a name", mt.Position())
	}
	mem := analyzer.Member{Name: name}

	switch v := mt.Get("value").(type) {
	case int64:
		if v < math.MinInt32 || v > math.MaxInt32 {
			mem.Err = fmt.Errorf("value %d overflows int32", v)
		} else {
			mem.Value = int32(v)
		}
	case nil:
		mem.Err = fmt.Errorf("%s: missing value", mt.Position())
	default:
		mem.Err = fmt.Errorf("%s: value %v is not an integer", mt.GetPosition("value"), v)
	}
	return mem, nil
}
