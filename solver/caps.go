package solver

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/goccy/go-yaml"
)

// Caps records which optional encodings the target solver backend
// accepts. The translator treats it as a read-only input.
type Caps struct {
	DataTypes       bool `yaml:"dataTypes"`
	Sets            bool `yaml:"sets"`
	BitVectors      bool `yaml:"bitVectors"`
	PseudoBooleans  bool `yaml:"pseudoBooleans"`
	IntToBV         bool `yaml:"intToBV"`
	Distinct        bool `yaml:"distinct"`
	DirectAccessors bool `yaml:"directAccessors"`
	DefineFun       bool `yaml:"defineFun"`
	FlattenedModels bool `yaml:"flattenedModels"`
}

// Info identifies the concrete solver a capability table entry is
// being resolved against.
type Info struct {
	Name    string
	Version string
}

type capsFile struct {
	Name     string         `yaml:"name"`
	Supports map[string]any `yaml:"supports"`
}

// LoadCaps reads a YAML capability table. Each entry under supports is
// either a plain bool or a guard expression evaluated against the
// solver's name and version. The environment carries name and version
// as strings, major and minor as numbers, and atLeast comparing the
// version numerically component by component, e.g.
//
//	name: z3
//	supports:
//	  dataTypes: true
//	  pseudoBooleans: atLeast("4.8")
//	  sets: name == "cvc5" && major >= 1
func LoadCaps(data []byte, info Info) (Caps, error) {
	var file capsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Caps{}, fmt.Errorf("%w: %v", ErrCapsTable, err)
	}
	res := Caps{}
	for key, raw := range file.Supports {
		v, err := resolveCap(key, raw, info)
		if err != nil {
			return Caps{}, err
		}
		switch key {
		case "dataTypes":
			res.DataTypes = v
		case "sets":
			res.Sets = v
		case "bitVectors":
			res.BitVectors = v
		case "pseudoBooleans":
			res.PseudoBooleans = v
		case "intToBV":
			res.IntToBV = v
		case "distinct":
			res.Distinct = v
		case "directAccessors":
			res.DirectAccessors = v
		case "defineFun":
			res.DefineFun = v
		case "flattenedModels":
			res.FlattenedModels = v
		default:
			return Caps{}, fmt.Errorf("%w: unknown capability %q", ErrCapsTable, key)
		}
	}
	return res, nil
}

func resolveCap(key string, raw any, info Info) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		parts := versionParts(info.Version)
		env := map[string]any{
			"name":    info.Name,
			"version": info.Version,
			"major":   part(parts, 0),
			"minor":   part(parts, 1),
			"atLeast": func(min string) bool {
				return compareVersions(parts, versionParts(min)) >= 0
			},
		}
		prog, err := expr.Compile(v, expr.Env(env), expr.AsBool())
		if err != nil {
			return false, fmt.Errorf("%w: capability %q: %v", ErrCapsTable, key, err)
		}
		out, err := expr.Run(prog, env)
		if err != nil {
			return false, fmt.Errorf("%w: capability %q: %v", ErrCapsTable, key, err)
		}
		return out.(bool), nil
	default:
		return false, fmt.Errorf("%w: capability %q: want bool or expression, got %T", ErrCapsTable, key, raw)
	}
}

// versionParts splits a dotted version into its numeric components.
// Non-numeric tails such as "4.12-rc1" keep their numeric prefix.
func versionParts(v string) []int {
	var res []int
	for _, s := range strings.Split(v, ".") {
		n := 0
		for _, r := range s {
			if r < '0' || r > '9' {
				break
			}
			n = n*10 + int(r-'0')
		}
		res = append(res, n)
	}
	return res
}

func part(parts []int, i int) int {
	if i < len(parts) {
		return parts[i]
	}
	return 0
}

// compareVersions orders component-wise, treating missing components
// as zero.
func compareVersions(a, b []int) int {
	for i := 0; i < len(a) || i < len(b); i++ {
		if d := part(a, i) - part(b, i); d != 0 {
			if d < 0 {
				return -1
			}
			return 1
		}
	}
	return 0
}
