package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/conneroisu/assetns/internal/errors"
	"github.com/conneroisu/assetns/internal/filter"
)

// hclFile is the schema of a module definition file:
//
//	module "assets" {
//	  base   = "assets"
//	  output = "assets/assets_gen.go"
//
//	  filter "text" {
//	    include = ["lang/*.toml"]
//	  }
//	  filter "binary" {
//	    group {
//	      include = ["images/*.png"]
//	      exclude = ["images/private/*"]
//	    }
//	  }
//	}
//
// Top-level group blocks of a module use the flat shape, filter blocks the
// tagged shape.
type hclFile struct {
	Modules []hclModule `hcl:"module,block"`
}

type hclModule struct {
	Name             string      `hcl:"name,label"`
	Base             string      `hcl:"base"`
	Output           string      `hcl:"output,optional"`
	Format           string      `hcl:"format,optional"`
	Package          string      `hcl:"package,optional"`
	Unexported       bool        `hcl:"unexported,optional"`
	Collision        string      `hcl:"collision,optional"`
	Ignore           []string    `hcl:"ignore,optional"`
	NoDefaultIgnore  bool        `hcl:"no_default_ignore,optional"`
	LiteralSeparator bool        `hcl:"literal_separator,optional"`
	Groups           []hclGroup  `hcl:"group,block"`
	Filters          []hclFilter `hcl:"filter,block"`
}

type hclGroup struct {
	Include []string `hcl:"include"`
	Exclude []string `hcl:"exclude,optional"`
}

type hclFilter struct {
	Kind    string     `hcl:"kind,label"`
	Include []string   `hcl:"include,optional"`
	Exclude []string   `hcl:"exclude,optional"`
	Groups  []hclGroup `hcl:"group,block"`
}

// LoadHCL decodes the modules declared in the HCL file at path.
func LoadHCL(path string) ([]Module, error) {
	var file hclFile
	if err := hclsimple.DecodeFile(path, nil, &file); err != nil {
		return nil, hclError(path, err)
	}
	return file.modules(), nil
}

// ParseHCL decodes modules from src; filename only selects the syntax
// (".hcl" or ".json") and appears in diagnostics.
func ParseHCL(filename string, src []byte) ([]Module, error) {
	var file hclFile
	if err := hclsimple.Decode(filename, src, nil, &file); err != nil {
		return nil, hclError(filename, err)
	}
	return file.modules(), nil
}

func hclError(path string, err error) error {
	ae := errors.NewConfigError(errors.ErrCodeConfigInvalid,
		fmt.Sprintf("cannot decode module definitions in %s", path))
	ae.Cause = err
	return ae.WithPath(path)
}

func (f hclFile) modules() []Module {
	modules := make([]Module, 0, len(f.Modules))
	for _, hm := range f.Modules {
		m := Module{
			Name:       hm.Name,
			Base:       hm.Base,
			Output:     hm.Output,
			Format:     hm.Format,
			Package:    hm.Package,
			Unexported: hm.Unexported,
			Collision:  hm.Collision,
			Filter: filter.Spec{
				Ignore:           hm.Ignore,
				NoDefaultIgnore:  hm.NoDefaultIgnore,
				LiteralSeparator: hm.LiteralSeparator,
			},
		}
		for _, g := range hm.Groups {
			m.Filter.Flat = append(m.Filter.Flat, filter.GroupSpec(g))
		}
		for _, hf := range hm.Filters {
			block := filter.BlockSpec{Kind: hf.Kind, Include: hf.Include, Exclude: hf.Exclude}
			for _, g := range hf.Groups {
				block.Groups = append(block.Groups, filter.GroupSpec(g))
			}
			m.Filter.Tagged = append(m.Filter.Tagged, block)
		}
		modules = append(modules, m)
	}
	return modules
}
