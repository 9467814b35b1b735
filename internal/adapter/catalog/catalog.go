// Package catalog loads the challenge catalog: hashcash settings, the mazes a
// server may hand out and the quotes it rewards solvers with. Catalogs are
// HCL files; environment variables are exposed to them as env.NAME.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/dayanaadylkhanova/proof-of-response/internal/entity"
)

//go:embed default.hcl
var defaultSource []byte

const (
	defaultFilename     = "default.hcl"
	defaultComplexity   = 16
	defaultMessageBytes = 16
	maxComplexity       = 128
	maxEndurance        = 255
)

// Maze is a named maze input.
type Maze struct {
	Name  string
	Input entity.MonstrousMazeInput
}

type Hashcash struct {
	Complexity   uint32
	MessageBytes int
}

type Catalog struct {
	Hashcash Hashcash
	Mazes    []Maze
	Quotes   []string
}

// MazeInputs returns the inputs of all mazes in catalog order.
func (c *Catalog) MazeInputs() []entity.MonstrousMazeInput {
	out := make([]entity.MonstrousMazeInput, 0, len(c.Mazes))
	for _, m := range c.Mazes {
		out = append(out, m.Input)
	}
	return out
}

type fileRoot struct {
	Hashcash *hashcashBlock `hcl:"hashcash,block"`
	Mazes    []*mazeBlock   `hcl:"maze,block"`
	Quotes   []string       `hcl:"quotes,optional"`
}

type hashcashBlock struct {
	Complexity   *int `hcl:"complexity,optional"`
	MessageBytes *int `hcl:"message_bytes,optional"`
}

type mazeBlock struct {
	Name      string `hcl:"name,label"`
	Endurance int    `hcl:"endurance"`
	Grid      string `hcl:"grid"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultSource, defaultFilename)
}

// Load reads the catalog at path, or the embedded one if path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(src, path)
}

// Parse decodes an HCL catalog. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Catalog, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", filename, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", filename, diags)
	}

	c := &Catalog{
		Hashcash: Hashcash{Complexity: defaultComplexity, MessageBytes: defaultMessageBytes},
		Quotes:   root.Quotes,
	}

	if hb := root.Hashcash; hb != nil {
		if hb.Complexity != nil {
			if *hb.Complexity < 0 || *hb.Complexity > maxComplexity {
				return nil, fmt.Errorf("catalog %s: hashcash complexity %d out of range [0,%d]", filename, *hb.Complexity, maxComplexity)
			}
			c.Hashcash.Complexity = uint32(*hb.Complexity)
		}
		if hb.MessageBytes != nil {
			if *hb.MessageBytes <= 0 {
				return nil, fmt.Errorf("catalog %s: hashcash message_bytes must be positive", filename)
			}
			c.Hashcash.MessageBytes = *hb.MessageBytes
		}
	}

	seen := make(map[string]struct{}, len(root.Mazes))
	for _, mb := range root.Mazes {
		if _, dup := seen[mb.Name]; dup {
			return nil, fmt.Errorf("catalog %s: duplicate maze %q", filename, mb.Name)
		}
		seen[mb.Name] = struct{}{}
		if mb.Endurance < 0 || mb.Endurance > maxEndurance {
			return nil, fmt.Errorf("catalog %s: maze %q endurance %d out of range [0,%d]", filename, mb.Name, mb.Endurance, maxEndurance)
		}
		c.Mazes = append(c.Mazes, Maze{
			Name:  mb.Name,
			Input: entity.MonstrousMazeInput{Grid: mb.Grid, Endurance: uint8(mb.Endurance)},
		})
	}

	return c, nil
}

// evalContext exposes the process environment as the env object.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
	}
}
