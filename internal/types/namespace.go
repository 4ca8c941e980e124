// Package types provides the namespace tree shared by the walker, the
// assembler and the CLI. It has no dependencies on those packages so each
// of them can import it without cycles.
package types

import (
	"github.com/conneroisu/assetns/internal/filter"
)

// Node is either a *Namespace or a *Constant.
type Node interface {
	// Identifier returns the sanitized identifier of the node.
	Identifier() string
	// Name returns the original directory or file name the node came from.
	Name() string
	isNode()
}

// Namespace is a directory node.
type Namespace struct {
	// Ident is the sanitized directory name, or the module identifier for
	// the root.
	Ident string
	// Source is the base-relative, forward-slash directory path; "" for the root.
	Source string
	// Children are ordered by original name.
	Children []Node
}

// Constant is a file node. Content is never read during traversal; the
// consumer loads SourcePath itself.
type Constant struct {
	// Ident is the sanitized file stem.
	Ident string
	// Kind selects text or binary embedding.
	Kind filter.Kind
	// SourcePath is relative to the base directory and uses forward slashes.
	SourcePath string
}

// Identifier implements Node.
func (n *Namespace) Identifier() string { return n.Ident }

// Name implements Node.
func (n *Namespace) Name() string { return baseName(n.Source) }

func (n *Namespace) isNode() {}

// Identifier implements Node.
func (c *Constant) Identifier() string { return c.Ident }

// Name implements Node.
func (c *Constant) Name() string { return baseName(c.SourcePath) }

func (c *Constant) isNode() {}

func baseName(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			return p[i+1:]
		}
	}
	return p
}

// Walk calls fn for n and every descendant in depth-first pre-order.
// depth is 0 for n. Returning false from fn skips the node's children.
func Walk(n Node, fn func(node Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	if ns, ok := n.(*Namespace); ok {
		for _, c := range ns.Children {
			walk(c, depth+1, fn)
		}
	}
}

// Counts holds the number of nodes of each type in a tree.
type Counts struct {
	Namespaces int
	Text       int
	Binary     int
}

// Constants returns the total number of constants.
func (c Counts) Constants() int { return c.Text + c.Binary }

// Count tallies the nodes below and including root.
func Count(root *Namespace) Counts {
	var c Counts
	Walk(root, func(n Node, _ int) bool {
		switch v := n.(type) {
		case *Namespace:
			c.Namespaces++
		case *Constant:
			if v.Kind == filter.KindBinary {
				c.Binary++
			} else {
				c.Text++
			}
		}
		return true
	})
	return c
}

// Constants returns every constant of the tree in depth-first order.
func Constants(root *Namespace) []*Constant {
	var out []*Constant
	Walk(root, func(n Node, _ int) bool {
		if c, ok := n.(*Constant); ok {
			out = append(out, c)
		}
		return true
	})
	return out
}
