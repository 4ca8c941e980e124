// Package assemble renders a namespace tree into an artifact.
//
// Assembly is split in two steps. The tree is first converted into a
// Document whose entry names are rendered by the back end and checked for
// collisions. The back end then serializes the Document. No step touches
// the filesystem: constants are emitted as path references only.
package assemble

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/conneroisu/assetns/internal/errors"
	"github.com/conneroisu/assetns/internal/filter"
	"github.com/conneroisu/assetns/internal/types"
)

// CollisionPolicy decides what happens when two entries of one namespace
// render to the same name.
type CollisionPolicy string

const (
	// CollisionError fails assembly with ERR_IDENT_COLLISION.
	CollisionError CollisionPolicy = "error"
	// CollisionSuffix renames later entries with _2, _3, ...
	CollisionSuffix CollisionPolicy = "suffix"
)

// ParseCollisionPolicy parses a policy name; "" selects CollisionError.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch CollisionPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", CollisionError:
		return CollisionError, nil
	case CollisionSuffix:
		return CollisionSuffix, nil
	default:
		return "", fmt.Errorf("unknown collision policy %q (want error or suffix)", s)
	}
}

// Entry kinds as they appear in manifests.
const (
	EntryNamespace = "namespace"
	EntryText      = "text"
	EntryBinary    = "binary"
)

// Entry is one rendered node of a Document.
type Entry struct {
	// Name is the back-end rendered identifier, unique among its siblings.
	Name string `json:"name" yaml:"name"`
	// Kind is EntryNamespace, EntryText or EntryBinary.
	Kind string `json:"kind" yaml:"kind"`
	// Source is the base-relative path of the directory or file.
	Source   string   `json:"source,omitempty" yaml:"source,omitempty"`
	Children []*Entry `json:"children,omitempty" yaml:"children,omitempty"`
}

// IsNamespace reports whether e is a directory entry.
func (e *Entry) IsNamespace() bool { return e.Kind == EntryNamespace }

// Document is the back-end independent form of an artifact.
type Document struct {
	Module string `json:"module" yaml:"module"`
	Base   string `json:"base,omitempty" yaml:"base,omitempty"`
	// Fingerprint identifies the shape of the tree: names, kinds and sources.
	Fingerprint string `json:"fingerprint" yaml:"fingerprint"`
	Root        *Entry `json:"root" yaml:"root"`
}

// Backend serializes a Document.
type Backend interface {
	// Name is the format name, e.g. "go".
	Name() string
	// Ident renders a sanitized identifier in the target's naming rules.
	Ident(id string) string
	// Render serializes doc.
	Render(doc *Document) ([]byte, error)
}

// Options configure Assemble.
type Options struct {
	Collision CollisionPolicy
	// Base is recorded in manifests as given.
	Base string
}

// Artifact is the result of one assembly.
type Artifact struct {
	Format      string
	Content     []byte
	Fingerprint string
}

// Assemble converts tree into a Document and renders it with backend.
func Assemble(tree *types.Namespace, backend Backend, opts Options) (*Artifact, error) {
	doc, err := NewDocument(tree, backend, opts)
	if err != nil {
		return nil, err
	}
	content, err := backend.Render(doc)
	if err != nil {
		if _, ok := err.(*errors.AssetError); ok {
			return nil, err
		}
		ae := errors.NewAssemblyError(errors.ErrCodeRender, "cannot render "+backend.Name()+" artifact")
		ae.Cause = err
		return nil, ae.WithModule(doc.Module)
	}
	return &Artifact{
		Format:      backend.Name(),
		Content:     content,
		Fingerprint: Fingerprint(content),
	}, nil
}

// NewDocument renders the names of tree with backend and resolves
// collisions according to opts.
func NewDocument(tree *types.Namespace, backend Backend, opts Options) (*Document, error) {
	if tree == nil {
		return nil, errors.NewInternalError(errors.ErrCodeInternalError, "nil namespace tree", nil)
	}
	policy := opts.Collision
	if policy == "" {
		policy = CollisionError
	}

	root, err := convert(tree, backend, policy)
	if err != nil {
		if ae, ok := err.(*errors.AssetError); ok {
			return nil, ae.WithModule(tree.Ident)
		}
		return nil, err
	}
	return &Document{
		Module:      tree.Ident,
		Base:        opts.Base,
		Fingerprint: treeFingerprint(root),
		Root:        root,
	}, nil
}

func convert(ns *types.Namespace, backend Backend, policy CollisionPolicy) (*Entry, error) {
	e := &Entry{
		Name:     backend.Ident(ns.Ident),
		Kind:     EntryNamespace,
		Source:   ns.Source,
		Children: make([]*Entry, 0, len(ns.Children)),
	}

	owners := make(map[string]string, len(ns.Children))
	for _, child := range ns.Children {
		var ce *Entry
		switch c := child.(type) {
		case *types.Namespace:
			var err error
			ce, err = convert(c, backend, policy)
			if err != nil {
				return nil, err
			}
		case *types.Constant:
			ce = &Entry{
				Name:   backend.Ident(c.Ident),
				Kind:   kindName(c.Kind),
				Source: c.SourcePath,
			}
		default:
			return nil, errors.NewInternalError(errors.ErrCodeInternalError,
				fmt.Sprintf("unexpected node type %T", child), nil)
		}

		if first, taken := owners[ce.Name]; taken {
			if policy != CollisionSuffix {
				return nil, errors.ErrIdentCollision(ce.Name, displaySource(first), displaySource(ce.Source))
			}
			ce.Name = nextFree(ce.Name, owners)
		}
		owners[ce.Name] = ce.Source
		e.Children = append(e.Children, ce)
	}
	return e, nil
}

func nextFree(name string, taken map[string]string) string {
	for i := 2; ; i++ {
		candidate := name + "_" + strconv.Itoa(i)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}

func displaySource(s string) string {
	if s == "" {
		return "."
	}
	return s
}

func kindName(k filter.Kind) string {
	if k == filter.KindBinary {
		return EntryBinary
	}
	return EntryText
}

// Fingerprint returns the xxh3-64 digest of content as 16 hex digits.
func Fingerprint(content []byte) string {
	return fmt.Sprintf("%016x", xxh3.Hash(content))
}

func treeFingerprint(root *Entry) string {
	h := xxh3.New()
	var visit func(e *Entry, depth int)
	visit = func(e *Entry, depth int) {
		fmt.Fprintf(h, "%d\x00%s\x00%s\x00%s\n", depth, e.Kind, e.Name, e.Source)
		for _, c := range e.Children {
			visit(c, depth+1)
		}
	}
	visit(root, 0)
	return fmt.Sprintf("%016x", h.Sum64())
}

// BackendFor returns the back end registered for format. goOpts only
// applies to the "go" format.
func BackendFor(format string, goOpts GoOptions) (Backend, error) {
	switch strings.ToLower(format) {
	case "", FormatGo:
		return NewGoBackend(goOpts), nil
	case FormatJSON:
		return JSONBackend{}, nil
	case FormatYAML, "yml":
		return YAMLBackend{}, nil
	default:
		return nil, errors.NewConfigError(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("unknown output format %q (want go, json or yaml)", format))
	}
}
