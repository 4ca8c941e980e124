package assemble

import (
	"bytes"
	"fmt"
	"go/token"
	"path"
	"strconv"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"mvdan.cc/gofumpt/format"

	"github.com/conneroisu/assetns/internal/errors"
)

// DefaultGenerator is the tool name written into generated file headers.
const DefaultGenerator = "assetns"

// GoOptions configure the Go back end.
type GoOptions struct {
	// Package is the package clause of the generated file. Defaults to the
	// lower-cased module identifier.
	Package string
	// Unexported renders names with a lower-case first letter instead of
	// exporting them.
	Unexported bool
	// EmbedPrefix is the slash-separated path from the generated file's
	// directory to the base directory.
	EmbedPrefix string
	// Generator names the tool in the header comment.
	Generator string
}

// GoBackend renders a Go source file. Every constant becomes a //go:embed
// variable, so the Go toolchain loads file content at compile time: text as
// string, binary as []byte. Top-level namespaces become package variables of
// generated struct types, giving nested access such as Lang.En_US.
type GoBackend struct {
	opts GoOptions
}

// NewGoBackend creates a Go back end.
func NewGoBackend(opts GoOptions) *GoBackend {
	if opts.Generator == "" {
		opts.Generator = DefaultGenerator
	}
	return &GoBackend{opts: opts}
}

// Name implements Backend.
func (b *GoBackend) Name() string { return FormatGo }

// predeclared identifiers the generated file itself refers to.
var predeclared = map[string]bool{"string": true, "byte": true}

// Ident implements Backend. Runes Go does not accept in identifiers become
// '_'. Exported names get an 'X' prefix when their first rune has no
// upper-case form.
func (b *GoBackend) Ident(id string) string {
	var sb strings.Builder
	for i, r := range id {
		switch {
		case r == '_' || unicode.IsLetter(r):
			sb.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	name := sb.String()
	if name == "" {
		name = "_"
	}

	if !b.opts.Unexported {
		return exportName(name)
	}
	return unexportName(name)
}

func exportName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	upper := cases.Upper(language.Und).String(string(r)) + name[size:]
	if token.IsIdentifier(upper) && token.IsExported(upper) {
		return upper
	}
	return "X" + name
}

func unexportName(name string) string {
	if name == "_" {
		return "_x"
	}
	r, size := utf8.DecodeRuneInString(name)
	lower := cases.Lower(language.Und).String(string(r)) + name[size:]
	if token.IsIdentifier(lower) && !token.IsExported(lower) {
		name = lower
	}
	if token.IsKeyword(name) || predeclared[name] {
		return name + "_"
	}
	return name
}

// Render implements Backend.
func (b *GoBackend) Render(doc *Document) ([]byte, error) {
	pkg := b.opts.Package
	if pkg == "" {
		pkg = PackageName(doc.Module)
	}
	r := &goRenderer{
		backend: b,
		file:    &goFile{Generator: b.opts.Generator, Package: pkg},
		names:   make(map[string]bool),
	}
	if err := r.render(doc.Root); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := goTemplate.Execute(&buf, r.file); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	formatted, err := format.Source(buf.Bytes(), format.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to format generated source: %w", err)
	}
	return formatted, nil
}

// PackageName derives a Go package name from a module identifier.
func PackageName(module string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(module) {
		if r == '_' || unicode.IsLetter(r) || (sb.Len() > 0 && unicode.IsDigit(r)) {
			sb.WriteRune(r)
		}
	}
	name := strings.Trim(sb.String(), "_")
	if name == "" || token.IsKeyword(name) || !token.IsIdentifier(name) {
		return "assets"
	}
	return name
}

type goDecl struct {
	Name  string
	Doc   string
	Embed string
	Type  string
	Value string
}

type goField struct {
	Name string
	Type string
}

type goType struct {
	Name   string
	Fields []goField
}

type goFile struct {
	Generator string
	Package   string
	HasEmbed  bool
	Decls     []goDecl
	Types     []goType
	Embeds    []goDecl
}

var goTemplate = template.Must(template.New("go").Parse(`// Code generated by {{.Generator}}. DO NOT EDIT.

package {{.Package}}
{{if .HasEmbed}}
import _ "embed"
{{end}}
{{- range .Decls}}
// {{.Name}} {{.Doc}}
{{- if .Embed}}
//
//go:embed {{.Embed}}
var {{.Name}} {{.Type}}
{{- else}}
var {{.Name}} = {{.Value}}
{{- end}}
{{end}}
{{- range .Types}}
type {{.Name}} struct {
{{- range .Fields}}
	{{.Name}} {{.Type}}
{{- end}}
}
{{end}}
{{- range .Embeds}}
//go:embed {{.Embed}}
var {{.Name}} {{.Type}}
{{end}}`))

type goRenderer struct {
	backend *GoBackend
	file    *goFile
	// names holds every package-level identifier already declared.
	names map[string]bool
}

func (r *goRenderer) fresh(base string) string {
	name := base
	for i := 2; r.names[name]; i++ {
		name = base + "_" + strconv.Itoa(i)
	}
	r.names[name] = true
	return name
}

func (r *goRenderer) render(root *Entry) error {
	for _, c := range root.Children {
		r.names[c.Name] = true
	}

	for _, c := range root.Children {
		if c.IsNamespace() {
			lit, err := r.namespace(c, []string{c.Name})
			if err != nil {
				return err
			}
			r.file.Decls = append(r.file.Decls, goDecl{
				Name:  c.Name,
				Doc:   "holds the assets under " + commentSafe(c.Source) + "/.",
				Value: lit,
			})
			continue
		}

		pattern, err := r.backend.embedPattern(c.Source)
		if err != nil {
			return err
		}
		r.file.HasEmbed = true
		r.file.Decls = append(r.file.Decls, goDecl{
			Name:  c.Name,
			Doc:   "is the " + c.Kind + " content of " + commentSafe(c.Source) + ".",
			Embed: pattern,
			Type:  goValueType(c.Kind),
		})
	}
	return nil
}

// namespace declares the struct type of e and returns its composite literal.
func (r *goRenderer) namespace(e *Entry, trail []string) (string, error) {
	typeName := r.fresh("ns" + strings.Join(trail, ""))
	idx := len(r.file.Types)
	r.file.Types = append(r.file.Types, goType{Name: typeName})

	fields := make([]goField, 0, len(e.Children))
	var lit strings.Builder
	lit.WriteString(typeName)
	lit.WriteString("{")
	if len(e.Children) > 0 {
		lit.WriteString("\n")
	}

	for _, c := range e.Children {
		if c.IsNamespace() {
			childTrail := append(append([]string(nil), trail...), c.Name)
			childLit, err := r.namespace(c, childTrail)
			if err != nil {
				return "", err
			}
			fields = append(fields, goField{Name: c.Name, Type: literalType(childLit)})
			fmt.Fprintf(&lit, "%s: %s,\n", c.Name, childLit)
			continue
		}

		pattern, err := r.backend.embedPattern(c.Source)
		if err != nil {
			return "", err
		}
		varName := r.fresh("embed" + strconv.Itoa(len(r.file.Embeds)))
		r.file.HasEmbed = true
		r.file.Embeds = append(r.file.Embeds, goDecl{
			Name:  varName,
			Embed: pattern,
			Type:  goValueType(c.Kind),
		})
		fields = append(fields, goField{Name: c.Name, Type: goValueType(c.Kind)})
		fmt.Fprintf(&lit, "%s: %s,\n", c.Name, varName)
	}

	lit.WriteString("}")
	r.file.Types[idx].Fields = fields
	return lit.String(), nil
}

func literalType(lit string) string {
	return lit[:strings.IndexByte(lit, '{')]
}

func goValueType(kind string) string {
	if kind == EntryBinary {
		return "[]byte"
	}
	return "string"
}

// invalidEmbedChars are rejected by the go command in embedded file names.
const invalidEmbedChars = "\"'*<>?`|:\\[]"

// embedPattern returns the quoted //go:embed argument for a base-relative
// source path.
func (b *GoBackend) embedPattern(source string) (string, error) {
	p := path.Join(b.opts.EmbedPrefix, source)
	if path.IsAbs(p) || p == ".." || strings.HasPrefix(p, "../") {
		return "", errors.ErrEmbedPath(source, "path escapes the directory of the generated file")
	}
	if i := strings.IndexAny(p, invalidEmbedChars); i >= 0 {
		return "", errors.ErrEmbedPath(source, fmt.Sprintf("character %q is not allowed in embedded file names", p[i]))
	}
	for _, r := range p {
		if r < 0x20 || r == 0x7f {
			return "", errors.ErrEmbedPath(source, "control characters are not allowed in embedded file names")
		}
	}
	return strconv.Quote(p), nil
}

func commentSafe(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return '?'
		}
		return r
	}, s)
}
