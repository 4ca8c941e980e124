// Package filter classifies base-relative paths against ordered glob rules.
//
// A Group matches a path when at least one include pattern matches and no
// exclude pattern does; a Group without includes matches nothing. A
// ClassifiedSet evaluates its groups in declaration order and the first
// matching group decides the content kind. All patterns are compiled when
// the set is built, so classification itself never fails.
package filter

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"

	"github.com/conneroisu/assetns/internal/errors"
)

// Options control pattern compilation.
type Options struct {
	// LiteralSeparator makes '*' and '?' stop at '/', leaving '**' as the
	// only wildcard that crosses directories.
	LiteralSeparator bool
}

type matcher interface {
	Match(path string) bool
}

type doublestarMatcher string

func (m doublestarMatcher) Match(path string) bool {
	ok, err := doublestar.Match(string(m), path)
	return err == nil && ok
}

// Pattern is an immutable compiled glob together with its source text.
type Pattern struct {
	source string
	m      matcher
}

// Compile compiles src. A malformed pattern yields an ERR_INVALID_GLOB
// configuration error naming src.
func Compile(src string, opts Options) (*Pattern, error) {
	if opts.LiteralSeparator {
		if !doublestar.ValidatePattern(src) {
			return nil, errors.ErrInvalidGlob(src, doublestar.ErrBadPattern)
		}
		return &Pattern{source: src, m: doublestarMatcher(src)}, nil
	}

	var globs anyGlob
	for _, variant := range superVariants(src) {
		g, err := glob.Compile(variant)
		if err != nil {
			return nil, errors.ErrInvalidGlob(src, err)
		}
		globs = append(globs, g)
	}
	if len(globs) == 1 {
		return &Pattern{source: src, m: globs[0]}, nil
	}
	return &Pattern{source: src, m: globs}, nil
}

type anyGlob []glob.Glob

func (a anyGlob) Match(path string) bool {
	for _, g := range a {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// superVariants expands every "**/" segment of src into the two forms it
// stands for: any number of directories, or none. gobwas/glob keeps the
// slash after "**" literal, so "**/*.txt" alone would miss "a.txt".
func superVariants(src string) []string {
	var cuts []int
	depth := 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '*':
			if depth == 0 && strings.HasPrefix(src[i:], "**/") && (i == 0 || src[i-1] == '/') {
				cuts = append(cuts, i)
				i += 2
			}
		}
	}

	variants := []string{src}
	// Cut from the right so earlier offsets stay valid.
	for c := len(cuts) - 1; c >= 0; c-- {
		at := cuts[c]
		for _, v := range variants {
			variants = append(variants, v[:at]+v[at+3:])
		}
	}
	return variants
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string, opts Options) *Pattern {
	p, err := Compile(src, opts)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source text of the pattern.
func (p *Pattern) String() string {
	return p.source
}

// Match reports whether the forward-slash, base-relative path matches.
func (p *Pattern) Match(path string) bool {
	return p.m.Match(path)
}
