package filter

import (
	"fmt"
	"strings"

	"github.com/conneroisu/assetns/internal/errors"
)

// DefaultIgnore lists the patterns placed in the ignore group unless
// NoDefaultIgnore is set.
var DefaultIgnore = []string{
	"**/.gitignore",
	"**/.gitmodules",
	"**/.DS_Store",
}

// GroupSpec declares one include/exclude group.
type GroupSpec struct {
	Include []string `mapstructure:"include" yaml:"include" json:"include"`
	Exclude []string `mapstructure:"exclude" yaml:"exclude,omitempty" json:"exclude,omitempty"`
}

// BlockSpec declares the groups of one content kind. Include and Exclude,
// when present, form an implicit group evaluated before Groups.
type BlockSpec struct {
	Kind    string      `mapstructure:"kind" yaml:"kind" json:"kind"`
	Include []string    `mapstructure:"include" yaml:"include,omitempty" json:"include,omitempty"`
	Exclude []string    `mapstructure:"exclude" yaml:"exclude,omitempty" json:"exclude,omitempty"`
	Groups  []GroupSpec `mapstructure:"groups" yaml:"groups,omitempty" json:"groups,omitempty"`
}

// Spec is the declarative filter specification of a module. Exactly one of
// the flat shape (Flat, every group is text) or the tagged shape (Tagged)
// may be used.
type Spec struct {
	Flat             []GroupSpec `mapstructure:"filters" yaml:"filters,omitempty" json:"filters,omitempty"`
	Tagged           []BlockSpec `mapstructure:"blocks" yaml:"blocks,omitempty" json:"blocks,omitempty"`
	Ignore           []string    `mapstructure:"ignore" yaml:"ignore,omitempty" json:"ignore,omitempty"`
	NoDefaultIgnore  bool        `mapstructure:"no_default_ignore" yaml:"no_default_ignore,omitempty" json:"no_default_ignore,omitempty"`
	LiteralSeparator bool        `mapstructure:"literal_separator" yaml:"literal_separator,omitempty" json:"literal_separator,omitempty"`
}

// Options returns the compilation options the spec asks for.
func (s Spec) Options() Options {
	return Options{LiteralSeparator: s.LiteralSeparator}
}

// IgnorePatterns returns the ignore group's patterns in evaluation order.
func (s Spec) IgnorePatterns() []string {
	var out []string
	if !s.NoDefaultIgnore {
		out = append(out, DefaultIgnore...)
	}
	return append(out, s.Ignore...)
}

// Validate checks the shape of the spec without compiling patterns.
func (s Spec) Validate() error {
	if len(s.Flat) > 0 && len(s.Tagged) > 0 {
		return errors.NewConfigError(errors.ErrCodeConfigInvalid,
			"filters and blocks cannot both be set")
	}
	for i, b := range s.Tagged {
		if _, err := ParseKind(b.Kind); err != nil {
			return errors.NewConfigError(errors.ErrCodeConfigInvalid,
				fmt.Sprintf("blocks[%d]: %v", i, err))
		}
	}
	return nil
}

// Rules flattens the spec into kind-tagged groups in declaration order.
func (s Spec) Rules() ([]Kind, []GroupSpec, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	var (
		kinds  []Kind
		groups []GroupSpec
	)
	for _, g := range s.Flat {
		kinds = append(kinds, KindText)
		groups = append(groups, g)
	}
	for _, b := range s.Tagged {
		k, _ := ParseKind(b.Kind)
		if len(b.Include) > 0 || len(b.Exclude) > 0 {
			kinds = append(kinds, k)
			groups = append(groups, GroupSpec{Include: b.Include, Exclude: b.Exclude})
		}
		for _, g := range b.Groups {
			kinds = append(kinds, k)
			groups = append(groups, g)
		}
	}
	return kinds, groups, nil
}

// Compile builds the classified set, compiling every pattern through cache.
// cache may be nil.
func (s Spec) Compile(cache *PatternCache) (*ClassifiedSet, error) {
	kinds, groups, err := s.Rules()
	if err != nil {
		return nil, err
	}
	opts := s.Options()
	compile := func(src string) (*Pattern, error) {
		return cache.Compile(src, opts)
	}

	var ignore *Group
	if patterns := s.IgnorePatterns(); len(patterns) > 0 {
		ignore, err = newGroup(patterns, nil, compile)
		if err != nil {
			return nil, err
		}
	}

	rules := make([]Rule, 0, len(groups))
	for i, gs := range groups {
		g, err := newGroup(gs.Include, gs.Exclude, compile)
		if err != nil {
			return nil, err
		}
		rules = append(rules, Rule{Kind: kinds[i], Group: g})
	}
	return NewClassifiedSet(ignore, rules...), nil
}

// QuoteMeta escapes every glob metacharacter in s so the result matches s
// literally.
func QuoteMeta(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
