//go:build property

package ident

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestIdentifierProperties checks the sanitizer invariants over arbitrary input.
func TestIdentifierProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(4242)
	parameters.MinSuccessfulTests = 500

	properties := gopter.NewProperties(parameters)

	properties.Property("sanitized output is always valid", prop.ForAll(
		func(s string) bool {
			return IsValid(ToValid(s))
		},
		gen.AnyString(),
	))

	properties.Property("sanitizing is idempotent", prop.ForAll(
		func(s string) bool {
			once := ToValid(s)
			return ToValid(once) == once
		},
		gen.AnyString(),
	))

	properties.Property("valid identifiers are left unchanged", prop.ForAll(
		func(s string) bool {
			if !IsValid(s) {
				return true
			}
			return ToValid(s) == s
		},
		gen.Identifier(),
	))

	properties.Property("leading ASCII digit is preserved", prop.ForAll(
		func(d rune, rest string) bool {
			out := ToValid(string(d) + rest)
			return len(out) >= 2 && out[0] == '_' && rune(out[1]) == d
		},
		gen.RuneRange('0', '9'),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
