// Package ident turns file and directory names into identifiers.
//
// Identifier validity follows the Unicode identifier classes XID_Start and
// XID_Continue (UAX #31) with '_' additionally accepted as a start
// character. Sanitization is total: every input string maps to a valid
// identifier, and sanitizing an already sanitized value returns it unchanged.
package ident

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	idStartTables = []*unicode.RangeTable{
		unicode.L,
		unicode.Nl,
		unicode.Other_ID_Start,
	}
	idContinueTables = []*unicode.RangeTable{
		unicode.Mn,
		unicode.Mc,
		unicode.Nd,
		unicode.Pc,
		unicode.Other_ID_Continue,
	}
	patternTables = []*unicode.RangeTable{
		unicode.Pattern_Syntax,
		unicode.Pattern_White_Space,
	}
)

func isIDStart(r rune) bool {
	return unicode.IsOneOf(idStartTables, r) && !unicode.IsOneOf(patternTables, r)
}

func isIDContinue(r rune) bool {
	if isIDStart(r) {
		return true
	}
	return unicode.IsOneOf(idContinueTables, r) && !unicode.IsOneOf(patternTables, r)
}

// IsStart reports whether r is an XID_Start character.
func IsStart(r rune) bool {
	if r < utf8.RuneSelf {
		return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
	}
	if !isIDStart(r) {
		return false
	}
	// XID_Start is ID_Start closed under NFKC.
	folded := norm.NFKC.String(string(r))
	for i, c := range folded {
		if i == 0 && !isIDStart(c) {
			return false
		}
		if i > 0 && !isIDContinue(c) {
			return false
		}
	}
	return true
}

// IsContinue reports whether r is an XID_Continue character.
func IsContinue(r rune) bool {
	if r < utf8.RuneSelf {
		return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') ||
			('0' <= r && r <= '9') || r == '_'
	}
	if !isIDContinue(r) {
		return false
	}
	for _, c := range norm.NFKC.String(string(r)) {
		if !isIDContinue(c) {
			return false
		}
	}
	return true
}

// IsValid reports whether s is a valid identifier: non-empty, starting with
// an XID_Start character or '_', followed only by XID_Continue characters.
func IsValid(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == utf8.RuneError {
			return false
		}
		if i == 0 {
			if r != '_' && !IsStart(r) {
				return false
			}
			continue
		}
		if !IsContinue(r) {
			return false
		}
	}
	return true
}

// ToValid maps s to a valid identifier.
//
// A first character that cannot start an identifier becomes '_'; an ASCII
// digit in that position is kept behind the '_' ("0abc" becomes "_0abc").
// Every later character that cannot continue an identifier becomes '_'.
func ToValid(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 1)

	first := true
	for _, r := range s {
		if first {
			first = false
			switch {
			case r != utf8.RuneError && IsStart(r):
				b.WriteRune(r)
			case '0' <= r && r <= '9':
				b.WriteByte('_')
				b.WriteRune(r)
			default:
				b.WriteByte('_')
			}
			continue
		}
		if r != utf8.RuneError && IsContinue(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	if first {
		return "_"
	}
	return b.String()
}

// FileStem returns name without its final extension. Names whose only dot
// is the leading one (".gitignore") are returned whole.
func FileStem(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return name
	}
	return name[:i]
}
