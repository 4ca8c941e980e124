package filter

import (
	"fmt"
	"strings"
)

// Kind determines how a matched file's content is embedded.
type Kind int

const (
	// KindText embeds the file as decoded UTF-8 text.
	KindText Kind = iota
	// KindBinary embeds the raw bytes of the file.
	KindBinary
)

// String returns the canonical lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBinary:
		return "binary"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind parses a kind name case-insensitively. "str" and "bytes" are
// accepted as aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "str":
		return KindText, nil
	case "binary", "bytes":
		return KindBinary, nil
	default:
		return 0, fmt.Errorf("unknown content kind %q (want text or binary)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k != KindText && k != KindBinary {
		return nil, fmt.Errorf("cannot marshal %s", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
