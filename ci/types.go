package ci

import (
	"errors"
	"fmt"
	"strings"
)

type Kind int

const (
	// KindVoid is the zero Kind; used for functions without a return value.
	KindVoid Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUInt8
	KindUInt16
	KindUInt32
	KindUInt64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	// KindNamed is a user type reference not yet resolved to a record or
	// enum. Resolution happens when the interface is validated.
	KindNamed
	KindRecord
	KindEnum
	KindOptional
	KindSequence
)

var primitiveKinds = map[string]Kind{
	"i8":     KindInt8,
	"i16":    KindInt16,
	"i32":    KindInt32,
	"i64":    KindInt64,
	"u8":     KindUInt8,
	"u16":    KindUInt16,
	"u32":    KindUInt32,
	"u64":    KindUInt64,
	"f32":    KindFloat32,
	"f64":    KindFloat64,
	"bool":   KindBool,
	"string": KindString,
}

// IsPrimitive reports whether values of kind k cross the FFI boundary
// directly, without being serialized into a buffer.
func (k Kind) IsPrimitive() bool {
	return k >= KindInt8 && k <= KindBool
}

// Type is a type expression as written in an interface description, e.g.
// "u32", "point" or "optional<sequence<string>>".
type Type struct {
	Kind Kind
	// Name of the record or enum (KindNamed, KindRecord, KindEnum).
	Name string
	// Inner type (KindOptional, KindSequence).
	Inner *Type
}

var ErrEmptyType = errors.New("empty type expression")

// ParseType parses a type expression.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Type{}, ErrEmptyType
	}
	if k, ok := primitiveKinds[s]; ok {
		return Type{Kind: k}, nil
	}
	for pfx, k := range map[string]Kind{"optional<": KindOptional, "sequence<": KindSequence} {
		if rest, ok := strings.CutPrefix(s, pfx); ok {
			inner, ok := strings.CutSuffix(rest, ">")
			if !ok {
				return Type{}, fmt.Errorf("type %q: missing closing '>'", s)
			}
			in, err := ParseType(inner)
			if err != nil {
				return Type{}, fmt.Errorf("type %q: %w", s, err)
			}
			return Type{Kind: k, Inner: &in}, nil
		}
	}
	if strings.ContainsAny(s, "<> \t") {
		return Type{}, fmt.Errorf("invalid type expression %q", s)
	}
	return Type{Kind: KindNamed, Name: s}, nil
}

func (t Type) String() string {
	switch t.Kind {
	case KindVoid:
		return "void"
	case KindNamed, KindRecord, KindEnum:
		return t.Name
	case KindOptional:
		return "optional<" + t.Inner.String() + ">"
	case KindSequence:
		return "sequence<" + t.Inner.String() + ">"
	}
	for name, k := range primitiveKinds {
		if k == t.Kind {
			return name
		}
	}
	return fmt.Sprintf("Kind(%d)", int(t.Kind))
}

// IsVoid reports whether t is the absent type.
func (t Type) IsVoid() bool {
	return t.Kind == KindVoid
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
