// Package nlattr implements policy-driven decoding of netlink attribute
// streams.
//
// A Table describes, per attribute type, the expected wire encoding and
// length bounds of an attribute. Decode walks a buffer of netlink
// attributes, validates each against the Table and produces an Attrs
// mapping. Nested attributes are not descended into by Decode; their raw
// payloads may be split with Split and decoded again with a child Table.
package nlattr

import "fmt"

// A Type is the wire encoding of a netlink attribute.
type Type int

// Possible Type values.
const (
	// Unspec attributes are stored as raw bytes. Attribute types without an
	// entry in a Table are treated as Unspec.
	Unspec Type = iota
	U8
	U16
	U32
	U64
	Flag
	String
	Binary
	Nested
)

// String returns the string representation of a Type.
func (t Type) String() string {
	switch t {
	case Unspec:
		return "unspec"
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case Flag:
		return "flag"
	case String:
		return "string"
	case Binary:
		return "binary"
	case Nested:
		return "nested"
	default:
		return fmt.Sprintf("unknown(%d)", t)
	}
}

// width returns the exact payload width of a fixed-size integer Type, or 0.
func (t Type) width() int {
	switch t {
	case U8:
		return 1
	case U16:
		return 2
	case U32:
		return 4
	case U64:
		return 8
	default:
		return 0
	}
}

// A Policy describes the expected encoding of a single attribute type.
type Policy struct {
	// The wire encoding of the attribute.
	Type Type

	// Optional payload length bounds in bytes, applied to String, Binary
	// and Unspec attributes. Zero means unbounded.
	MinLen, MaxLen int
}

// A Table is an immutable set of Policy values indexed by attribute type.
//
// Tables are intended to be constructed once at package initialization and
// shared by any number of Decode calls.
type Table struct {
	ps []Policy
}

// NewTable creates a Table accepting attribute types 0 through max. Types
// not present in ps receive the zero Policy. NewTable panics if ps contains
// a type greater than max, since that indicates a programming error in a
// static table definition.
func NewTable(max uint16, ps map[uint16]Policy) Table {
	t := Table{ps: make([]Policy, int(max)+1)}
	for typ, p := range ps {
		if typ > max {
			panic(fmt.Sprintf("nlattr: policy for type %d exceeds table maximum %d", typ, max))
		}

		t.ps[typ] = p
	}

	return t
}

// Max returns the largest attribute type described by t.
func (t Table) Max() uint16 {
	if len(t.ps) == 0 {
		return 0
	}

	return uint16(len(t.ps) - 1)
}

// Lookup returns the Policy for attribute type typ. ok reports whether typ
// falls within the bounds of t.
func (t Table) Lookup(typ uint16) (p Policy, ok bool) {
	if int(typ) >= len(t.ps) {
		return Policy{}, false
	}

	return t.ps[typ], true
}
