package nlattr

import (
	"encoding/binary"

	"github.com/mdlayher/netlink/nlenc"
)

const (
	// headerLen is the size of a netlink attribute header: a 16-bit length
	// followed by a 16-bit type.
	headerLen = 4

	// Flag bits carried in the type field of an attribute header.
	flagNested       = 0x8000
	flagNetByteOrder = 0x4000
	typeMask         = ^uint16(flagNested | flagNetByteOrder)
)

// A Value is a single decoded attribute.
type Value struct {
	// The encoding the attribute was decoded as. Attributes outside of the
	// decoding Table are reported as Unspec.
	Type Type

	// The attribute's value when Type is U8, U16, U32 or U64.
	Uint uint64

	// The attribute's payload for every other Type. For String attributes
	// a trailing NUL terminator has been removed. Flag
	// attributes may carry an arbitrary payload which is preserved here.
	Data []byte
}

// Attrs is a set of decoded attributes keyed by attribute type.
//
// An attribute which did not appear in the decoded buffer is absent from
// Attrs, which is distinct from a Flag that is present or an integer which
// is zero.
type Attrs map[uint16]Value

// Has reports whether attribute type typ was present.
func (a Attrs) Has(typ uint16) bool {
	_, ok := a[typ]
	return ok
}

// Flag reports whether the Flag attribute typ was present.
func (a Attrs) Flag(typ uint16) bool {
	v, ok := a[typ]
	return ok && v.Type == Flag
}

// Uint returns the value of integer attribute typ of any width. ok is false
// if the attribute is absent or was not decoded as an integer.
func (a Attrs) Uint(typ uint16) (uint64, bool) {
	v, ok := a[typ]
	if !ok || v.Type.width() == 0 {
		return 0, false
	}

	return v.Uint, true
}

// Uint8 returns the value of U8 attribute typ.
func (a Attrs) Uint8(typ uint16) (uint8, bool) { return uintN[uint8](a, typ, U8) }

// Uint16 returns the value of U16 attribute typ.
func (a Attrs) Uint16(typ uint16) (uint16, bool) { return uintN[uint16](a, typ, U16) }

// Uint32 returns the value of U32 attribute typ.
func (a Attrs) Uint32(typ uint16) (uint32, bool) { return uintN[uint32](a, typ, U32) }

// Uint64 returns the value of U64 attribute typ.
func (a Attrs) Uint64(typ uint16) (uint64, bool) { return uintN[uint64](a, typ, U64) }

func uintN[T uint8 | uint16 | uint32 | uint64](a Attrs, typ uint16, want Type) (T, bool) {
	v, ok := a[typ]
	if !ok || v.Type != want {
		return 0, false
	}

	return T(v.Uint), true
}

// String returns the value of String attribute typ.
func (a Attrs) String(typ uint16) (string, bool) {
	v, ok := a[typ]
	if !ok || v.Type != String {
		return "", false
	}

	return string(v.Data), true
}

// Bytes returns the raw payload of a non-integer attribute typ.
func (a Attrs) Bytes(typ uint16) ([]byte, bool) {
	v, ok := a[typ]
	if !ok || v.Type.width() != 0 {
		return nil, false
	}

	return v.Data, true
}

// Decode decodes the netlink attributes in b according to Table t.
//
// Attribute types beyond t's maximum are stored as Unspec without
// validation. When an attribute type appears more than once, the last
// occurrence wins. On error, no attributes are returned.
func Decode(b []byte, t Table) (Attrs, error) {
	attrs := make(Attrs)
	err := walk(b, func(off int, raw uint16, payload []byte) error {
		typ := raw & typeMask

		v, err := decodeValue(payload, raw, t)
		if err != nil {
			return &Error{Type: typ, Offset: off, Err: err}
		}

		attrs[typ] = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	return attrs, nil
}

// A Member is one attribute within the payload of a Nested attribute.
type Member struct {
	// The member's attribute type. Many nl80211 containers use the type
	// as an array index or as an enumeration value.
	Type uint16

	// The member's raw payload, which aliases the buffer passed to Split.
	Data []byte
}

// Split splits the payload of a Nested attribute into its members, in the
// order they appear.
func Split(b []byte) ([]Member, error) {
	var out []Member
	err := walk(b, func(_ int, raw uint16, payload []byte) error {
		out = append(out, Member{Type: raw & typeMask, Data: payload})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// walk invokes fn for each attribute in b with the offset of its header,
// its raw type field, and its payload.
func walk(b []byte, fn func(off int, raw uint16, payload []byte) error) error {
	for off := 0; off < len(b); {
		if len(b)-off < headerLen {
			return &Error{Offset: off, Err: ErrTruncatedBuffer}
		}

		l := int(nlenc.Uint16(b[off : off+2]))
		raw := nlenc.Uint16(b[off+2 : off+4])
		if l < headerLen || l > len(b)-off {
			return &Error{Type: raw & typeMask, Offset: off, Err: ErrTruncatedBuffer}
		}

		if err := fn(off, raw, b[off+headerLen:off+l]); err != nil {
			return err
		}

		// The final attribute in a buffer may omit its padding.
		off += align(l)
	}

	return nil
}

// decodeValue validates and decodes a single attribute payload.
func decodeValue(b []byte, raw uint16, t Table) (Value, error) {
	p, ok := t.Lookup(raw & typeMask)
	if !ok {
		return Value{Type: Unspec, Data: clone(b)}, nil
	}

	switch p.Type {
	case Flag:
		return Value{Type: Flag, Data: clone(b)}, nil
	case U8, U16, U32, U64:
		if len(b) != p.Type.width() {
			return Value{}, ErrAttributeLengthMismatch
		}

		return Value{Type: p.Type, Uint: decodeUint(b, raw&flagNetByteOrder != 0)}, nil
	case Nested:
		return Value{Type: Nested, Data: clone(b)}, nil
	}

	// String, Binary, Unspec.
	if (p.MinLen > 0 && len(b) < p.MinLen) || (p.MaxLen > 0 && len(b) > p.MaxLen) {
		return Value{}, ErrAttributeLengthMismatch
	}

	// A trailing NUL is stripped when present but not required.
	if p.Type == String && len(b) > 0 && b[len(b)-1] == 0x00 {
		b = b[:len(b)-1]
	}

	return Value{Type: p.Type, Data: clone(b)}, nil
}

// decodeUint decodes an unsigned integer of 1, 2, 4 or 8 bytes in native
// byte order, or in network byte order if bigEndian is set.
func decodeUint(b []byte, bigEndian bool) uint64 {
	switch len(b) {
	case 1:
		return uint64(nlenc.Uint8(b))
	case 2:
		if bigEndian {
			return uint64(binary.BigEndian.Uint16(b))
		}
		return uint64(nlenc.Uint16(b))
	case 4:
		if bigEndian {
			return uint64(binary.BigEndian.Uint32(b))
		}
		return uint64(nlenc.Uint32(b))
	default:
		if bigEndian {
			return binary.BigEndian.Uint64(b)
		}
		return nlenc.Uint64(b)
	}
}

// align rounds n up to the next 4 byte boundary.
func align(n int) int {
	return (n + headerLen - 1) &^ (headerLen - 1)
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
