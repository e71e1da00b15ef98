// Package value defines the generic value tree produced by datasources and
// consumed by the structural walker.
//
// Every supported document format decomposes into three shapes: scalars,
// ordered sequences, and ordered keyed mappings. The shapes form a closed
// variant - the walker's three-way branch over them is exhaustive and no
// format can smuggle in a fourth shape.
//
// All three shapes are used through pointers. For composites the pointer
// doubles as the source identity: two references to the same *Sequence or
// *Mapping mean "the same instance in the source document", which is what
// lets the walker collapse shared substructures and terminate cycles.
// Datasources with explicit reference syntax (JSON $ref, XML id/ref)
// express a resolved reference by placing the same pointer in more than
// one slot of the tree.
package value

import "strconv"

// Value is the closed variant over scalar, sequence, and mapping.
// Only *Scalar, *Sequence, and *Mapping implement it.
type Value interface {
	value()
}

// ScalarKind tags the concrete type held by a Scalar.
type ScalarKind int

const (
	KindNull ScalarKind = iota
	KindString
	KindNumber
	KindBool
)

// String returns the kind name for debugging and error messages.
func (k ScalarKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	}
	return "unknown"
}

// Scalar is a leaf value: a string, number, boolean, or null.
// The zero value is a null scalar.
type Scalar struct {
	Kind ScalarKind
	Str  string
	Num  float64
	Bool bool
}

// Sequence is an ordered list of values, such as a JSON array or the rows
// of a CSV document. Name optionally overrides the default "array" label
// on the resulting graph node.
type Sequence struct {
	Name  string
	Items []Value
}

// Mapping is an ordered keyed collection, such as a JSON object or an XML
// element. Name optionally overrides the default "object" label on the
// resulting graph node (XML uses the element tag). Attrs carries
// format-level scalar attributes that belong on the node itself rather
// than becoming child nodes (XML element attributes); Entries are the
// ordered children.
type Mapping struct {
	Name    string
	Attrs   []Field
	Entries []Entry
}

// Entry is one ordered key/value pair of a Mapping.
type Entry struct {
	Key string
	Val Value
}

// Field is one ordered scalar attribute of a Mapping.
type Field struct {
	Key string
	Val *Scalar
}

func (*Scalar) value()   {}
func (*Sequence) value() {}
func (*Mapping) value()  {}

// Null returns a new null scalar.
func Null() *Scalar { return &Scalar{Kind: KindNull} }

// String returns a new string scalar.
func String(s string) *Scalar { return &Scalar{Kind: KindString, Str: s} }

// Number returns a new number scalar.
func Number(f float64) *Scalar { return &Scalar{Kind: KindNumber, Num: f} }

// Bool returns a new boolean scalar.
func Bool(b bool) *Scalar { return &Scalar{Kind: KindBool, Bool: b} }

// Go converts the scalar to its plain Go representation
// (nil, string, float64, or bool).
func (s *Scalar) Go() any {
	switch s.Kind {
	case KindString:
		return s.Str
	case KindNumber:
		return s.Num
	case KindBool:
		return s.Bool
	}
	return nil
}

// Text renders the scalar the way it appeared in the source document.
// Null renders as an empty string.
func (s *Scalar) Text() string {
	switch s.Kind {
	case KindString:
		return s.Str
	case KindNumber:
		return strconv.FormatFloat(s.Num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(s.Bool)
	}
	return ""
}

// Entry returns the value stored under key and whether it exists.
// Lookup is linear; mappings in practice are small.
func (m *Mapping) Entry(key string) (Value, bool) {
	for _, e := range m.Entries {
		if e.Key == key {
			return e.Val, true
		}
	}
	return nil, false
}
