package attr

import (
	"bytes"
	"sort"
	"strings"
)

// Kind identifies which variant of a Value is populated.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBoolean
	KindBinary
	KindBinarySet
	KindNumberSet
	KindStringSet
	KindList
	KindMap
)

var kindNames = map[Kind]string{
	KindNull:      "NULL",
	KindString:    "S",
	KindNumber:    "N",
	KindBoolean:   "BOOL",
	KindBinary:    "B",
	KindBinarySet: "BS",
	KindNumberSet: "NS",
	KindStringSet: "SS",
	KindList:      "L",
	KindMap:       "M",
}

// String returns the data source's short type descriptor (S, N, BOOL, ...).
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "?"
}

// Value is a single cell value. Exactly one variant is populated, selected
// by Kind. The zero Value is Null.
type Value struct {
	kind    Kind
	text    string
	boolean bool
	binary  []byte
	binSet  [][]byte
	texts   []string
	list    []Value
	members map[string]Value
}

// Item is one decoded row: column name to cell value.
type Item map[string]Value

// String builds a string value.
func String(s string) Value { return Value{kind: KindString, text: s} }

// Number builds a number value. The text is kept verbatim so arbitrary
// precision survives until a numeric comparison parses it.
func Number(n string) Value { return Value{kind: KindNumber, text: n} }

// Bool builds a boolean value.
func Bool(b bool) Value { return Value{kind: KindBoolean, boolean: b} }

// Binary builds a binary value.
func Binary(b []byte) Value { return Value{kind: KindBinary, binary: bytes.Clone(b)} }

// BinarySet builds a binary set value.
func BinarySet(set [][]byte) Value {
	dup := make([][]byte, len(set))
	for i, b := range set {
		dup[i] = bytes.Clone(b)
	}
	return Value{kind: KindBinarySet, binSet: dup}
}

// NumberSet builds a number set value, preserving element order.
func NumberSet(nums []string) Value {
	return Value{kind: KindNumberSet, texts: append([]string(nil), nums...)}
}

// StringSet builds a string set value, preserving element order.
func StringSet(strs []string) Value {
	return Value{kind: KindStringSet, texts: append([]string(nil), strs...)}
}

// List builds a list value.
func List(values []Value) Value {
	return Value{kind: KindList, list: append([]Value(nil), values...)}
}

// Map builds a map value.
func Map(members map[string]Value) Value {
	dup := make(map[string]Value, len(members))
	for k, v := range members {
		dup[k] = v
	}
	return Value{kind: KindMap, members: dup}
}

// Null builds the null value.
func Null() Value { return Value{kind: KindNull} }

// Kind reports the populated variant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Text returns the payload of a String or Number value.
func (v Value) Text() (string, bool) {
	if v.kind == KindString || v.kind == KindNumber {
		return v.text, true
	}
	return "", false
}

// Boolean returns the payload of a Boolean value.
func (v Value) Boolean() (bool, bool) {
	return v.boolean, v.kind == KindBoolean
}

// Bytes returns a copy of the payload of a Binary value.
func (v Value) Bytes() ([]byte, bool) {
	if v.kind != KindBinary {
		return nil, false
	}
	return bytes.Clone(v.binary), true
}

// Elements returns a copy of the members of a StringSet or NumberSet value.
func (v Value) Elements() ([]string, bool) {
	if v.kind != KindStringSet && v.kind != KindNumberSet {
		return nil, false
	}
	return append([]string(nil), v.texts...), true
}

// Values returns a copy of the members of a List value.
func (v Value) Values() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return append([]Value(nil), v.list...), true
}

// Members returns a copy of the members of a Map value.
func (v Value) Members() (map[string]Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	dup := make(map[string]Value, len(v.members))
	for k, m := range v.members {
		dup[k] = m
	}
	return dup, true
}

// Display projects v to the text shown in a cell. Binary payloads are never
// rendered literally. Map members are emitted in key order.
func Display(v Value) string {
	switch v.kind {
	case KindString, KindNumber:
		return v.text
	case KindBoolean:
		if v.boolean {
			return "Yes"
		}
		return "No"
	case KindBinary:
		return "<binary data>"
	case KindBinarySet:
		return "<binary set>"
	case KindNumberSet, KindStringSet:
		return strings.Join(v.texts, ",")
	case KindList:
		parts := make([]string, len(v.list))
		for i, child := range v.list {
			parts[i] = Display(child)
		}
		return strings.Join(parts, ",")
	case KindMap:
		keys := make([]string, 0, len(v.members))
		for k := range v.members {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + "=" + Display(v.members[k])
		}
		return strings.Join(parts, ",")
	default:
		return "NULL"
	}
}

// String implements fmt.Stringer using the display projection.
func (v Value) String() string { return Display(v) }
