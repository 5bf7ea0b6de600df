// Package attr models the cell values returned by a wide-column/document data
// source.
//
// # Overview
//
// A Value is a tagged union mirroring the source's native attribute types:
// string, number, boolean, binary, the three set variants, list, map and
// null. Values are built once per cell while a row is decoded and are
// immutable afterwards; constructors copy their inputs and accessors return
// copies.
//
// # Display Projection
//
// Display is the single text projection used for rendering and for default
// sorting:
//
//	String("dino")                      → dino
//	Number("12.50")                     → 12.50
//	Bool(true) / Bool(false)            → Yes / No
//	Null()                              → NULL
//	Binary(...) / BinarySet(...)        → <binary data> / <binary set>
//	StringSet(["a","b"])                → a,b
//	List([Number("1"), String("x")])    → 1,x
//	Map({"x": Number("1")})             → x=1
//
// # Ordering
//
// Less compares numbers numerically (both operands must parse as float64)
// and everything else by display text. Numbers are carried as text so no
// precision is lost before a comparison actually needs it.
//
// # Typed Decoding
//
// Plain and UnmarshalItems give adapters without a native record decoder a
// way to fill typed records: items are projected to plain Go values and
// decoded through encoding/json struct tags.
package attr
