// Package decode implements the response decoder of SPEC_FULL.md §4.H:
// byte-length computation, bit-level DOP value extraction, constraint
// checking, physical value derivation for every COMPU-METHOD category,
// and complex-node decoding into the output tree.
package decode

// Val is a leaf decoded value: the internal value, physical value, and
// its display-formatted string.
type Val struct {
	Internal any
	Physical any
	Display  string
}

// Par is a named parameter in the output tree; RESERVED parameters are
// dropped by the builder and never appear here (§4.H).
type Par struct {
	Name     string
	Value    *Val
	Children []any
}

// Str is a named structure's decoded children.
type Str struct {
	Name     string
	Children []any
}

// Fld is a decoded field (STATIC/DYNAMIC-LENGTH/DYNAMIC-ENDMARKER/
// END-OF-PDU) and its emitted children.
type Fld struct {
	Children []any
}

// MuxOut is the selected case of a decoded multiplexer.
type MuxOut struct {
	CaseName string
	Value    any
}

// DtcOut is one formatted "<text>(<level>): <description>" fault.
type DtcOut struct {
	Text string
}
