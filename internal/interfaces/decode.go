package interfaces

// ResponseDecoder walks a normalized description node against a
// payload buffer, producing the VAL/STR/PAR/FLD/MUX/DTC output tree of
// §4.H.
type ResponseDecoder interface {
	// Decode extracts and decodes node against payload starting at
	// bitOffset, returning the output tree node for it.
	Decode(node any, payload []byte, bitOffset int) (any, error)

	// ByteLength computes the byte length a node occupies without
	// decoding it, recursing over complex DOPs per §4.H.
	ByteLength(node any) (int, error)
}
