package interfaces

// ObjectStream is a forward-only typed cursor over one decompressed
// object blob (§4.D). Every read either succeeds or returns an error;
// there is no seeking, matching the record-by-record decode order the
// loaders need.
type ObjectStream interface {
	Remaining() int
	Read(n int) ([]byte, error)

	U8() (uint8, error)
	U16LE() (uint16, error)
	I16LE() (int16, error)
	U32LE() (uint32, error)
	I32LE() (int32, error)
	F32LE() (float32, error)
	F64LE() (float64, error)

	// AsciiString reads a u32 hash and resolves it against the ASCII
	// table, returning the string and the hash that named it.
	AsciiString() (string, uint32, error)
	// UnicodeString is the same resolution against the Unicode table.
	UnicodeString() (string, uint32, error)

	// NativeAsciiString reads a u32 length/hash marker; when the high
	// bit is set the low 31 bits are a raw ASCII byte count read
	// inline rather than a hash.
	NativeAsciiString() (string, error)
	// NativeUnicodeString is the same, with the raw byte count scaled
	// by 2 for UTF-16LE code units.
	NativeUnicodeString() (string, error)

	// Object reads a one-byte existence flag and, if set, dispatches
	// through the loader registry keyed by the following 16-bit tag.
	// It returns (nil, false, nil) when the flag is clear.
	Object(reg Registry) (obj any, present bool, err error)

	// CheckTail verifies the 3-byte end-of-object sentinel and logs a
	// non-fatal warning (never an error) when the remaining bytes are
	// not exactly that sentinel; an empty remainder is not logged.
	CheckTail()
}
