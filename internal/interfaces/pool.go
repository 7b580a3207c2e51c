package interfaces

// RecordHeader is the decoded (offset, clen, dlen) triple extracted
// from a pool's raw record bytes (§4.B), independent of which of the
// 6/8/12-byte on-disk header widths produced it.
type RecordHeader struct {
	Offset uint32
	CLen   uint32
	DLen   uint32
}

// PoolManager loads one pool's (.key, .db) pair and serves decompressed
// object blobs by the string hash that names them.
type PoolManager interface {
	// Name returns the pool's base filename (no extension).
	Name() string

	// Records returns every (hash, header) pair found by walking the
	// keyfile from its first record.
	Records() map[uint32]RecordHeader

	// ObjectData seeks to hdr.Offset in the mapped .db file, reads
	// hdr.CLen bytes, zlib-inflates them, and verifies the inflated
	// length equals hdr.DLen.
	ObjectData(hdr RecordHeader) ([]byte, error)

	// Close releases the memory-mapped data file. The keyfile is not
	// held open: it is read in full and closed when the pool is opened.
	Close() error
}
