package interfaces

// StringStorage resolves the 32-bit hashes embedded throughout the
// object stream back to their source strings, and supports inserting
// new strings when building a pool to write out. stringpool.Storage is
// this module's concrete implementation (§4.C).
type StringStorage interface {
	LookupASCII(hash uint32) (string, bool)
	LookupUnicode(hash uint32) (string, bool)
	Lookup(hash uint32) (string, bool)

	HashASCII(s string) (uint32, bool)
	HashUnicode(s string) (uint32, bool)

	AddASCII(s string) uint32
	AddUnicode(s string) uint32

	Write(dir string) error
}
