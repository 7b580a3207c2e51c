package interfaces

// Project is the façade wiring a project directory's pools, string
// storage, resolver, description builder, and decoder together, and
// owning the per-project caches the resolver relies on.
type Project interface {
	// Pool opens (or returns the already-open) PoolManager for the
	// pool named name within this project.
	Pool(name string) (PoolManager, error)

	// Strings returns the project's shared StringStorage.
	Strings() StringStorage

	// Resolver returns the project's ReferenceResolver.
	Resolver() ReferenceResolver

	// DescribeDID builds the normalized description for the
	// measurement or parameter identified by did within ecuVariant.
	DescribeDID(ecuVariant string, did uint16) (any, error)

	// Close releases every pool and keyfile handle the project opened.
	Close() error
}
