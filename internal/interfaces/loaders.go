package interfaces

// ObjectLoader decodes one tagged object's fields from stream, given
// the registry so it can recursively load any embedded objects it
// owns. It returns a member of the rawobj sum type as `any`; callers
// type-switch on the concrete pointer type rather than a string
// marker (§4.E, §9).
type ObjectLoader func(stream ObjectStream, reg Registry) (any, error)

// Registry maps a 16-bit object-type tag to the loader responsible for
// it. An unrecognized tag is a load error.
type Registry interface {
	Loader(tag uint16) (ObjectLoader, bool)
}
