package interfaces

// Reference identifies an object either fully within a named pool, or
// (when PoolID is empty) resolvable only by searching an ordered list
// of layer-data objects' reference maps (§4.F).
type Reference struct {
	PoolID   string
	ObjectID string
	// ObjectID2 is set for attributed/named references that carry a
	// second identifier alongside ObjectID.
	ObjectID2 string
}

// ReferenceResolver loads objects by reference, caching every
// successful lookup for its lifetime.
type ReferenceResolver interface {
	// LoadByID loads the object named objectID out of pool poolID,
	// hashing objectID as ASCII and fetching it through the pool's
	// manager. Results are cached permanently per (poolID, objectID).
	LoadByID(poolID, objectID string) (any, error)

	// LoadByReference delegates to LoadByID using ref's fields.
	LoadByReference(ref Reference) (any, error)

	// LoadDOPWithoutPool resolves ref.ObjectID against the first
	// matching dop_refs_map entry in layers, searched in order
	// (ECU variant, its parent layers, the UDS protocol layer, the
	// OBD protocol layer). A miss returns a *mcderr.ReferenceError.
	LoadDOPWithoutPool(layers []any, ref Reference) (any, error)
}
