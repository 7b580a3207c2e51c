// Package resolver implements the reference resolver of SPEC_FULL.md
// §4.F: loading objects by (pool, object id), and resolving pool-less
// references against an ordered layer-data search list.
package resolver

import (
	"log"

	"github.com/nexusauto/mcd2d/internal/interfaces"
	"github.com/nexusauto/mcd2d/internal/mcderr"
	"github.com/nexusauto/mcd2d/internal/objstream"
	"github.com/nexusauto/mcd2d/internal/rawobj"
)

// udsProtocolLayer and obdProtocolLayer are the fixed fallback pool
// names appended to the end of every layer search list, grounded on
// original_source/dumpMWB.py's get_protocol_layer_data_list.
const (
	udsProtocolLayer = "0.0.0@PR_UDSOnCAN.pr"
	obdProtocolLayer = "0.0.0@PR_OBDOnCAN.pr"
)

type cacheKey struct {
	poolID   string
	objectID string
}

// Resolver is the concrete interfaces.ReferenceResolver.
type Resolver struct {
	pools  func(name string) (interfaces.PoolManager, error)
	strs   interfaces.StringStorage
	reg    interfaces.Registry
	logger *log.Logger

	cache map[cacheKey]any
}

var _ interfaces.ReferenceResolver = (*Resolver)(nil)

// New builds a Resolver. pools opens (or returns an already-open)
// PoolManager by name, lazily, on first use.
func New(pools func(name string) (interfaces.PoolManager, error), strs interfaces.StringStorage, reg interfaces.Registry, logger *log.Logger) *Resolver {
	return &Resolver{pools: pools, strs: strs, reg: reg, logger: logger, cache: make(map[cacheKey]any)}
}

func (r *Resolver) LoadByID(poolID, objectID string) (any, error) {
	key := cacheKey{poolID, objectID}
	if v, ok := r.cache[key]; ok {
		return v, nil
	}

	pm, err := r.pools(poolID)
	if err != nil {
		return nil, err
	}

	hash, ok := r.strs.HashASCII(objectID)
	if !ok {
		return nil, &mcderr.ReferenceError{Kind: "object", ObjectID: objectID, PoolID: poolID}
	}

	hdr, ok := pm.Records()[hash]
	if !ok {
		return nil, &mcderr.ReferenceError{Kind: "object", ObjectID: objectID, PoolID: poolID}
	}

	blob, err := pm.ObjectData(hdr)
	if err != nil {
		return nil, err
	}

	cur := objstream.New(blob, r.strs, r.logger)
	obj, present, err := cur.Object(r.reg)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, &mcderr.FormatError{Context: poolID, Detail: "object blob's existence flag is clear at the top level"}
	}
	cur.CheckTail()

	r.cache[key] = obj
	return obj, nil
}

func (r *Resolver) LoadByReference(ref interfaces.Reference) (any, error) {
	return r.LoadByID(ref.PoolID, ref.ObjectID)
}

func (r *Resolver) LoadDOPWithoutPool(layers []any, ref interfaces.Reference) (any, error) {
	for _, l := range layers {
		ld, ok := l.(*rawobj.LayerData)
		if !ok {
			continue
		}
		if dopRef, ok := ld.DOPRefs[ref.ObjectID]; ok {
			key := cacheKey{"", ref.ObjectID}
			if v, cached := r.cache[key]; cached {
				return v, nil
			}
			obj, err := r.LoadByReference(interfaces.Reference{PoolID: dopRef.PoolID, ObjectID: dopRef.ObjectID})
			if err != nil {
				return nil, err
			}
			r.cache[key] = obj
			return obj, nil
		}
	}
	return nil, &mcderr.ReferenceError{Kind: "DOP", ObjectID: ref.ObjectID}
}

// BuildLayerSearchList assembles the ordered list LoadDOPWithoutPool
// searches: the ECU variant's own layer data, its parent layers in
// parent_layers_vector order, then the UDS protocol layer, then the
// OBD protocol layer as a last resort (§4.F).
func BuildLayerSearchList(ecuVariant *rawobj.LayerData, loadParent func(name string) (*rawobj.LayerData, error), loadProtocol func(name string) (*rawobj.LayerData, error)) ([]any, error) {
	out := []any{ecuVariant}

	for _, name := range ecuVariant.ParentLayers {
		parent, err := loadParent(name)
		if err != nil {
			return nil, err
		}
		out = append(out, parent)
	}

	if uds, err := loadProtocol(udsProtocolLayer); err == nil {
		out = append(out, uds)
	}
	if obd, err := loadProtocol(obdProtocolLayer); err == nil {
		out = append(out, obd)
	}

	return out, nil
}
