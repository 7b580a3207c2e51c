// Package project implements the project façade of SPEC_FULL.md §10:
// wiring the keyfile driver, pool manager, string storage, reference
// resolver, and description builder together over one project
// directory, and exposing the DescribeDID entry point a caller
// actually wants (a DID number, not a pool/object id pair).
package project

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/nexusauto/mcd2d/internal/description"
	"github.com/nexusauto/mcd2d/internal/interfaces"
	"github.com/nexusauto/mcd2d/internal/keyfile"
	"github.com/nexusauto/mcd2d/internal/mcderr"
	"github.com/nexusauto/mcd2d/internal/pool"
	"github.com/nexusauto/mcd2d/internal/rawobj"
	"github.com/nexusauto/mcd2d/internal/resolver"
	"github.com/nexusauto/mcd2d/internal/stringpool"
)

// Project is the concrete interfaces.Project for one project directory
// on disk: a string pool plus a set of named .key/.db pools, all
// sharing one reference resolver and description builder.
type Project struct {
	dir    string
	driver interfaces.KeyfileDriver
	strs   *stringpool.Storage
	reg    interfaces.Registry
	res    *resolver.Resolver
	build  *description.Builder
	logger *log.Logger

	mu    sync.Mutex
	pools map[string]*pool.Manager
}

var _ interfaces.Project = (*Project)(nil)

// Open loads dir's string pool and wires a Project over it. Individual
// .key/.db pools are opened lazily, on first Pool or DescribeDID call,
// not here.
func Open(dir string, logger *log.Logger) (*Project, error) {
	if logger == nil {
		logger = log.New(os.Stderr, "mcd2d: ", log.LstdFlags)
	}

	strs, err := stringpool.Load(dir)
	if err != nil {
		return nil, err
	}

	p := &Project{
		dir:    dir,
		driver: keyfile.NewDriver(),
		strs:   strs,
		reg:    rawobj.NewRegistry(),
		build:  description.New(),
		logger: logger,
		pools:  make(map[string]*pool.Manager),
	}
	p.res = resolver.New(p.poolByName, strs, p.reg, logger)
	return p, nil
}

// poolByName is the lazy-open callback handed to resolver.New: it
// breaks the otherwise circular Project<->Resolver construction by
// letting the resolver ask for pools without the Project needing a
// resolver reference up front.
func (p *Project) poolByName(name string) (interfaces.PoolManager, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if m, ok := p.pools[name]; ok {
		return m, nil
	}
	m, err := pool.Open(p.driver, filepath.Join(p.dir, name))
	if err != nil {
		return nil, err
	}
	p.pools[name] = m
	return m, nil
}

func (p *Project) Pool(name string) (interfaces.PoolManager, error) {
	return p.poolByName(name)
}

func (p *Project) Strings() interfaces.StringStorage { return p.strs }

func (p *Project) Resolver() interfaces.ReferenceResolver { return p.res }

// didKey is the naming convention this façade uses to look up a
// numeric DID inside an ECU variant layer's DOPRefs map. The original
// dumpMWB.py tool correlates a DID to its describing DOP through a
// much deeper measurement-write-block table (did_table,
// mwb_long_name_to_did_map); DescribeDID deliberately only covers the
// direct DOPRefs-by-name path, which is the part of that pipeline a
// façade at this layer can own without reimplementing MWB semantics.
func didKey(did uint16) string {
	return fmt.Sprintf("DID_%04X", did)
}

// DescribeDID loads ecuVariant's layer data, builds its layer search
// list (itself, its parent layers, then the UDS and OBD protocol
// layers), and resolves did's DOP reference against that list before
// normalizing it with the description builder (§4.F, §4.G).
//
// ecuVariant, and every parent-layer or protocol-layer pool name
// BuildLayerSearchList walks, names a pool whose top-level LayerData
// object is itself filed under that same name — every pool this
// façade opens holds exactly one layer, named after its pool.
func (p *Project) DescribeDID(ecuVariant string, did uint16) (any, error) {
	layer, err := p.loadLayer(ecuVariant)
	if err != nil {
		return nil, err
	}

	layers, err := resolver.BuildLayerSearchList(layer, p.loadLayer, p.loadLayer)
	if err != nil {
		return nil, err
	}

	ref := interfaces.Reference{ObjectID: didKey(did)}
	rawDOP, err := p.res.LoadDOPWithoutPool(layers, ref)
	if err != nil {
		return nil, err
	}

	return p.build.Build(rawDOP, p.res)
}

// loadLayer adapts the resolver's generic LoadByID (which returns any)
// to the *rawobj.LayerData signature resolver.BuildLayerSearchList
// requires of its parent-layer and protocol-layer callbacks.
func (p *Project) loadLayer(name string) (*rawobj.LayerData, error) {
	raw, err := p.res.LoadByID(name, name)
	if err != nil {
		return nil, err
	}
	layer, ok := raw.(*rawobj.LayerData)
	if !ok {
		return nil, &mcderr.FormatError{Context: name, Detail: "object is not layer data"}
	}
	return layer, nil
}

// Close releases every pool opened over this project's lifetime,
// returning the first error encountered but attempting every close.
func (p *Project) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var first error
	for name, m := range p.pools {
		if err := m.Close(); err != nil && first == nil {
			first = err
		}
		delete(p.pools, name)
	}
	return first
}
