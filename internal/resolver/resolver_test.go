package resolver

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nexusauto/mcd2d/internal/interfaces"
	"github.com/nexusauto/mcd2d/internal/mcderr"
	"github.com/nexusauto/mcd2d/internal/rawobj"
	"github.com/nexusauto/mcd2d/internal/stringpool"
)

type stubPool struct {
	records map[uint32]interfaces.RecordHeader
	data    map[uint32][]byte
}

func (p *stubPool) Name() string                                   { return "stub" }
func (p *stubPool) Records() map[uint32]interfaces.RecordHeader    { return p.records }
func (p *stubPool) ObjectData(hdr interfaces.RecordHeader) ([]byte, error) {
	for hash, h := range p.records {
		if h == hdr {
			return p.data[hash], nil
		}
	}
	return nil, &mcderr.FormatError{Context: "stub", Detail: "unknown header"}
}
func (p *stubPool) Close() error { return nil }

func testLogger() *log.Logger { return log.New(&bytes.Buffer{}, "", 0) }

func TestLoadByIDUnresolvableObjectIDIsReferenceError(t *testing.T) {
	s := stringpool.New()
	pool := &stubPool{records: map[uint32]interfaces.RecordHeader{}, data: map[uint32][]byte{}}

	r := New(func(name string) (interfaces.PoolManager, error) { return pool, nil }, s, rawobj.NewRegistry(), testLogger())
	_, err := r.LoadByID("MyECU_ev", "NonexistentObject")
	require.Error(t, err)

	var refErr *mcderr.ReferenceError
	require.ErrorAs(t, err, &refErr)
}

func TestLoadByIDCachesAcrossCalls(t *testing.T) {
	s := stringpool.New()
	hash := s.AddASCII("SomeObject")

	// The flag/tag wrapper Object() expects (existence flag=1,
	// tag=ObjDbLimit as little-endian 0x0037), then a Limit object:
	// kind=INFINITE (byte 2), with no value bytes following.
	payload := []byte{0x01, 0x37, 0x00, 0x02}

	pool := &stubPool{
		records: map[uint32]interfaces.RecordHeader{hash: {Offset: 0, CLen: 1, DLen: 1}},
		data:    map[uint32][]byte{hash: payload},
	}

	calls := 0
	r := New(func(name string) (interfaces.PoolManager, error) {
		calls++
		return pool, nil
	}, s, rawobj.NewRegistry(), testLogger())

	obj1, err := r.LoadByID("MyECU_ev", "SomeObject")
	require.NoError(t, err)
	obj2, err := r.LoadByID("MyECU_ev", "SomeObject")
	require.NoError(t, err)
	require.Same(t, obj1, obj2)
	require.Equal(t, 1, calls) // the second LoadByID hits the cache and never reopens the pool
}

func TestLoadDOPWithoutPoolSearchesLayersInOrder(t *testing.T) {
	s := stringpool.New()
	hash := s.AddASCII("TargetDOP")
	payload := []byte{0x01, 0x37, 0x00, 0x02}

	pool := &stubPool{
		records: map[uint32]interfaces.RecordHeader{hash: {Offset: 0, CLen: 1, DLen: 1}},
		data:    map[uint32][]byte{hash: payload},
	}

	r := New(func(name string) (interfaces.PoolManager, error) { return pool, nil }, s, rawobj.NewRegistry(), testLogger())

	ecuLayer := &rawobj.LayerData{DOPRefs: map[string]rawobj.Reference{}}
	baseLayer := &rawobj.LayerData{DOPRefs: map[string]rawobj.Reference{
		"TargetDOP": {PoolID: "MyECU_bv", ObjectID: "TargetDOP"},
	}}

	obj, err := r.LoadDOPWithoutPool([]any{ecuLayer, baseLayer}, interfaces.Reference{ObjectID: "TargetDOP"})
	require.NoError(t, err)
	require.NotNil(t, obj)
}

func TestLoadDOPWithoutPoolMissEverywhereIsReferenceError(t *testing.T) {
	s := stringpool.New()
	r := New(func(name string) (interfaces.PoolManager, error) { return nil, nil }, s, rawobj.NewRegistry(), testLogger())

	ecuLayer := &rawobj.LayerData{DOPRefs: map[string]rawobj.Reference{}}
	_, err := r.LoadDOPWithoutPool([]any{ecuLayer}, interfaces.Reference{ObjectID: "Missing"})
	require.Error(t, err)

	var refErr *mcderr.ReferenceError
	require.ErrorAs(t, err, &refErr)
}
