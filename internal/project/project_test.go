package project

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nexusauto/mcd2d/internal/description"
	"github.com/nexusauto/mcd2d/internal/keyfile"
	"github.com/nexusauto/mcd2d/internal/mcderr"
	"github.com/nexusauto/mcd2d/internal/stringpool"
)

func testLogger() *log.Logger { return log.New(&bytes.Buffer{}, "", 0) }

func le16(v uint16) []byte { b := make([]byte, 2); binary.LittleEndian.PutUint16(b, v); return b }
func le32(v uint32) []byte { b := make([]byte, 4); binary.LittleEndian.PutUint32(b, v); return b }

// uint8DOPObject builds the on-disk bytes of one A_UINT32, 8-bit,
// CompuIdentical DOP_SIMPLE_BASE object: a STANDARD-LENGTH-TYPE
// DiagCodedType + PhysicalType + CompuMethod, none of them carrying
// optional fields, matching loadDOPSimpleBase's field order exactly.
func uint8DOPObject() []byte {
	var b bytes.Buffer
	b.Write([]byte{0x01, 0x23, 0x00}) // flag=1, tag=DB_DIAG_CODED_TYPE (0x0023)
	b.Write([]byte{0x00, 0x00, 0x00, 0x00})
	b.Write(le16(8))   // bit_length
	b.WriteByte(0x00)  // has_bit_mask=false
	b.Write([]byte{0x01, 0x3C, 0x00}) // flag=1, tag=DB_PHYSICAL_TYPE (0x003C)
	b.WriteByte(0x00)  // base_data_type=A_UINT32
	b.WriteByte(0x0A)  // display_radix=DECIMAL
	b.WriteByte(0x00)  // has_precision=false
	b.Write([]byte{0x01, 0x0A, 0x00}) // flag=1, tag=DB_COMPU_METHOD (0x000A)
	b.WriteByte(0x00)  // category=IDENTICAL
	b.WriteByte(0x00)  // has internal_to_phys
	b.WriteByte(0x00)  // has phys_to_internal
	b.WriteByte(0x00)  // has default_value
	b.WriteByte(0x00)  // has unit ref
	b.WriteByte(0x00)  // has internal constraint range
	b.WriteByte(0x00)  // has physical constraint range

	out := append([]byte{0x01, 0x2C, 0x00}, b.Bytes()...) // flag=1, tag=DB_DOP_SIMPLE_BASE (0x002C)
	return out
}

// layerDataObject builds one LAYER_DATA object with a single DOP_REFS
// entry mapping didKey to a reference within the same pool.
func layerDataObject(s *stringpool.Storage, nameHash, stackHash uint32, didName, dopObjectName, poolName string) []byte {
	var b bytes.Buffer
	b.Write([]byte{0x01, 0x31, 0x00}) // flag=1, tag=DB_LAYER_DATA (0x0031)
	b.Write(le32(nameHash))
	b.Write(le32(stackHash))
	b.Write(le16(0)) // location
	b.Write(le16(0)) // parent_layers count

	didHash := s.AddASCII(didName)
	poolHash := s.AddASCII(poolName)
	dopHash := s.AddASCII(dopObjectName)

	b.Write(le16(1)) // dop_refs count
	b.Write(le32(didHash))
	b.Write(le32(poolHash))
	b.Write(le32(dopHash))

	for i := 0; i < 6; i++ { // com_param/diag_com_obj/ecu_state/sub_component/additional_aud/special_data, all empty
		b.Write(le16(0))
	}
	return b.Bytes()
}

// writePoolFixture writes base.key/base.db under dir holding each
// (hash, blob) record, following pool_test.go's buildFixture pattern
// but for multiple records per pool.
func writePoolFixture(t *testing.T, dir, base string, records map[uint32][]byte) {
	t.Helper()

	var dbBuf bytes.Buffer
	kf, err := os.Create(filepath.Join(dir, base+".key"))
	require.NoError(t, err)
	defer kf.Close()

	for hash, blob := range records {
		var compressed bytes.Buffer
		zw := zlib.NewWriter(&compressed)
		_, err := zw.Write(blob)
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		header := []byte{0, 0, 0, 0, byte(compressed.Len()), byte(len(blob))}
		binary.LittleEndian.PutUint32(header[0:4], uint32(dbBuf.Len()))
		require.NoError(t, keyfile.WriteRecord(kf, hash, header))
		dbBuf.Write(compressed.Bytes())
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, base+".db"), dbBuf.Bytes(), 0o644))
}

// buildProjectFixture writes a project directory containing one ECU
// variant pool ("Demo_ev") holding both its own layer data (filed
// under its own pool name, per this façade's layer-naming convention)
// and the DOP the layer's DID entry points at.
func buildProjectFixture(t *testing.T) (dir string, did uint16, didName string) {
	t.Helper()
	dir = t.TempDir()

	s := stringpool.New()
	const poolName = "Demo_ev"
	const dopName = "SomeDOP"
	did = 0x1234
	didName = "DID_1234"

	nameHash := s.AddASCII(poolName)
	stackHash := s.AddASCII("UDSOnCAN")
	layerBlob := layerDataObject(s, nameHash, stackHash, didName, dopName, poolName)

	require.NoError(t, s.Write(dir))

	poolHash, ok := s.HashASCII(poolName)
	require.True(t, ok)
	dopHash, ok := s.HashASCII(dopName)
	require.True(t, ok)

	writePoolFixture(t, dir, poolName, map[uint32][]byte{
		poolHash: layerBlob,
		dopHash:  uint8DOPObject(),
	})

	return dir, did, didName
}

func TestOpenLoadsProjectStringPool(t *testing.T) {
	dir, _, _ := buildProjectFixture(t)

	p, err := Open(dir, testLogger())
	require.NoError(t, err)
	defer p.Close()

	require.NotNil(t, p.Strings())
}

func TestPoolOpensLazilyAndCaches(t *testing.T) {
	dir, _, _ := buildProjectFixture(t)

	p, err := Open(dir, testLogger())
	require.NoError(t, err)
	defer p.Close()

	pm1, err := p.Pool("Demo_ev")
	require.NoError(t, err)
	pm2, err := p.Pool("Demo_ev")
	require.NoError(t, err)
	require.Same(t, pm1, pm2)
}

func TestDescribeDIDResolvesDOPThroughLayerRefs(t *testing.T) {
	dir, did, _ := buildProjectFixture(t)

	p, err := Open(dir, testLogger())
	require.NoError(t, err)
	defer p.Close()

	node, err := p.DescribeDID("Demo_ev", did)
	require.NoError(t, err)

	dop, ok := node.(*description.DOP)
	require.True(t, ok)
	require.Equal(t, 8, dop.DiagCodedType.BitLength)
}

func TestDescribeDIDUnknownDIDIsReferenceError(t *testing.T) {
	dir, _, _ := buildProjectFixture(t)

	p, err := Open(dir, testLogger())
	require.NoError(t, err)
	defer p.Close()

	_, err = p.DescribeDID("Demo_ev", 0xFFFF)
	require.Error(t, err)
	var refErr *mcderr.ReferenceError
	require.ErrorAs(t, err, &refErr)
}

func TestCloseReleasesOpenedPools(t *testing.T) {
	dir, _, _ := buildProjectFixture(t)

	p, err := Open(dir, testLogger())
	require.NoError(t, err)

	_, err = p.Pool("Demo_ev")
	require.NoError(t, err)

	require.NoError(t, p.Close())
	require.Empty(t, p.pools)
}
