package pool

import (
	"bytes"
	"compress/zlib"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nexusauto/mcd2d/internal/keyfile"
	"github.com/nexusauto/mcd2d/internal/mcderr"
	"github.com/nexusauto/mcd2d/internal/types"
)

func TestParseRecordSixByteForm(t *testing.T) {
	hdr, err := ParseRecord([]byte{0x00, 0x10, 0x00, 0x00, 0x10, 0x00})
	require.NoError(t, err)
	require.Equal(t, uint32(0x1000), hdr.Offset)
	require.Equal(t, uint32(0x10), hdr.CLen)
	require.Equal(t, uint32(0x10), hdr.DLen)
}

func TestParseRecordEightAndTwelveByteForms(t *testing.T) {
	hdr8, err := ParseRecord([]byte{0x00, 0x10, 0x00, 0x00, 0x20, 0x00, 0x20, 0x00})
	require.NoError(t, err)
	require.Equal(t, uint32(0x1000), hdr8.Offset)
	require.Equal(t, uint32(0x20), hdr8.CLen)
	require.Equal(t, uint32(0x20), hdr8.DLen)

	hdr12, err := ParseRecord([]byte{
		0x00, 0x10, 0x00, 0x00,
		0x30, 0x00, 0x00, 0x00,
		0x30, 0x00, 0x00, 0x00,
	})
	require.NoError(t, err)
	require.Equal(t, uint32(0x1000), hdr12.Offset)
	require.Equal(t, uint32(0x30), hdr12.CLen)
	require.Equal(t, uint32(0x30), hdr12.DLen)
}

func TestParseRecordUnknownLengthIsFormatError(t *testing.T) {
	_, err := ParseRecord([]byte{0x01, 0x02, 0x03})
	require.Error(t, err)
	var fe *mcderr.FormatError
	require.ErrorAs(t, err, &fe)
}

func TestSuffixOfDeducesPoolKind(t *testing.T) {
	require.Equal(t, "ev", suffixOf("MyECU_ev.key"))
	require.Equal(t, types.PoolECUVariant, types.PoolKindFromSuffix(suffixOf("MyECU_ev.key")))
	require.Equal(t, "bv", suffixOf("MyECU_bv"))
}

// buildFixture writes a .key/.db pair under dir/base with one record
// whose payload is the zlib-compressed form of want.
func buildFixture(t *testing.T, dir, base string, hash uint32, want []byte) {
	t.Helper()

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	_, err := zw.Write(want)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	header := []byte{0x00, 0x00, 0x00, 0x00, byte(compressed.Len()), byte(len(want))}
	header[0] = 0 // offset 0

	keyPath := filepath.Join(dir, base+".key")
	kf, err := os.Create(keyPath)
	require.NoError(t, err)
	require.NoError(t, keyfile.WriteRecord(kf, hash, header))
	require.NoError(t, kf.Close())

	dbPath := filepath.Join(dir, base+".db")
	require.NoError(t, os.WriteFile(dbPath, compressed.Bytes(), 0o644))
}

func TestOpenRecordsAndObjectDataRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := []byte("a loaded object blob's decompressed bytes")
	buildFixture(t, dir, "MyECU_ev", 0xABCDEF01, want)

	m, err := Open(keyfile.NewDriver(), filepath.Join(dir, "MyECU_ev"))
	require.NoError(t, err)
	defer m.Close()

	require.Equal(t, types.PoolECUVariant, m.Kind())

	records := m.Records()
	hdr, ok := records[0xABCDEF01]
	require.True(t, ok)

	got, err := m.ObjectData(hdr)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestObjectDataLengthMismatchIsFormatError(t *testing.T) {
	dir := t.TempDir()
	want := []byte("payload")
	buildFixture(t, dir, "MyECU_ev", 0x1, want)

	m, err := Open(keyfile.NewDriver(), filepath.Join(dir, "MyECU_ev"))
	require.NoError(t, err)
	defer m.Close()

	hdr := m.Records()[0x1]
	hdr.DLen = uint32(len(want)) + 1
	_, err = m.ObjectData(hdr)
	require.Error(t, err)
	var fe *mcderr.FormatError
	require.ErrorAs(t, err, &fe)
}
