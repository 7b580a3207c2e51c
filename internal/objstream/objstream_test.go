package objstream

import (
	"bytes"
	"encoding/binary"
	"log"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nexusauto/mcd2d/internal/interfaces"
	"github.com/nexusauto/mcd2d/internal/mcderr"
	"github.com/nexusauto/mcd2d/internal/stringpool"
)

func testLogger() *log.Logger {
	return log.New(&bytes.Buffer{}, "", 0)
}

func TestScalarReadsAdvanceCursor(t *testing.T) {
	buf := []byte{0x2A, 0x01, 0x00, 0x10, 0x00, 0x00}
	c := New(buf, stringpool.New(), testLogger())

	u8, err := c.U8()
	require.NoError(t, err)
	require.Equal(t, uint8(0x2A), u8)

	u16, err := c.U16LE()
	require.NoError(t, err)
	require.Equal(t, uint16(1), u16)

	u32, err := c.U32LE()
	require.NoError(t, err)
	require.Equal(t, uint32(0x10), u32)

	require.Equal(t, 0, c.Remaining())
}

func TestReadPastEndIsFormatError(t *testing.T) {
	c := New([]byte{0x01}, stringpool.New(), testLogger())
	_, err := c.Read(5)
	require.Error(t, err)
	var fe *mcderr.FormatError
	require.ErrorAs(t, err, &fe)
}

func TestAsciiStringResolvesHash(t *testing.T) {
	s := stringpool.New()
	hash := s.AddASCII("DiagnServi_ReadDataByIdentMeasuValue")

	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], hash)
	c := New(buf[:], s, testLogger())

	str, gotHash, err := c.AsciiString()
	require.NoError(t, err)
	require.Equal(t, hash, gotHash)
	require.Equal(t, "DiagnServi_ReadDataByIdentMeasuValue", str)
}

func TestAsciiStringUnresolvedHashIsFormatError(t *testing.T) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], 0xDEADBEEF)
	c := New(buf[:], stringpool.New(), testLogger())

	_, _, err := c.AsciiString()
	require.Error(t, err)
	var fe *mcderr.FormatError
	require.ErrorAs(t, err, &fe)
}

func TestNativeAsciiStringZeroMarkerIsNull(t *testing.T) {
	var buf [4]byte
	c := New(buf[:], stringpool.New(), testLogger())
	s, err := c.NativeAsciiString()
	require.NoError(t, err)
	require.Equal(t, "", s)
}

func TestNativeAsciiStringHighBitReadsInlineLength(t *testing.T) {
	var buf bytes.Buffer
	var marker [4]byte
	binary.LittleEndian.PutUint32(marker[:], highBit|5)
	buf.Write(marker[:])
	buf.WriteString("hello")

	c := New(buf.Bytes(), stringpool.New(), testLogger())
	s, err := c.NativeAsciiString()
	require.NoError(t, err)
	require.Equal(t, "hello", s)
}

func TestNativeAsciiStringWithoutHighBitIsFormatError(t *testing.T) {
	var marker [4]byte
	binary.LittleEndian.PutUint32(marker[:], 7)
	c := New(marker[:], stringpool.New(), testLogger())
	_, err := c.NativeAsciiString()
	require.Error(t, err)
	var fe *mcderr.FormatError
	require.ErrorAs(t, err, &fe)
}

type stubRegistry struct{}

func (stubRegistry) Loader(tag uint16) (interfaces.ObjectLoader, bool) {
	return nil, false
}

func TestObjectExistenceFlagZeroIsAbsent(t *testing.T) {
	c := New([]byte{0x00}, stringpool.New(), testLogger())
	obj, present, err := c.Object(stubRegistry{})
	require.NoError(t, err)
	require.False(t, present)
	require.Nil(t, obj)
}

func TestObjectBadExistenceFlagIsFormatError(t *testing.T) {
	c := New([]byte{0x05}, stringpool.New(), testLogger())
	_, _, err := c.Object(stubRegistry{})
	require.Error(t, err)
	var fe *mcderr.FormatError
	require.ErrorAs(t, err, &fe)
}

func TestObjectUnknownTagIsFormatError(t *testing.T) {
	buf := []byte{0x01, 0xFF, 0xFF}
	c := New(buf, stringpool.New(), testLogger())
	_, _, err := c.Object(stubRegistry{})
	require.Error(t, err)
	var fe *mcderr.FormatError
	require.ErrorAs(t, err, &fe)
}

func TestCheckTailLogsWithoutErroringOnMismatch(t *testing.T) {
	var logBuf bytes.Buffer
	c := New([]byte{0x01, 0x02, 0x03}, stringpool.New(), log.New(&logBuf, "", 0))
	require.NotPanics(t, func() { c.CheckTail() })
	require.Contains(t, logBuf.String(), "do not match the expected sentinel")
}

func TestCheckTailAcceptsExactSentinel(t *testing.T) {
	c := New([]byte{0x23, 0x3E, 0x00}, stringpool.New(), testLogger())
	c.CheckTail()
	require.Equal(t, 0, c.Remaining())
}
