package keyfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nexusauto/mcd2d/internal/mcderr"
)

func writeFixture(t *testing.T, records [][2]any) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "Project_ev.key")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	for _, r := range records {
		key := r[0].(uint32)
		data := r[1].([]byte)
		require.NoError(t, WriteRecord(f, key, data))
	}
	return path
}

func TestOpenMissingFileIsIOError(t *testing.T) {
	d := NewDriver()
	_, err := d.Open(filepath.Join(t.TempDir(), "missing.key"))
	require.Error(t, err)
	var ioErr *mcderr.IOError
	require.ErrorAs(t, err, &ioErr)
}

func TestFirstNextEnumeratesInWriteOrder(t *testing.T) {
	path := writeFixture(t, [][2]any{
		{uint32(1), []byte("one")},
		{uint32(2), []byte("two")},
		{uint32(3), []byte("three")},
	})

	d := NewDriver()
	h, err := d.Open(path)
	require.NoError(t, err)
	defer d.Close(h)

	var got [][]byte
	key, ok, err := d.First(h)
	require.NoError(t, err)
	for ok {
		data, err := d.Read(h)
		require.NoError(t, err)
		got = append(got, append(append([]byte{}, key...), data...))
		key, ok, err = d.Next(h)
		require.NoError(t, err)
	}

	require.Len(t, got, 3)
	require.True(t, bytes.Contains(got[0], []byte("one")))
	require.True(t, bytes.Contains(got[1], []byte("two")))
	require.True(t, bytes.Contains(got[2], []byte("three")))
}

func TestFirstOnEmptyKeyfileReturnsNotOK(t *testing.T) {
	path := writeFixture(t, nil)

	d := NewDriver()
	h, err := d.Open(path)
	require.NoError(t, err)
	defer d.Close(h)

	_, ok, err := d.First(h)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReadBeforeFirstIsFormatError(t *testing.T) {
	path := writeFixture(t, [][2]any{{uint32(9), []byte("x")}})

	d := NewDriver()
	h, err := d.Open(path)
	require.NoError(t, err)
	defer d.Close(h)

	_, err = d.Read(h)
	require.Error(t, err)
	var fe *mcderr.FormatError
	require.ErrorAs(t, err, &fe)
}

func TestFirstRewindsCursor(t *testing.T) {
	path := writeFixture(t, [][2]any{
		{uint32(1), []byte("a")},
		{uint32(2), []byte("b")},
	})

	d := NewDriver()
	h, err := d.Open(path)
	require.NoError(t, err)
	defer d.Close(h)

	_, ok, err := d.First(h)
	require.NoError(t, err)
	require.True(t, ok)
	_, ok, err = d.Next(h)
	require.NoError(t, err)
	require.True(t, ok)
	_, ok, err = d.Next(h)
	require.NoError(t, err)
	require.False(t, ok)

	key, ok, err := d.First(h)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint32(1), leU32(key))
}

func leU32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
