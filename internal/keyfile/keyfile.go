// Package keyfile provides a pure-Go KeyfileDriver implementing the
// open/first/next/read contract of SPEC_FULL.md §4.A. The proprietary
// native driver's on-disk b-tree format is undocumented and out of
// scope (SPEC_FULL.md §6); this package instead defines a simple flat,
// sequential key-indexed format so the module is runnable end to end
// and so tests can exercise the pool manager without cgo.
//
// On-disk format: a sequence of records, each
// [4-byte LE key][4-byte LE data length][data], read back in the order
// written. There is no trailing index; First/Next walk the file
// directly, matching the "enumerate from the first record" access
// pattern the pool manager needs (SPEC_FULL.md §4.B).
package keyfile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/nexusauto/mcd2d/internal/interfaces"
	"github.com/nexusauto/mcd2d/internal/mcderr"
)

// KeyLength is the fixed key width this system requires; any other
// length observed on disk is a fatal FormatError (SPEC_FULL.md §4.A).
const KeyLength = 4

type handle struct {
	path string
	f    *os.File
	r    *bufio.Reader
	cur  []byte // data payload for the record the cursor currently addresses
}

// Driver is the pure-Go reference implementation of interfaces.KeyfileDriver.
type Driver struct{}

var _ interfaces.KeyfileDriver = (*Driver)(nil)

// NewDriver returns a ready-to-use pure-Go KeyfileDriver.
func NewDriver() *Driver { return &Driver{} }

func (d *Driver) Open(path string) (interfaces.KeyfileHandle, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &mcderr.IOError{Path: path, Op: "open", Err: err}
		}
		return nil, &mcderr.IOError{Path: path, Op: "open", Err: err}
	}
	return &handle{path: path, f: f, r: bufio.NewReader(f)}, nil
}

func (d *Driver) First(h interfaces.KeyfileHandle) ([]byte, bool, error) {
	hd := h.(*handle)
	if _, err := hd.f.Seek(0, io.SeekStart); err != nil {
		return nil, false, &mcderr.IOError{Path: hd.path, Op: "seek", Err: err}
	}
	hd.r = bufio.NewReader(hd.f)
	return hd.readRecord()
}

func (d *Driver) Next(h interfaces.KeyfileHandle) ([]byte, bool, error) {
	hd := h.(*handle)
	return hd.readRecord()
}

func (hd *handle) readRecord() ([]byte, bool, error) {
	var keyBuf [KeyLength]byte
	if _, err := io.ReadFull(hd.r, keyBuf[:]); err != nil {
		if err == io.EOF {
			return nil, false, nil
		}
		return nil, false, &mcderr.IOError{Path: hd.path, Op: "read key", Err: err}
	}

	var lenBuf [4]byte
	if _, err := io.ReadFull(hd.r, lenBuf[:]); err != nil {
		return nil, false, &mcderr.FormatError{Context: hd.path, Detail: "truncated record length"}
	}
	n := binary.LittleEndian.Uint32(lenBuf[:])

	data := make([]byte, n)
	if _, err := io.ReadFull(hd.r, data); err != nil {
		return nil, false, &mcderr.FormatError{Context: hd.path, Detail: fmt.Sprintf("truncated record payload (wanted %d bytes)", n)}
	}

	hd.cur = data
	key := make([]byte, KeyLength)
	copy(key, keyBuf[:])
	return key, true, nil
}

func (d *Driver) Read(h interfaces.KeyfileHandle) ([]byte, error) {
	hd := h.(*handle)
	if hd.cur == nil {
		return nil, &mcderr.FormatError{Context: hd.path, Detail: "read called before a successful first/next"}
	}
	return hd.cur, nil
}

func (d *Driver) Close(h interfaces.KeyfileHandle) error {
	hd := h.(*handle)
	return hd.f.Close()
}

// WriteRecord appends one (key, data) record to a flat keyfile being
// built with this package's format; used by tests to construct
// fixtures without depending on the real native format.
func WriteRecord(w io.Writer, key uint32, data []byte) error {
	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:4], key)
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(data)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}
