// Package pool implements the per-pool record index and object-blob
// access described in SPEC_FULL.md §4.B: walking a keyfile into a
// hash-to-record-header map, then serving decompressed object bytes
// out of the paired, memory-mapped .db file.
package pool

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/edsrzf/mmap-go"

	"github.com/nexusauto/mcd2d/internal/interfaces"
	"github.com/nexusauto/mcd2d/internal/mcderr"
	"github.com/nexusauto/mcd2d/internal/types"
)

// Manager is the concrete interfaces.PoolManager for one (.key, .db)
// pair on disk.
type Manager struct {
	name    string
	kind    types.PoolKind
	driver  interfaces.KeyfileDriver
	records map[uint32]interfaces.RecordHeader

	dbFile *os.File
	data   mmap.MMap
}

var _ interfaces.PoolManager = (*Manager)(nil)

// Open loads pool basePath's keyfile (basePath+".key") into a record
// index and memory-maps its data file (basePath+".db") for later
// ObjectData calls. The keyfile is walked to completion and closed
// immediately; only the data-file mapping stays open.
func Open(driver interfaces.KeyfileDriver, basePath string) (*Manager, error) {
	name := filepath.Base(basePath)
	kind := types.PoolKindFromSuffix(suffixOf(name))

	records, err := buildIndex(driver, basePath+".key")
	if err != nil {
		return nil, err
	}

	dbPath := basePath + ".db"
	f, err := os.Open(dbPath)
	if err != nil {
		return nil, &mcderr.IOError{Path: dbPath, Op: "open", Err: err}
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, &mcderr.IOError{Path: dbPath, Op: "mmap", Err: err}
	}

	return &Manager{
		name:    name,
		kind:    kind,
		driver:  driver,
		records: records,
		dbFile:  f,
		data:    data,
	}, nil
}

// suffixOf extracts the two-letter pool-kind suffix preceding the
// extension in a filename like "MyECU_ev" (suffix "ev").
func suffixOf(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if idx := strings.LastIndexByte(name, '_'); idx >= 0 && len(name)-idx-1 == 2 {
		return name[idx+1:]
	}
	return ""
}

func buildIndex(driver interfaces.KeyfileDriver, keyPath string) (map[uint32]interfaces.RecordHeader, error) {
	h, err := driver.Open(keyPath)
	if err != nil {
		return nil, err
	}
	defer driver.Close(h)

	out := make(map[uint32]interfaces.RecordHeader)

	key, ok, err := driver.First(h)
	for ; ok; key, ok, err = driver.Next(h) {
		if err != nil {
			return nil, err
		}
		hash, err := keyToHash(key)
		if err != nil {
			return nil, err
		}
		raw, err := driver.Read(h)
		if err != nil {
			return nil, err
		}
		hdr, err := ParseRecord(raw)
		if err != nil {
			return nil, err
		}
		if _, dup := out[hash]; dup {
			return nil, &mcderr.FormatError{Context: keyPath, Detail: fmt.Sprintf("duplicate key 0x%08x", hash)}
		}
		out[hash] = hdr
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func keyToHash(key []byte) (uint32, error) {
	if len(key) != 4 {
		return 0, &mcderr.FormatError{Context: "keyfile", Detail: fmt.Sprintf("key length %d != 4", len(key))}
	}
	return uint32(key[0]) | uint32(key[1])<<8 | uint32(key[2])<<16 | uint32(key[3])<<24, nil
}

// ParseRecord dispatches on len(raw) ∈ {6, 8, 12} to decode the
// (offset, clen, dlen) triple, matching the three on-disk record
// header widths (§4.B).
func ParseRecord(raw []byte) (interfaces.RecordHeader, error) {
	switch len(raw) {
	case 6:
		return interfaces.RecordHeader{
			Offset: le32(raw[0:4]),
			CLen:   uint32(raw[4]),
			DLen:   uint32(raw[5]),
		}, nil
	case 8:
		return interfaces.RecordHeader{
			Offset: le32(raw[0:4]),
			CLen:   uint32(le16(raw[4:6])),
			DLen:   uint32(le16(raw[6:8])),
		}, nil
	case 12:
		return interfaces.RecordHeader{
			Offset: le32(raw[0:4]),
			CLen:   le32(raw[4:8]),
			DLen:   le32(raw[8:12]),
		}, nil
	default:
		return interfaces.RecordHeader{}, &mcderr.FormatError{
			Context: "pool record",
			Detail:  fmt.Sprintf("unknown record length %d (want 6, 8, or 12)", len(raw)),
		}
	}
}

func le16(b []byte) uint16 { return uint16(b[0]) | uint16(b[1])<<8 }
func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func (m *Manager) Name() string { return m.name }

// Kind reports the pool's deduced PoolKind, for callers that need to
// branch on pool category (e.g. the layer-data search list in §4.F).
func (m *Manager) Kind() types.PoolKind { return m.kind }

func (m *Manager) Records() map[uint32]interfaces.RecordHeader { return m.records }

func (m *Manager) ObjectData(hdr interfaces.RecordHeader) ([]byte, error) {
	end := uint64(hdr.Offset) + uint64(hdr.CLen)
	if end > uint64(len(m.data)) {
		return nil, &mcderr.FormatError{
			Context: m.name,
			Detail:  fmt.Sprintf("record at offset %d, clen %d exceeds mapped data file of size %d", hdr.Offset, hdr.CLen, len(m.data)),
		}
	}
	compressed := m.data[hdr.Offset:end]

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, &mcderr.IOError{Path: m.name, Op: "zlib init", Err: err}
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, &mcderr.IOError{Path: m.name, Op: "zlib inflate", Err: err}
	}
	if uint32(len(out)) != hdr.DLen {
		return nil, &mcderr.FormatError{
			Context: m.name,
			Detail:  fmt.Sprintf("inflated length %d != declared dlen %d", len(out), hdr.DLen),
		}
	}
	return out, nil
}

func (m *Manager) Close() error {
	if err := m.data.Unmap(); err != nil {
		return &mcderr.IOError{Path: m.name, Op: "munmap", Err: err}
	}
	return m.dbFile.Close()
}
