// Package stringpool implements the dual ASCII/Unicode hashed string
// tables shared by every pool in a Project: the DJB2-variant hash, its
// "+11" collision chain, and the on-disk index/data file pair, each
// optionally gzip-wrapped.
package stringpool

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/nexusauto/mcd2d/internal/mcderr"
)

// hashDJB2 computes the DJB2-variant hash used to key every string in
// both tables: h = 5381; h = ((h<<5)+h) + b per byte; h &= 0x7FFFFFFF;
// substitute 5 for a zero result.
func hashDJB2(data []byte) uint32 {
	h := uint32(5381)
	for _, b := range data {
		h = ((h << 5) + h) + uint32(b)
	}
	h &= 0x7FFFFFFF
	if h == 0 {
		h = 5
	}
	return h
}

// nextSlot advances a hash by the collision-resolution step (+11, with
// the same 0->5 substitution).
func nextSlot(h uint32) uint32 {
	h = (h + 11) & 0x7FFFFFFF
	if h == 0 {
		h = 5
	}
	return h
}

// table is one hashed string table (either the ASCII or the Unicode
// side of a Storage).
type table struct {
	byHash map[uint32]string
}

func newTable() *table {
	return &table{byHash: make(map[uint32]string)}
}

func (t *table) lookup(hash uint32) (string, bool) {
	s, ok := t.byHash[hash]
	return s, ok
}

// hashOf walks the +11 chain starting at the initial DJB2 hash of s
// until it finds the slot that already holds s, matching the insertion
// policy so hash(lookup(h)) == h always holds.
func (t *table) hashOf(s string) (uint32, bool) {
	h := hashDJB2([]byte(s))
	for {
		stored, ok := t.byHash[h]
		if !ok {
			return 0, false
		}
		if stored == s {
			return h, true
		}
		h = nextSlot(h)
	}
}

// add inserts s at the first free slot along its +11 chain and returns
// the hash it landed on.
func (t *table) add(s string) uint32 {
	h := hashDJB2([]byte(s))
	for {
		if existing, ok := t.byHash[h]; !ok {
			t.byHash[h] = s
			return h
		} else if existing == s {
			return h
		}
		h = nextSlot(h)
	}
}

// Storage is the dual ASCII (cp1252)/Unicode (UTF-16LE) hashed string
// pool attached to a Project.
type Storage struct {
	ascii   *table
	unicode *table
}

// New returns an empty Storage, useful for building a pool to write out.
func New() *Storage {
	return &Storage{ascii: newTable(), unicode: newTable()}
}

// LookupASCII resolves a hash against the ASCII table only.
func (s *Storage) LookupASCII(hash uint32) (string, bool) { return s.ascii.lookup(hash) }

// LookupUnicode resolves a hash against the Unicode table only.
func (s *Storage) LookupUnicode(hash uint32) (string, bool) { return s.unicode.lookup(hash) }

// Lookup resolves a hash against the ASCII table, then the Unicode
// table.
func (s *Storage) Lookup(hash uint32) (string, bool) {
	if v, ok := s.ascii.lookup(hash); ok {
		return v, true
	}
	return s.unicode.lookup(hash)
}

// HashASCII returns the hash under which s is already stored in the
// ASCII table.
func (s *Storage) HashASCII(str string) (uint32, bool) { return s.ascii.hashOf(str) }

// HashUnicode returns the hash under which str is already stored in the
// Unicode table.
func (s *Storage) HashUnicode(str string) (uint32, bool) { return s.unicode.hashOf(str) }

// AddASCII inserts str into the ASCII table and returns its hash.
func (s *Storage) AddASCII(str string) uint32 { return s.ascii.add(str) }

// AddUnicode inserts str into the Unicode table and returns its hash.
func (s *Storage) AddUnicode(str string) uint32 { return s.unicode.add(str) }

const (
	asciiIndexFile   = "AStringData.idx"
	asciiDataFile    = "AStringData.data"
	unicodeIndexFile = "UStringData.idx"
	unicodeDataFile  = "UStringData.data"
)

var win1252 = charmap.Windows1252

// utf16LE decodes/encodes UTF-16LE without a byte-order mark: with
// IgnoreBOM no BOM is expected on read and none is written, matching
// the wire format, which never stores one (§4.C).
var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Load reads the four string-pool files from dir, transparently
// unwrapping gzip when the unextended files are absent, as §4.C
// requires.
func Load(dir string) (*Storage, error) {
	s := New()
	if err := s.loadTable(s.ascii, dir, asciiIndexFile, asciiDataFile, 1); err != nil {
		return nil, err
	}
	if err := s.loadTable(s.unicode, dir, unicodeIndexFile, unicodeDataFile, 2); err != nil {
		return nil, err
	}
	return s, nil
}

// readMaybeGzipped reads path, or path+".gz" decompressed, when path
// itself is absent.
func readMaybeGzipped(path string) ([]byte, error) {
	if data, err := os.ReadFile(path); err == nil {
		return data, nil
	} else if !os.IsNotExist(err) {
		return nil, &mcderr.IOError{Path: path, Op: "read", Err: err}
	}
	gzPath := path + ".gz"
	f, err := os.Open(gzPath)
	if err != nil {
		return nil, &mcderr.IOError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()
	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, &mcderr.IOError{Path: gzPath, Op: "gunzip", Err: err}
	}
	defer gr.Close()
	data, err := io.ReadAll(gr)
	if err != nil {
		return nil, &mcderr.IOError{Path: gzPath, Op: "gunzip", Err: err}
	}
	return data, nil
}

func (s *Storage) loadTable(t *table, dir, idxName, dataName string, charSize int) error {
	idxPath := filepath.Join(dir, idxName)
	dataPath := filepath.Join(dir, dataName)

	idx, err := readMaybeGzipped(idxPath)
	if err != nil {
		return err
	}
	data, err := readMaybeGzipped(dataPath)
	if err != nil {
		return err
	}

	if len(idx) < 4 {
		return &mcderr.FormatError{Context: idxName, Detail: "index shorter than the record count"}
	}
	count := binary.LittleEndian.Uint32(idx[0:4])
	pos := 4
	for i := uint32(0); i < count; i++ {
		if pos+8 > len(idx) {
			return &mcderr.FormatError{Context: idxName, Detail: "truncated index record"}
		}
		dataOffset := binary.LittleEndian.Uint32(idx[pos : pos+4])
		hash := binary.LittleEndian.Uint32(idx[pos+4 : pos+8])
		pos += 8

		str, err := readEntry(data, int(dataOffset), charSize)
		if err != nil {
			return err
		}
		t.byHash[hash] = str
	}
	return nil
}

func readEntry(data []byte, offset, charSize int) (string, error) {
	if offset+4 > len(data) {
		return "", &mcderr.FormatError{Context: "string data", Detail: "entry offset out of range"}
	}
	length := binary.LittleEndian.Uint32(data[offset : offset+4])
	start := offset + 4
	end := start + int(length)*charSize
	if end > len(data) {
		return "", &mcderr.FormatError{Context: "string data", Detail: "entry payload out of range"}
	}
	raw := data[start:end]
	if charSize == 1 {
		out, err := win1252.NewDecoder().Bytes(raw)
		if err != nil {
			return "", &mcderr.FormatError{Context: "string data", Detail: fmt.Sprintf("cp1252 decode: %v", err)}
		}
		return string(out), nil
	}
	out, err := utf16LE.NewDecoder().Bytes(raw)
	if err != nil {
		return "", &mcderr.FormatError{Context: "string data", Detail: fmt.Sprintf("utf-16le decode: %v", err)}
	}
	return string(out), nil
}

// Write emits both tables to dir in the on-disk format, gzip-compressed
// at level 1, matching §4.C.
func (s *Storage) Write(dir string) error {
	if err := writeTable(s.ascii, dir, asciiIndexFile, asciiDataFile, 1); err != nil {
		return err
	}
	return writeTable(s.unicode, dir, unicodeIndexFile, unicodeDataFile, 2)
}

func writeTable(t *table, dir, idxName, dataName string, charSize int) error {
	var idx bytes.Buffer
	var data bytes.Buffer

	count := uint32(len(t.byHash))
	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], count)
	idx.Write(countBuf[:])

	for hash, str := range t.byHash {
		offset := uint32(data.Len())

		var encoded []byte
		var err error
		if charSize == 1 {
			encoded, err = win1252.NewEncoder().Bytes([]byte(str))
		} else {
			encoded, err = utf16LE.NewEncoder().Bytes([]byte(str))
		}
		if err != nil {
			return &mcderr.FormatError{Context: dataName, Detail: fmt.Sprintf("encode %q: %v", str, err)}
		}

		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(encoded))/uint32(charSize))
		data.Write(lenBuf[:])
		data.Write(encoded)

		var rec [8]byte
		binary.LittleEndian.PutUint32(rec[0:4], offset)
		binary.LittleEndian.PutUint32(rec[4:8], hash)
		idx.Write(rec[:])
	}

	if err := writeGzipFile(filepath.Join(dir, idxName+".gz"), idx.Bytes()); err != nil {
		return err
	}
	return writeGzipFile(filepath.Join(dir, dataName+".gz"), data.Bytes())
}

func writeGzipFile(path string, raw []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return &mcderr.IOError{Path: path, Op: "create", Err: err}
	}
	defer f.Close()

	gw, err := gzip.NewWriterLevel(f, gzip.BestSpeed)
	if err != nil {
		return &mcderr.IOError{Path: path, Op: "gzip init", Err: err}
	}
	if _, err := gw.Write(raw); err != nil {
		return &mcderr.IOError{Path: path, Op: "gzip write", Err: err}
	}
	return gw.Close()
}
