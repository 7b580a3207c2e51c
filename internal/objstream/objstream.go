// Package objstream implements the typed, length-checked cursor used
// to decode one object blob's fields in the exact order the loaders
// expect (§4.D).
package objstream

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"

	"github.com/nexusauto/mcd2d/internal/interfaces"
	"github.com/nexusauto/mcd2d/internal/mcderr"
)

// sentinelTail is the end-of-object marker a well-formed blob leaves
// unconsumed after a successful top-level load.
var sentinelTail = [3]byte{0x23, 0x3E, 0x00}

// Cursor is the concrete interfaces.ObjectStream over one decompressed
// object blob.
type Cursor struct {
	buf     []byte
	pos     int
	strings interfaces.StringStorage
	logger  *log.Logger
}

var _ interfaces.ObjectStream = (*Cursor)(nil)

// New wraps buf for sequential decoding, resolving any embedded string
// hashes against strings.
func New(buf []byte, strings interfaces.StringStorage, logger *log.Logger) *Cursor {
	return &Cursor{buf: buf, strings: strings, logger: logger}
}

func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

func (c *Cursor) Read(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, &mcderr.FormatError{Context: "object stream", Detail: fmt.Sprintf("read(%d) exceeds remaining %d bytes", n, c.Remaining())}
	}
	out := c.buf[c.pos : c.pos+n]
	c.pos += n
	return out, nil
}

func (c *Cursor) U8() (uint8, error) {
	b, err := c.Read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) U16LE() (uint16, error) {
	b, err := c.Read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *Cursor) I16LE() (int16, error) {
	v, err := c.U16LE()
	return int16(v), err
}

func (c *Cursor) U32LE() (uint32, error) {
	b, err := c.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *Cursor) I32LE() (int32, error) {
	v, err := c.U32LE()
	return int32(v), err
}

func (c *Cursor) F32LE() (float32, error) {
	v, err := c.U32LE()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (c *Cursor) F64LE() (float64, error) {
	b, err := c.Read(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

func (c *Cursor) AsciiString() (string, uint32, error) {
	hash, err := c.U32LE()
	if err != nil {
		return "", 0, err
	}
	s, ok := c.strings.LookupASCII(hash)
	if !ok {
		return "", hash, &mcderr.FormatError{Context: "object stream", Detail: fmt.Sprintf("unresolved ASCII string hash 0x%08x", hash)}
	}
	return s, hash, nil
}

func (c *Cursor) UnicodeString() (string, uint32, error) {
	hash, err := c.U32LE()
	if err != nil {
		return "", 0, err
	}
	s, ok := c.strings.LookupUnicode(hash)
	if !ok {
		return "", hash, &mcderr.FormatError{Context: "object stream", Detail: fmt.Sprintf("unresolved Unicode string hash 0x%08x", hash)}
	}
	return s, hash, nil
}

// highBit marks a native length/hash u32 as a raw inline length rather
// than a hash to resolve.
const highBit = uint32(1) << 31

func (c *Cursor) NativeAsciiString() (string, error) {
	marker, err := c.U32LE()
	if err != nil {
		return "", err
	}
	if marker == 0 {
		return "", nil
	}
	if marker&highBit == 0 {
		return "", &mcderr.FormatError{Context: "object stream", Detail: "native ascii string marker without high bit set (hash form unsupported)"}
	}
	n := marker &^ highBit
	raw, err := c.Read(int(n))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (c *Cursor) NativeUnicodeString() (string, error) {
	marker, err := c.U32LE()
	if err != nil {
		return "", err
	}
	if marker == 0 {
		return "", nil
	}
	if marker&highBit == 0 {
		return "", &mcderr.FormatError{Context: "object stream", Detail: "native unicode string marker without high bit set (hash form unsupported)"}
	}
	n := marker &^ highBit
	raw, err := c.Read(int(n) * 2)
	if err != nil {
		return "", err
	}
	// The inline bytes are UTF-16LE code units; decodeUTF16 combines
	// surrogate pairs into single runes, and a lone surrogate comes out
	// as U+FFFD.
	u16 := make([]uint16, n)
	for i := range u16 {
		u16[i] = binary.LittleEndian.Uint16(raw[i*2 : i*2+2])
	}
	return decodeUTF16(u16), nil
}

func decodeUTF16(u16 []uint16) string {
	runes := make([]rune, 0, len(u16))
	for i := 0; i < len(u16); i++ {
		r := rune(u16[i])
		if r >= 0xD800 && r <= 0xDBFF && i+1 < len(u16) {
			r2 := rune(u16[i+1])
			if r2 >= 0xDC00 && r2 <= 0xDFFF {
				r = ((r - 0xD800) << 10) + (r2 - 0xDC00) + 0x10000
				i++
			}
		}
		runes = append(runes, r)
	}
	return string(runes)
}

func (c *Cursor) Object(reg interfaces.Registry) (any, bool, error) {
	flag, err := c.U8()
	if err != nil {
		return nil, false, err
	}
	switch flag {
	case 0:
		return nil, false, nil
	case 1:
		tag, err := c.U16LE()
		if err != nil {
			return nil, false, err
		}
		loader, ok := reg.Loader(tag)
		if !ok {
			return nil, false, &mcderr.FormatError{Context: "object stream", Detail: fmt.Sprintf("unknown object tag 0x%04x", tag)}
		}
		obj, err := loader(c, reg)
		if err != nil {
			return nil, false, err
		}
		return obj, true, nil
	default:
		return nil, false, &mcderr.FormatError{Context: "object stream", Detail: fmt.Sprintf("bad existence flag %d (want 0 or 1)", flag)}
	}
}

func (c *Cursor) CheckTail() {
	rem := c.Remaining()
	if rem != len(sentinelTail) {
		if rem > 0 {
			c.logger.Printf("object stream: %d trailing bytes at close (want exactly the 3-byte sentinel)", rem)
		}
		return
	}
	tail, _ := c.Read(3)
	if tail[0] != sentinelTail[0] || tail[1] != sentinelTail[1] || tail[2] != sentinelTail[2] {
		c.logger.Printf("object stream: trailing bytes %x do not match the expected sentinel %x", tail, sentinelTail)
	}
}
