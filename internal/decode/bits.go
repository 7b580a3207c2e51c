package decode

import (
	"math/big"

	"github.com/nexusauto/mcd2d/internal/types"
)

// normalizeByteOrder reverses field for little-endian numeric coded
// types into the canonical big-endian form extractBits expects. String
// and byte-field types are never reordered here: A_ASCIISTRING,
// A_UTF8STRING, and A_BYTEFIELD have no per-unit endianness, and
// A_UNICODE2STRING's byte order is handled directly by its decoder
// against dop.Endianness instead (§4.H step 3).
func normalizeByteOrder(field []byte, endianness types.Endianness, baseType types.BaseDataType) []byte {
	if endianness != types.LittleEndian {
		return field
	}
	switch baseType {
	case types.AByteField, types.AAsciiString, types.AUtf8String, types.AUnicode2String:
		return field
	default:
		out := make([]byte, len(field))
		for i, b := range field {
			out[len(field)-1-i] = b
		}
		return out
	}
}

// extractBits pulls bitLen bits out of the (already byte-order
// normalized) field, starting at bitPos counted from the
// least-significant bit of the field's last byte (§4.H step 4).
func extractBits(field []byte, bitPos, bitLen int) *big.Int {
	whole := new(big.Int).SetBytes(field)
	whole.Rsh(whole, uint(bitPos))
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bitLen)), big.NewInt(1))
	whole.And(whole, mask)
	return whole
}

// applyBitMask bitwise-ANDs value with mask, truncated to the same
// bitLen as value (§4.H step 5; only defined for STANDARD-LENGTH-TYPE).
func applyBitMask(value *big.Int, mask uint64, bitLen int) *big.Int {
	m := new(big.Int).SetUint64(mask)
	truncate := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bitLen)), big.NewInt(1))
	m.And(m, truncate)
	out := new(big.Int).And(value, m)
	return out
}

// ceilBitsToBytes returns the number of whole bytes needed to hold
// bitPos+bitLen bits.
func ceilBitsToBytes(bitPos, bitLen int) int {
	total := bitPos + bitLen
	return (total + 7) / 8
}
