package decode

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/nexusauto/mcd2d/internal/description"
	"github.com/nexusauto/mcd2d/internal/interfaces"
	"github.com/nexusauto/mcd2d/internal/mcderr"
	"github.com/nexusauto/mcd2d/internal/types"
)

var win1252 = charmap.Windows1252
var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// Decoder is the concrete interfaces.ResponseDecoder.
type Decoder struct{}

var _ interfaces.ResponseDecoder = (*Decoder)(nil)

// New returns a ready-to-use Decoder.
func New() *Decoder { return &Decoder{} }

func (d *Decoder) Decode(node any, payload []byte, bitOffset int) (any, error) {
	return decodeNode(node, payload, bitOffset)
}

func (d *Decoder) ByteLength(node any) (int, error) {
	return byteLength(node)
}

// byteLength recurses over complex DOPs per §4.H's
// get_parameter_byte_length/get_structure_byte_length.
func byteLength(node any) (int, error) {
	switch v := node.(type) {
	case *description.Parameter:
		return byteLength(v.DOP)
	case *description.DOP:
		return ceilBitsToBytes(0, dopBitLength(v)), nil
	case *description.Structure:
		if v.HasByteSize {
			return v.ByteSize, nil
		}
		total, cursor := 0, 0
		for i := range v.Parameters {
			p := &v.Parameters[i]
			l, err := byteLength(p)
			if err != nil {
				return 0, err
			}
			pos := cursor
			if p.HasBytePosition {
				pos = p.BytePosition
			}
			cursor = pos + l
			if cursor > total {
				total = cursor
			}
		}
		return total, nil
	case *description.StaticField:
		return v.BytePosition + v.FixedNumberOfItems*v.ItemByteSize, nil
	case *description.Mux:
		longest := 0
		for _, c := range v.Cases {
			l, err := byteLength(&c.Structure)
			if err != nil {
				return 0, err
			}
			if l > longest {
				longest = l
			}
		}
		if v.HasDefault {
			l, err := byteLength(&v.Default.Structure)
			if err != nil {
				return 0, err
			}
			if l > longest {
				longest = l
			}
		}
		return v.BytePosition + longest, nil
	default:
		return 0, &mcderr.FormatError{Context: "byte length", Detail: fmt.Sprintf("unsupported node type %T", node)}
	}
}

// dopBitLength returns the nominal bit length for STANDARD-LENGTH-TYPE
// DOPs; variable-length kinds are sized during decode instead, so this
// is only used for byte-length estimation of simple fixed-width DOPs.
func dopBitLength(dop *description.DOP) int {
	return dop.DiagCodedType.BitLength
}

func decodeNode(node any, payload []byte, bitOffset int) (any, error) {
	switch v := node.(type) {
	case *description.Parameter:
		return decodeParameter(v, payload, bitOffset)
	case *description.DOP:
		val, _, err := getDOPValue(v, payload, bitOffset)
		return val, err
	case *description.Structure:
		return decodeStructure(v, payload, bitOffset)
	case *description.StaticField:
		return decodeStaticField(v, payload, bitOffset)
	case *description.DynamicLengthField:
		return decodeDynamicLengthField(v, payload, bitOffset)
	case *description.DynamicEndmarkerField:
		return decodeDynamicEndmarkerField(v, payload, bitOffset)
	case *description.EndOfPduField:
		return decodeEndOfPduField(v, payload, bitOffset)
	case *description.Mux:
		return decodeMux(v, payload, bitOffset)
	case *description.DTC:
		return decodeDTC(v, payload, bitOffset)
	default:
		return nil, &mcderr.FormatError{Context: "decode", Detail: fmt.Sprintf("unsupported node type %T", node)}
	}
}

func decodeParameter(p *description.Parameter, payload []byte, bitOffset int) (*Par, error) {
	if p.ParameterType == types.ParamReserved {
		return nil, nil
	}
	out := &Par{Name: p.ShortName}

	switch dop := p.DOP.(type) {
	case *description.DOP:
		val, _, err := getDOPValue(dop, payload, bitOffset)
		if err != nil {
			return nil, err
		}
		out.Value = val
	default:
		child, err := decodeNode(p.DOP, payload, bitOffset)
		if err != nil {
			return nil, err
		}
		if child != nil {
			out.Children = []any{child}
		}
	}
	return out, nil
}

func decodeStructure(s *description.Structure, payload []byte, bitOffset int) (*Str, error) {
	out := &Str{Name: s.LongName}
	cursor := 0
	for i := range s.Parameters {
		p := &s.Parameters[i]
		bytePos := cursor
		if p.HasBytePosition {
			bytePos = p.BytePosition
		}
		bitOff := p.BitPosition
		if bytePos >= len(payload) {
			return nil, &mcderr.FormatError{Context: s.LongName, Detail: "structure decode ran past the end of the payload"}
		}
		par, err := decodeParameter(p, payload[bytePos:], bitOff)
		if err != nil {
			return nil, err
		}
		if par == nil {
			continue
		}
		out.Children = append(out.Children, par)

		l, err := byteLength(p)
		if err != nil {
			return nil, err
		}
		cursor = bytePos + l
	}
	return out, nil
}

func decodeStaticField(f *description.StaticField, payload []byte, bitOffset int) (*Fld, error) {
	out := &Fld{}
	for i := 0; i < f.FixedNumberOfItems; i++ {
		start := f.BytePosition + i*f.ItemByteSize
		if start >= len(payload) {
			return nil, &mcderr.FormatError{Context: "STATIC-FIELD", Detail: "not enough bytes for the declared item count"}
		}
		child, err := decodeStructure(&f.Structure, payload[start:], 0)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, child)
	}
	return out, nil
}

func decodeDynamicLengthField(f *description.DynamicLengthField, payload []byte, bitOffset int) (*Fld, error) {
	countVal, _, err := getDOPValue(f.DetermineNumberOfItems.(*description.DOP), payload[f.BytePosition:], 0)
	if err != nil {
		return nil, err
	}
	n, err := toInt(countVal.Internal)
	if err != nil {
		return nil, err
	}

	out := &Fld{}
	start := f.BytePosition + f.Offset
	itemLen, err := byteLength(&f.Structure)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		pos := start + i*itemLen
		if pos >= len(payload) {
			return nil, &mcderr.FormatError{Context: "DYNAMIC-LENGTH-FIELD", Detail: "not enough bytes for the determined item count"}
		}
		child, err := decodeStructure(&f.Structure, payload[pos:], 0)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, child)
	}
	return out, nil
}

func decodeDynamicEndmarkerField(f *description.DynamicEndmarkerField, payload []byte, bitOffset int) (*Fld, error) {
	out := &Fld{}
	pos := f.BytePosition
	itemLen, err := byteLength(&f.Structure)
	if err != nil {
		return nil, err
	}
	for pos < len(payload) {
		termVal, _, err := getDOPValue(f.TerminationDOP.(*description.DOP), payload[pos:], 0)
		if err != nil {
			return nil, err
		}
		if valuesEqual(termVal.Physical, f.TerminationValue) {
			break
		}
		child, err := decodeStructure(&f.Structure, payload[pos:], 0)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, child)
		pos += itemLen
	}
	return out, nil
}

func decodeEndOfPduField(f *description.EndOfPduField, payload []byte, bitOffset int) (*Fld, error) {
	out := &Fld{}
	pos := f.BytePosition
	itemLen, err := byteLength(&f.Structure)
	if err != nil {
		return nil, err
	}
	if itemLen == 0 {
		return out, nil
	}
	for pos+itemLen <= len(payload) {
		child, err := decodeStructure(&f.Structure, payload[pos:], 0)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, child)
		pos += itemLen
	}
	return out, nil
}

func decodeMux(m *description.Mux, payload []byte, bitOffset int) (*MuxOut, error) {
	if m.BytePosition >= len(payload) {
		return nil, &mcderr.FormatError{Context: "MUX", Detail: "switch key position past end of payload"}
	}
	skDOP, ok := m.SwitchKey.DOP.(*description.DOP)
	if !ok {
		return nil, &mcderr.FormatError{Context: "MUX", Detail: "switch_key DOP must be a simple DOP"}
	}
	skVal, _, err := getDOPValue(skDOP, payload[m.SwitchKey.BytePosition:], m.SwitchKey.BitPosition)
	if err != nil {
		return nil, err
	}
	switchInt, err := toInt(skVal.Internal)
	if err != nil {
		return nil, err
	}

	for _, c := range m.Cases {
		lo, loOK := toIntIfNumeric(c.LowerLimit)
		hi, hiOK := toIntIfNumeric(c.UpperLimit)
		if loOK && hiOK && switchInt >= lo && switchInt <= hi {
			structNode, err := decodeStructure(&c.Structure, payload[m.BytePosition:], 0)
			if err != nil {
				return nil, err
			}
			return &MuxOut{CaseName: c.ShortName, Value: structNode}, nil
		}
	}
	if m.HasDefault {
		structNode, err := decodeStructure(&m.Default.Structure, payload[m.BytePosition:], 0)
		if err != nil {
			return nil, err
		}
		return &MuxOut{CaseName: m.Default.ShortName, Value: structNode}, nil
	}
	return nil, &mcderr.FormatError{Context: "MUX", Detail: fmt.Sprintf("switch value %d matched no case and no default case is defined", switchInt)}
}

func decodeDTC(d *description.DTC, payload []byte, bitOffset int) (*DtcOut, error) {
	if len(payload) < 3 {
		return nil, &mcderr.FormatError{Context: "DTC", Detail: "not enough bytes for a 24-bit trouble code"}
	}
	code := int(payload[0])<<16 | int(payload[1])<<8 | int(payload[2])
	for _, def := range d.Definitions {
		if def.TroubleCode == code {
			return &DtcOut{Text: fmt.Sprintf("%s(%d): %s", def.DTCText, def.Level, def.Description)}, nil
		}
	}
	return nil, &mcderr.FormatError{Context: "DTC", Detail: fmt.Sprintf("trouble code 0x%06X not found", code)}
}

// --- DOP value extraction (§4.H) -------------------------------------------

// getDOPValue runs the six-step extraction and returns the decoded Val
// plus the number of bytes the field occupied (for variable-length
// callers that need to advance a cursor).
func getDOPValue(dop *description.DOP, payload []byte, bitOffset int) (*Val, int, error) {
	bitLen, prefixBytes, byteLen, err := determineBitLength(dop, payload, bitOffset)
	if err != nil {
		return nil, 0, err
	}

	if byteLen > len(payload) {
		return nil, 0, &mcderr.FormatError{Context: "DOP", Detail: "not enough bytes for the determined field length"}
	}
	// The payload starts at the next byte edge after any leading-length
	// prefix (§4.H step 1) — prefixBytes bytes that carry the field's
	// length, not its value, are never part of the decoded field.
	field := payload[prefixBytes:byteLen]

	field = normalizeByteOrder(field, dop.Endianness, dop.CodedBaseDataType)

	// A leading-length prefix always consumes whole bytes, so the value
	// field it precedes starts at a fresh byte edge; only a
	// STANDARD-LENGTH-TYPE field can still be mid-byte here.
	valueBitOffset := bitOffset
	if prefixBytes > 0 {
		valueBitOffset = 0
	}

	var internal any
	if dop.CodedBaseDataType.IsString() || dop.CodedBaseDataType == types.AByteField {
		internal, err = decodeStringOrBytes(field, dop)
		if err != nil {
			return nil, 0, err
		}
	} else {
		bits := extractBits(field, valueBitOffset, bitLen)
		if dop.DiagCodedType.HasBitMask {
			bits = applyBitMask(bits, dop.DiagCodedType.BitMask, bitLen)
		}
		internal, err = decodeBaseType(bits, bitLen, dop)
		if err != nil {
			return nil, 0, err
		}
	}

	if err := checkConstraint(dop.InternalConstraint, internal); err != nil {
		return nil, 0, err
	}

	physical, err := derivePhysical(dop, internal)
	if err != nil {
		return nil, 0, err
	}

	if err := checkConstraint(dop.PhysicalConstraint, physical); err != nil {
		return nil, 0, err
	}

	display := formatDisplay(dop, physical)

	return &Val{Internal: internal, Physical: physical, Display: display}, byteLen, nil
}

// determineBitLength returns the value field's bit length, the number
// of prefix bytes that precede the value and are not part of it
// (non-zero only for the LEADING-LENGTH-INFO-TYPE length field), and
// the total number of bytes this field occupies including that prefix.
// For STANDARD-LENGTH-TYPE the total is ceil((bitOffset+bitLen)/8), so
// it counts the starting bit offset as well.
func determineBitLength(dop *description.DOP, payload []byte, bitOffset int) (bitLen, prefixBytes, byteLen int, err error) {
	dct := dop.DiagCodedType
	switch dct.Kind {
	case types.StandardLengthType:
		return dct.BitLength, 0, ceilBitsToBytes(bitOffset, dct.BitLength), nil

	case types.LeadingLengthInfoType:
		leadingBytes := ceilBitsToBytes(bitOffset, dct.BitLength)
		if leadingBytes > len(payload) {
			return 0, 0, 0, &mcderr.FormatError{Context: "LEADING-LENGTH-INFO-TYPE", Detail: "not enough bytes for the leading length field"}
		}
		field := normalizeByteOrder(payload[:leadingBytes], dop.Endianness, types.AUint32)
		bits := extractBits(field, bitOffset, dct.BitLength)
		byteCount := int(bits.Int64())
		// The value field starts at the next byte edge after the
		// leading-length prefix (§4.H step 1), so it is never part of
		// the decoded value itself.
		return byteCount * 8, leadingBytes, leadingBytes + byteCount, nil

	case types.MinMaxLengthType:
		termLen := 1
		if dop.CodedBaseDataType == types.AUnicode2String {
			termLen = 2
		}
		limit := dct.MaxLength
		if limit > len(payload) {
			limit = len(payload)
		}
		pos := 0
		for pos+termLen <= limit {
			if isTermination(payload[pos:pos+termLen], dct.Termination) {
				break
			}
			pos += termLen
		}
		n := pos
		if dct.Termination == types.TerminationEndOfPDU {
			n = limit
		}
		if n < dct.MinLength {
			return 0, 0, 0, &mcderr.FormatError{Context: "MIN-MAX-LENGTH-TYPE", Detail: fmt.Sprintf("found %d bytes, need at least %d", n, dct.MinLength)}
		}
		if n > dct.MaxLength {
			n = dct.MaxLength
		}
		return n * 8, 0, n, nil

	case types.ParamLengthInfoType:
		// Unimplemented decode path: the builder already validates that
		// a PARAM-LENGTH-INFO-TYPE's length-key reference resolves
		// (§4.G), but resolving the referenced parameter's already-
		// decoded value back into a bit length at this call requires
		// passing the enclosing structure's running decode state in,
		// which this function does not receive.
		return 0, 0, 0, &mcderr.FormatError{Context: "PARAM-LENGTH-INFO-TYPE", Detail: "length-key-driven length requires the embedded parameter value, not yet available to this call"}

	default:
		return 0, 0, 0, &mcderr.FormatError{Context: "DOP", Detail: fmt.Sprintf("unknown diag_coded_type kind %d", dct.Kind)}
	}
}

func isTermination(b []byte, term types.Termination) bool {
	switch term {
	case types.TerminationZero:
		for _, x := range b {
			if x != 0x00 {
				return false
			}
		}
		return true
	case types.TerminationHexFF:
		for _, x := range b {
			if x != 0xFF {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func decodeStringOrBytes(field []byte, dop *description.DOP) (any, error) {
	switch dop.CodedBaseDataType {
	case types.AAsciiString:
		out, err := win1252.NewDecoder().Bytes(field)
		if err != nil {
			return nil, &mcderr.FormatError{Context: "A_ASCIISTRING", Detail: err.Error()}
		}
		return string(out), nil
	case types.AUtf8String:
		return string(field), nil
	case types.AUnicode2String:
		codec := utf16BE
		if dop.Endianness == types.LittleEndian {
			codec = utf16LE
		}
		out, err := codec.NewDecoder().Bytes(field)
		if err != nil {
			return nil, &mcderr.FormatError{Context: "A_UNICODE2STRING", Detail: err.Error()}
		}
		return string(out), nil
	case types.AByteField:
		return field, nil
	default:
		return nil, &mcderr.FormatError{Context: "DOP", Detail: "decodeStringOrBytes called for a non-string, non-bytefield type"}
	}
}

func decodeBaseType(bits *big.Int, bitLen int, dop *description.DOP) (any, error) {
	switch dop.CodedBaseDataType {
	case types.AUint32:
		switch dop.Encoding {
		case types.EncodingBCDP:
			return decodeBCD(bits), nil
		default:
			return uint32(bits.Uint64()), nil
		}
	case types.AInt32:
		return decodeSigned(bits, bitLen, dop.Encoding), nil
	case types.AFloat32:
		return math.Float32frombits(uint32(bits.Uint64())), nil
	case types.AFloat64:
		return math.Float64frombits(bits.Uint64()), nil
	default:
		return nil, &mcderr.FormatError{Context: "DOP", Detail: fmt.Sprintf("unsupported coded base type %s for bit decode", dop.CodedBaseDataType)}
	}
}

func decodeBCD(bits *big.Int) uint32 {
	v := bits.Uint64()
	var result uint64
	shift := uint(0)
	for v > 0 {
		digit := v & 0xF
		result += digit * pow10(shift)
		v >>= 4
		shift++
	}
	return uint32(result)
}

func pow10(n uint) uint64 {
	r := uint64(1)
	for i := uint(0); i < n; i++ {
		r *= 10
	}
	return r
}

func decodeSigned(bits *big.Int, bitLen int, enc types.Encoding) int32 {
	v := bits.Uint64()
	switch enc {
	case types.EncodingTwosComplement:
		if v&(1<<(bitLen-1)) != 0 {
			return int32(v) - int32(1<<bitLen)
		}
		return int32(v)
	case types.EncodingOnesComplement:
		if v&(1<<(bitLen-1)) != 0 {
			magnitude := (^v) & uint64((1<<uint(bitLen))-1)
			return -int32(magnitude)
		}
		return int32(v)
	case types.EncodingSM:
		magnitude := int32(v &^ (1 << (bitLen - 1)))
		if v&(1<<(bitLen-1)) != 0 {
			return -magnitude
		}
		return magnitude
	default:
		return int32(v)
	}
}

// --- constraint checking ----------------------------------------------------

func checkConstraint(c *description.Constraint, value any) error {
	if c == nil {
		return nil
	}
	f, ok := toFloat(value)
	if !ok {
		return nil
	}
	if !limitAllows(c.Lower.Kind, c.Lower.Value, f, true) || !limitAllows(c.Upper.Kind, c.Upper.Value, f, false) {
		return &mcderr.ConstraintError{Detail: fmt.Sprintf("value %v outside constraint bounds", value)}
	}
	for _, sc := range c.Scales {
		if scaleContains(sc, f) && sc.Validity != types.ValidityValid {
			return &mcderr.ConstraintError{Label: sc.Label, Detail: fmt.Sprintf("value %v falls in non-VALID scale %q", value, sc.Label)}
		}
	}
	return nil
}

func limitAllows(kind types.LimitKind, limit any, v float64, isLower bool) bool {
	if kind == types.LimitInfinite {
		return true
	}
	bound, ok := toFloat(limit)
	if !ok {
		return true
	}
	if isLower {
		return v >= bound
	}
	return v <= bound
}

func scaleContains(sc description.ScaleConstraint, v float64) bool {
	lo, loOK := toFloat(sc.Lower.Value)
	hi, hiOK := toFloat(sc.Upper.Value)
	if !loOK || !hiOK {
		return false
	}
	return v >= lo && v <= hi
}

// --- physical derivation -----------------------------------------------------

func derivePhysical(dop *description.DOP, internal any) (any, error) {
	cm := dop.CompuMethod
	switch cm.Category {
	case types.CompuIdentical:
		return internal, nil

	case types.CompuLinear:
		f, ok := toFloat(internal)
		if !ok {
			return internal, nil
		}
		lin := cm.Scales[0].Linear
		phys := (lin.Offset + f*lin.Factor) / lin.Divisor
		return applyCalcType(dop.PhysicalBaseDataType, phys), nil

	case types.CompuScaleLinear, types.CompuScaleRatFunc:
		f, ok := toFloat(internal)
		if !ok {
			return internal, nil
		}
		for _, sc := range cm.Scales {
			if scaleBounds(sc, f) {
				var phys float64
				if sc.Linear != nil {
					phys = (sc.Linear.Offset + f*sc.Linear.Factor) / sc.Linear.Divisor
				} else if sc.Rational != nil {
					phys = evalRational(sc.Rational, f)
				}
				return applyCalcType(dop.PhysicalBaseDataType, phys), nil
			}
		}
		if cm.HasDefault {
			return cm.DefaultValue, nil
		}
		return nil, &mcderr.ConstraintError{Detail: fmt.Sprintf("no COMPU-SCALE matched internal value %v and no default is defined", internal)}

	case types.CompuTextTable:
		f, ok := toFloat(internal)
		if !ok {
			return internal, nil
		}
		for _, sc := range cm.Scales {
			if scaleBounds(sc, f) {
				return sc.Text, nil
			}
		}
		if cm.HasDefault {
			return cm.DefaultValue, nil
		}
		return nil, &mcderr.ConstraintError{Detail: fmt.Sprintf("no TEXTTABLE scale matched internal value %v and no default is defined", internal)}

	case types.CompuTabIntp:
		f, ok := toFloat(internal)
		if !ok {
			return internal, nil
		}
		first, _ := toFloat(cm.Scales[0].LowerLimit.Value)
		last, _ := toFloat(cm.Scales[len(cm.Scales)-1].LowerLimit.Value)
		if f < first || f > last {
			return nil, &mcderr.ConstraintError{Detail: fmt.Sprintf("internal value %v outside TAB-INTP range [%v,%v]", internal, first, last)}
		}
		for i := 0; i+1 < len(cm.Scales); i++ {
			lo, _ := toFloat(cm.Scales[i].LowerLimit.Value)
			hi, _ := toFloat(cm.Scales[i+1].LowerLimit.Value)
			if f >= lo && f <= hi {
				loPhys, _ := toFloat(cm.Scales[i].UpperLimit.Value)
				hiPhys, _ := toFloat(cm.Scales[i+1].UpperLimit.Value)
				frac := (f - lo) / (hi - lo)
				phys := loPhys + frac*(hiPhys-loPhys)
				return applyCalcType(dop.PhysicalBaseDataType, phys), nil
			}
		}
		return nil, &mcderr.ConstraintError{Detail: "TAB-INTP failed to bracket the internal value"}

	default:
		return internal, nil
	}
}

func scaleBounds(sc description.Scale, v float64) bool {
	lo, loOK := toFloat(sc.LowerLimit.Value)
	hi, hiOK := toFloat(sc.UpperLimit.Value)
	if !loOK || !hiOK {
		return false
	}
	return v >= lo && v <= hi
}

func evalRational(r *description.Rational, x float64) float64 {
	num := polyEval(r.Num, x)
	den := polyEval(r.Den, x)
	return num / den
}

func polyEval(coeffs []float64, x float64) float64 {
	result := 0.0
	power := 1.0
	for _, c := range coeffs {
		result += c * power
		power *= x
	}
	return result
}

// applyCalcType applies commercial rounding (half away from zero) and
// converts to the integer type when the physical type is A_UINT32 or
// A_INT32; any other physical type keeps the float64 result (§4.H).
func applyCalcType(physType types.BaseDataType, v float64) any {
	switch physType {
	case types.AUint32:
		return uint32(commercialRound(v))
	case types.AInt32:
		return int32(commercialRound(v))
	default:
		return v
	}
}

// commercialRound rounds v half away from zero, exposed for decode
// paths that explicitly need float->integer rounding rather than
// truncation.
func commercialRound(v float64) float64 {
	if v >= 0 {
		return math.Floor(v + 0.5)
	}
	return math.Ceil(v - 0.5)
}

// --- display formatting ------------------------------------------------------

func formatDisplay(dop *description.DOP, physical any) string {
	switch v := physical.(type) {
	case string:
		return v
	case []byte:
		var sb strings.Builder
		for i, b := range v {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strings.ToUpper(fmt.Sprintf("%02x", b)))
		}
		return sb.String()
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), uint64ToRadix(dop.DisplayRadix))
	case float32:
		return formatFloat(float64(v), dop)
	case float64:
		return formatFloat(v, dop)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func uint64ToRadix(r types.DisplayRadix) int {
	switch r {
	case types.RadixBinary:
		return 2
	case types.RadixOctal:
		return 8
	case types.RadixHexadecimal:
		return 16
	default:
		return 10
	}
}

func formatFloat(v float64, dop *description.DOP) string {
	if dop.HasPrecision {
		return strconv.FormatFloat(v, 'f', dop.Precision, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// --- small numeric helpers ---------------------------------------------------

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int32:
		return float64(x), true
	case uint32:
		return float64(x), true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}

func toInt(v any) (int, error) {
	f, ok := toFloat(v)
	if !ok {
		return 0, &mcderr.FormatError{Context: "decode", Detail: fmt.Sprintf("expected a numeric value, got %T", v)}
	}
	return int(f), nil
}

func toIntIfNumeric(v any) (int, bool) {
	f, ok := toFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func valuesEqual(a, b any) bool {
	fa, aOK := toFloat(a)
	fb, bOK := toFloat(b)
	if aOK && bOK {
		return fa == fb
	}
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}
