package types

import "fmt"

// BaseDataType is the coded or physical base data type of a DOP, the
// A_* vocabulary from ODX-2D.
type BaseDataType uint8

const (
	AUint32       BaseDataType = iota // A_UINT32
	AInt32                            // A_INT32
	AFloat32                          // A_FLOAT32
	AFloat64                          // A_FLOAT64
	AAsciiString                      // A_ASCIISTRING
	AUtf8String                       // A_UTF8STRING
	AUnicode2String                   // A_UNICODE2STRING
	AByteField                        // A_BYTEFIELD
)

func (b BaseDataType) String() string {
	switch b {
	case AUint32:
		return "A_UINT32"
	case AInt32:
		return "A_INT32"
	case AFloat32:
		return "A_FLOAT32"
	case AFloat64:
		return "A_FLOAT64"
	case AAsciiString:
		return "A_ASCIISTRING"
	case AUtf8String:
		return "A_UTF8STRING"
	case AUnicode2String:
		return "A_UNICODE2STRING"
	case AByteField:
		return "A_BYTEFIELD"
	default:
		return fmt.Sprintf("unknown base type (%d)", uint8(b))
	}
}

// IsString reports whether b is one of the string base types.
func (b BaseDataType) IsString() bool {
	switch b {
	case AAsciiString, AUtf8String, AUnicode2String:
		return true
	default:
		return false
	}
}

// Encoding is the short ODX encoding name qualifying how a coded base
// type's bits translate to an internal value.
type Encoding uint8

const (
	EncodingNone Encoding = iota // NONE - plain binary
	EncodingBCDP                 // BCD-P - packed BCD, 4 bits/digit
	EncodingSM                   // SM - sign-magnitude
	EncodingOnesComplement       // 1C
	EncodingTwosComplement       // 2C
	EncodingIEEE754               // IEEE754 - floats
	EncodingISO88591              // ISO-8859-1 - ascii strings
	EncodingUTF8                  // UTF-8
	EncodingUCS2                  // UCS-2 / UTF-16LE
	EncodingBitfield
	EncodingConstruct
)

func (e Encoding) String() string {
	switch e {
	case EncodingNone:
		return "NONE"
	case EncodingBCDP:
		return "BCD-P"
	case EncodingSM:
		return "SM"
	case EncodingOnesComplement:
		return "1C"
	case EncodingTwosComplement:
		return "2C"
	case EncodingIEEE754:
		return "IEEE754"
	case EncodingISO88591:
		return "ISO-8859-1"
	case EncodingUTF8:
		return "UTF-8"
	case EncodingUCS2:
		return "UCS-2"
	case EncodingBitfield:
		return "BITFIELD"
	case EncodingConstruct:
		return "CONSTRUCT"
	default:
		return fmt.Sprintf("unknown encoding (%d)", uint8(e))
	}
}

// DiagCodedTypeKind distinguishes how the bit-length of a DOP's coded
// value is determined.
type DiagCodedTypeKind uint8

const (
	StandardLengthType DiagCodedTypeKind = iota
	LeadingLengthInfoType
	MinMaxLengthType
	ParamLengthInfoType
)

func (k DiagCodedTypeKind) String() string {
	switch k {
	case StandardLengthType:
		return "STANDARD-LENGTH-TYPE"
	case LeadingLengthInfoType:
		return "LEADING-LENGTH-INFO-TYPE"
	case MinMaxLengthType:
		return "MIN-MAX-LENGTH-TYPE"
	case ParamLengthInfoType:
		return "PARAM-LENGTH-INFO-TYPE"
	default:
		return fmt.Sprintf("unknown diag-coded-type (%d)", uint8(k))
	}
}

// Termination is the byte sequence MIN-MAX-LENGTH-TYPE scans for.
type Termination uint8

const (
	TerminationZero Termination = iota
	TerminationHexFF
	TerminationEndOfPDU
)

func (t Termination) String() string {
	switch t {
	case TerminationZero:
		return "ZERO"
	case TerminationHexFF:
		return "HEX-FF"
	case TerminationEndOfPDU:
		return "END-OF-PDU"
	default:
		return fmt.Sprintf("unknown termination (%d)", uint8(t))
	}
}

// Endianness of a coded field.
type Endianness uint8

const (
	BigEndian Endianness = iota
	LittleEndian
)

func (e Endianness) String() string {
	if e == LittleEndian {
		return "little"
	}
	return "big"
}

// CompuCategory classifies a COMPU-METHOD.
type CompuCategory uint8

const (
	CompuIdentical CompuCategory = iota
	CompuLinear
	CompuScaleLinear
	CompuScaleRatFunc
	CompuTextTable
	CompuTabIntp
)

func (c CompuCategory) String() string {
	switch c {
	case CompuIdentical:
		return "IDENTICAL"
	case CompuLinear:
		return "LINEAR"
	case CompuScaleLinear:
		return "SCALE-LINEAR"
	case CompuScaleRatFunc:
		return "SCALE-RAT-FUNC"
	case CompuTextTable:
		return "TEXTTABLE"
	case CompuTabIntp:
		return "TAB-INTP"
	default:
		return fmt.Sprintf("unknown compu-category (%d)", uint8(c))
	}
}

// ParameterType classifies a normalized PARAMETER node.
type ParameterType uint8

const (
	ParamValue ParameterType = iota
	ParamReserved
	ParamCodedConst
	ParamPhysConst
)

func (p ParameterType) String() string {
	switch p {
	case ParamValue:
		return "VALUE"
	case ParamReserved:
		return "RESERVED"
	case ParamCodedConst:
		return "CODED-CONST"
	case ParamPhysConst:
		return "PHYS-CONST"
	default:
		return fmt.Sprintf("unknown parameter type (%d)", uint8(p))
	}
}

// LimitKind classifies one side of an Interval.
type LimitKind uint8

const (
	LimitOpen LimitKind = iota
	LimitClosed
	LimitInfinite
)

func (k LimitKind) String() string {
	switch k {
	case LimitOpen:
		return "OPEN"
	case LimitClosed:
		return "CLOSED"
	case LimitInfinite:
		return "INFINITE"
	default:
		return fmt.Sprintf("unknown limit kind (%d)", uint8(k))
	}
}

// Validity classifies a scale constraint's sub-interval.
type Validity uint8

const (
	ValidityValid Validity = iota
	ValidityNotValid
	ValidityNotDefined
	ValidityNotAvailable
)

func (v Validity) String() string {
	switch v {
	case ValidityValid:
		return "VALID"
	case ValidityNotValid:
		return "NOT-VALID"
	case ValidityNotDefined:
		return "NOT-DEFINED"
	case ValidityNotAvailable:
		return "NOT-AVAILABLE"
	default:
		return fmt.Sprintf("unknown validity (%d)", uint8(v))
	}
}

// DisplayRadix is only meaningful for A_UINT32 physical values.
type DisplayRadix uint8

const (
	RadixBinary      DisplayRadix = 2
	RadixOctal       DisplayRadix = 8
	RadixDecimal     DisplayRadix = 10
	RadixHexadecimal DisplayRadix = 16
)

// PoolKind is deduced from a pool's trailing two-letter filename suffix.
type PoolKind uint8

const (
	PoolUnknown PoolKind = iota
	PoolVehicleInfo
	PoolECUConfig
	PoolFlash
	PoolFlashData
	PoolSecurityData
	PoolProtocol
	PoolFunctionalGroup
	PoolBaseVariant
	PoolECUVariant
	PoolMultipleECUJob
	PoolComParam
)

var poolSuffixes = map[string]PoolKind{
	"vi": PoolVehicleInfo,
	"ec": PoolECUConfig,
	"fl": PoolFlash,
	"fd": PoolFlashData,
	"sd": PoolSecurityData,
	"pr": PoolProtocol,
	"fg": PoolFunctionalGroup,
	"bv": PoolBaseVariant,
	"ev": PoolECUVariant,
	"mj": PoolMultipleECUJob,
	"cp": PoolComParam,
}

var poolKindLabels = map[PoolKind]string{
	PoolVehicleInfo:     "vehicle info",
	PoolECUConfig:       "ECU configuration",
	PoolFlash:           "flash",
	PoolFlashData:       "flash data",
	PoolSecurityData:    "security data",
	PoolProtocol:        "protocol",
	PoolFunctionalGroup: "functional group",
	PoolBaseVariant:     "base variant",
	PoolECUVariant:      "ECU variant",
	PoolMultipleECUJob:  "multiple ECU job",
	PoolComParam:        "communication parameter",
}

// PoolKindFromSuffix deduces a pool's kind from the two-letter suffix
// preceding its ".db"/".key" extension (e.g. "ev" in "MyECU_ev.db").
func PoolKindFromSuffix(suffix string) PoolKind {
	if k, ok := poolSuffixes[suffix]; ok {
		return k
	}
	return PoolUnknown
}

// Label returns a human-readable description of k, or "unknown" for
// PoolUnknown.
func (k PoolKind) Label() string {
	if l, ok := poolKindLabels[k]; ok {
		return l
	}
	return "unknown"
}
