// Package rawobj defines the closed sum type of loaded objects (§4.E):
// one Go struct per object-type tag that has a dedicated loader,
// discriminated by Go type switch rather than a string
// "#OBJECT_TYPE" marker (§9).
package rawobj

import "github.com/nexusauto/mcd2d/internal/types"

// Reference is a resolved-or-not reference to another object, carrying
// an optional pool id (absent references are resolved through the
// layer-data search list, §4.F).
type Reference struct {
	PoolID    string
	ObjectID  string
	ObjectID2 string // set for attributed/named references
	Strings   []string
}

// LayerData identifies one containment layer (ECU variant, base
// variant, functional group, or protocol layer) and the reference maps
// hung off it.
type LayerData struct {
	Name            string
	ProtocolStack   string
	Location        types.LocationType
	ParentLayers    []string
	DOPRefs         map[string]Reference
	ComParamRefs    map[string]Reference
	DiagComObjRefs  map[string]Reference
	EcuStateRefs    map[string]Reference
	SubComponent    map[string]Reference
	AdditionalAud   map[string]Reference
	SpecialDataRefs map[string]Reference
}

// Limit is one side of an Interval: OPEN/CLOSED bounds carry Value,
// INFINITE carries none.
type Limit struct {
	Kind  types.LimitKind
	Value any // float64 for OPEN/CLOSED, nil for INFINITE
}

// Interval is the ancillary MCD_INTERVAL record — a (lower, upper)
// Limit pair shared by internal/physical constraints and COMPU-SCALEs.
type Interval struct {
	Lower Limit
	Upper Limit
}

// Constraint pairs an Interval with the data type it bounds.
type Constraint struct {
	Range    Interval
	DataType types.BaseDataType
}

// ScaleConstraint is a labeled sub-interval of a constraint with its
// own validity classification (§3/§4.G).
type ScaleConstraint struct {
	Range    Interval
	DataType types.BaseDataType
	Validity types.Validity
	Label    string
}

// RationalCoeffs is the ascending-power coefficient list backing a
// SCALE-RAT-FUNC COMPU-SCALE's numerator or denominator.
type RationalCoeffs struct {
	Coeffs []float64
}

// CompuScale is one entry of a COMPU-METHOD's internal_to_phys or
// phys_to_internal scale list.
type CompuScale struct {
	LowerLimit     Limit
	UpperLimit     Limit
	Numerator      RationalCoeffs
	Denominator    RationalCoeffs
	CompuConst     any
	Label          string
	DefaultApplies bool
}

// CompuMethod is the loaded DB_COMPU_METHOD object.
type CompuMethod struct {
	Category          types.CompuCategory
	InternalToPhys    []CompuScale
	PhysToInternal    []CompuScale
	DefaultValue      any
	DefaultValueIsSet bool
}

// DiagCodedType is the loaded DB_DIAG_CODED_TYPE object.
type DiagCodedType struct {
	Kind              types.DiagCodedTypeKind
	BaseDataType      types.BaseDataType
	Encoding          types.Encoding
	Endianness        types.Endianness
	BitLength         int  // STANDARD-LENGTH-TYPE value width; LEADING-LENGTH-INFO-TYPE length field width
	MinLength         int  // MIN-MAX-LENGTH-TYPE
	MaxLength         int  // MIN-MAX-LENGTH-TYPE
	Termination       types.Termination
	LengthKeyRef      Reference // PARAM-LENGTH-INFO-TYPE
	HasBitMask        bool
	BitMask           uint64
	CondensedBitMask  bool
}

// PhysicalType describes the decoded value's display shape.
type PhysicalType struct {
	BaseDataType types.BaseDataType
	DisplayRadix types.DisplayRadix
	HasPrecision bool
	Precision    int
}

// Unit is the ancillary MCD_DB_UNIT record.
type Unit struct {
	ShortName   string
	DisplayName string
	GroupRef    Reference
	DimensionRef Reference
	Factor      float64
	Offset      float64
}

// UnitGroup is the ancillary MCD_DB_UNIT_GROUP record.
type UnitGroup struct {
	ShortName string
	UnitRefs  []Reference
}

// PhysicalDimension is the ancillary MCD_DB_PHYSICAL_DIMENSION record.
type PhysicalDimension struct {
	ShortName string
	Length    int
	Mass      int
	Time      int
	Current   int
	Temp      int
	Mole      int
	Luminous  int
}

// MatchingPattern is one entry of the ancillary MCD_DB_MATCHING_PATTERNS
// record used for ECU variant identification. NewRegistry has no loader
// for that tag, so nothing in this module produces a MatchingPattern.
type MatchingPattern struct {
	ExpressionRef Reference
	Value         string
}

// DOPSimpleBase is the loaded DB_DOP_SIMPLE_BASE object: the full
// decoding contract for a simple (non-structured) DOP.
type DOPSimpleBase struct {
	DiagCodedType        DiagCodedType
	PhysicalType         PhysicalType
	CompuMethod          CompuMethod
	UnitRef              Reference
	HasUnitRef           bool
	InternalConstraint   Constraint
	HasInternalConstraint bool
	PhysicalConstraint   Constraint
	HasPhysicalConstraint bool
	ScaleConstraints     []ScaleConstraint
}

// ParameterDefault is the {data_type, value} pair a PARAMETER's
// default or constant carries.
type ParameterDefault struct {
	DataType types.BaseDataType
	Value    any
}

// ParameterSimple is the loaded MCD_DB_PARAMETER_SIMPLE object.
type ParameterSimple struct {
	ShortName       string
	BitPosition     int
	HasBytePosition bool
	BytePosition    int
	ParameterType   types.ParameterType
	DOPRef          Reference
	HasDefault      bool
	Default         ParameterDefault
}

// Structure is the loaded MCD_DB_PARAMETER_STRUCTURE object.
type Structure struct {
	LongName    string
	Description string
	HasByteSize bool
	ByteSize    int
	Parameters  []ParameterSimple
}

// FieldBase carries the fields shared by every *_FIELD object.
type FieldBase struct {
	BytePosition  int
	StructureRef  Reference
}

// StaticField is the loaded MCD_DB_PARAMETER_STATIC_FIELD object.
type StaticField struct {
	FieldBase
	FixedNumberOfItems int
	ItemByteSize       int
}

// DynamicLengthField is the loaded MCD_DB_PARAMETER_DYNAMIC_LENGTH_FIELD
// object.
type DynamicLengthField struct {
	FieldBase
	DetermineNumberOfItemsRef Reference
	Offset                    int
}

// DynamicEndmarkerField is the loaded
// MCD_DB_PARAMETER_DYNAMIC_ENDMARKER_FIELD object.
type DynamicEndmarkerField struct {
	FieldBase
	TerminationDOPRef Reference
	TerminationValue  any
}

// EndOfPduField is the loaded MCD_DB_PARAMETER_END_OF_PDU_FIELD object.
type EndOfPduField struct {
	FieldBase
}

// SwitchKey is the loaded DB_SWITCH_KEY object: a MUX's discriminant.
type SwitchKey struct {
	DOPRef      Reference
	BytePosition int
	BitPosition  int
}

// CaseBase carries the fields shared by DB_CASE and the multiplexer's
// default case.
type CaseBase struct {
	ShortName    string
	StructureRef Reference
}

// Case is the loaded DB_CASE object: one multiplexer arm.
type Case struct {
	CaseBase
	LowerLimit Limit
	UpperLimit Limit
}

// Multiplexer is the loaded MCD_DB_PARAMETER_MULTIPLEXER object.
type Multiplexer struct {
	BytePosition int
	SwitchKey    SwitchKey
	Cases        []Case
	HasDefault   bool
	Default      CaseBase
}

// DTCDefinition is one entry of a DOP_DTC's trouble-code list.
type DTCDefinition struct {
	TroubleCode int
	DTCText     string
	Level       int
	Description string
	LongNameID  uint32
}

// DOPDTC is the loaded DB_DOP_DTC object.
type DOPDTC struct {
	Definitions []DTCDefinition
}
