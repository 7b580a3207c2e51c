// Package description builds the normalized description tree (§4.G)
// from raw loaded objects: PARAMETER/DOP/STRUCTURE/STATIC-FIELD/
// DYNAMIC-LENGTH-FIELD/DYNAMIC-ENDMARKER-FIELD/END-OF-PDU-FIELD/MUX/DTC.
package description

import (
	"github.com/nexusauto/mcd2d/internal/mcderr"
	"github.com/nexusauto/mcd2d/internal/types"
)

// Linear is the structured LINEAR (and each SCALE-LINEAR scale's)
// formula: physical = (offset + x*factor) / divisor (§4.G, §9).
type Linear struct {
	Offset  float64
	Factor  float64
	Divisor float64
}

// Rational is the structured SCALE-RAT-FUNC formula: physical =
// polynomial(Num)(x) / polynomial(Den)(x), ascending-power
// coefficients (§4.G, §9).
type Rational struct {
	Num []float64
	Den []float64
}

// Scale is one normalized COMPU-SCALE: a coded-value range mapped to a
// physical value via either a Linear or a Rational formula, or (for
// TEXTTABLE) a literal text constant.
type Scale struct {
	LowerLimit rawLimit
	UpperLimit rawLimit
	Linear     *Linear
	Rational   *Rational
	Text       string
	IsText     bool
}

// rawLimit mirrors rawobj.Limit without importing rawobj from this
// package's public surface; Build populates it directly.
type rawLimit struct {
	Kind  types.LimitKind
	Value any
}

// CompuMethod is the normalized COMPU-METHOD: a category plus the
// scales and default value needed to evaluate it (§4.G).
type CompuMethod struct {
	Category     types.CompuCategory
	Scales       []Scale
	HasDefault   bool
	DefaultValue any
}

// DOP is the normalized DB_DOP_SIMPLE_BASE (§4.G).
type DOP struct {
	CodedBaseDataType    types.BaseDataType
	DiagCodedType        DiagCodedType
	Encoding             types.Encoding
	Endianness           types.Endianness
	PhysicalBaseDataType types.BaseDataType
	DisplayRadix         types.DisplayRadix
	HasPrecision         bool
	Precision            int
	UnitName             string
	HasUnit              bool
	InternalConstraint   *Constraint
	PhysicalConstraint   *Constraint
	CompuMethod          CompuMethod
}

// DiagCodedType is the normalized diag-coded-type fields a DOP carries.
type DiagCodedType struct {
	Kind          types.DiagCodedTypeKind
	BitLength     int
	MinLength     int
	MaxLength     int
	Termination   types.Termination
	LengthKeyName string
	HasBitMask    bool
	BitMask       uint64
}

// Constraint is a normalized interval, optionally broken into labeled
// scale sub-intervals.
type Constraint struct {
	Lower  rawLimit
	Upper  rawLimit
	Scales []ScaleConstraint
}

// ScaleConstraint is a labeled, validity-classified sub-interval.
type ScaleConstraint struct {
	Lower    rawLimit
	Upper    rawLimit
	Validity types.Validity
	Label    string
}

// Parameter is the normalized MCD_DB_PARAMETER_SIMPLE (§4.G).
//
// BytePosition only applies when HasBytePosition is set — a parameter
// placed at an explicit, possibly non-contiguous offset within its
// enclosing structure; otherwise the structure decoder places it at
// the next free byte after the parameter before it (§4.H).
//
// LoadError carries a recoverable build-time violation on DOP (the Go
// replacement for the source's "#error" node marker): DOP is still a
// partially-built, usable node even when LoadError is set.
type Parameter struct {
	ShortName       string
	BitPosition     int
	HasBytePosition bool
	BytePosition    int
	ParameterType   types.ParameterType
	DOP             Node
	LoadError       *mcderr.NodeError
	HasDefault      bool
	DefaultValue    any
}

// Structure is the normalized MCD_DB_PARAMETER_STRUCTURE.
type Structure struct {
	LongName    string
	Description string
	HasByteSize bool
	ByteSize    int
	Parameters  []Parameter
}

// FieldBase carries the fields shared by every field kind.
type FieldBase struct {
	BytePosition int
	Structure    Structure
}

// StaticField is the normalized MCD_DB_PARAMETER_STATIC_FIELD.
type StaticField struct {
	FieldBase
	FixedNumberOfItems int
	ItemByteSize       int
}

// DynamicLengthField is the normalized
// MCD_DB_PARAMETER_DYNAMIC_LENGTH_FIELD.
type DynamicLengthField struct {
	FieldBase
	DetermineNumberOfItems Node
	Offset                 int
}

// DynamicEndmarkerField is the normalized
// MCD_DB_PARAMETER_DYNAMIC_ENDMARKER_FIELD.
type DynamicEndmarkerField struct {
	FieldBase
	TerminationDOP   Node
	TerminationValue any
}

// EndOfPduField is the normalized MCD_DB_PARAMETER_END_OF_PDU_FIELD.
type EndOfPduField struct {
	FieldBase
}

// Case is one normalized MUX arm; Lower/Upper are numeric when
// possible, and left as their original string form otherwise (§9).
type Case struct {
	ShortName  string
	Structure  Structure
	LowerLimit any
	UpperLimit any
}

// SwitchKey is a MUX's normalized discriminant DOP and position.
type SwitchKey struct {
	DOP          Node
	BytePosition int
	BitPosition  int
}

// Mux is the normalized MCD_DB_PARAMETER_MULTIPLEXER.
type Mux struct {
	BytePosition int
	SwitchKey    SwitchKey
	Cases        []Case
	HasDefault   bool
	Default      Case
}

// DTCDefinition is one normalized fault entry.
type DTCDefinition struct {
	TroubleCode int
	DTCText     string
	Level       int
	Description string
	LongName    string
}

// DTC is the normalized DB_DOP_DTC.
type DTC struct {
	Definitions []DTCDefinition
}

// Node is any of Parameter, DOP, Structure, StaticField,
// DynamicLengthField, DynamicEndmarkerField, EndOfPduField, Mux, DTC —
// discriminated by Go type switch, never a string marker (§4.G, §9).
type Node any
