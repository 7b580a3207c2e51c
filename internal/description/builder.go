package description

import (
	"fmt"

	"github.com/nexusauto/mcd2d/internal/interfaces"
	"github.com/nexusauto/mcd2d/internal/mcderr"
	"github.com/nexusauto/mcd2d/internal/rawobj"
	"github.com/nexusauto/mcd2d/internal/types"
)

// Builder is the concrete interfaces.DescriptionBuilder.
type Builder struct{}

var _ interfaces.DescriptionBuilder = (*Builder)(nil)

// New returns a ready-to-use Builder.
func New() *Builder { return &Builder{} }

func (b *Builder) Build(raw any, resolver interfaces.ReferenceResolver) (any, error) {
	switch v := raw.(type) {
	case *rawobj.ParameterSimple:
		return buildParameter(v, resolver)
	case *rawobj.DOPSimpleBase:
		return buildDOP(v)
	case *rawobj.Structure:
		return buildStructure(v, resolver)
	case *rawobj.StaticField:
		return buildStaticField(v, resolver)
	case *rawobj.DynamicLengthField:
		return buildDynamicLengthField(v, resolver)
	case *rawobj.DynamicEndmarkerField:
		return buildDynamicEndmarkerField(v, resolver)
	case *rawobj.EndOfPduField:
		return buildEndOfPduField(v, resolver)
	case *rawobj.Multiplexer:
		return buildMux(v, resolver)
	case *rawobj.DOPDTC:
		return buildDTC(v)
	default:
		return nil, &mcderr.SemanticError{NodeName: "description builder", Detail: fmt.Sprintf("no normalization rule for %T", raw)}
	}
}

func resolveRef(resolver interfaces.ReferenceResolver, ref rawobj.Reference) (any, error) {
	if ref.PoolID == "" {
		return nil, &mcderr.ReferenceError{Kind: "object", ObjectID: ref.ObjectID}
	}
	return resolver.LoadByReference(interfaces.Reference{PoolID: ref.PoolID, ObjectID: ref.ObjectID})
}

func buildParameter(p *rawobj.ParameterSimple, resolver interfaces.ReferenceResolver) (*Parameter, error) {
	if p.BitPosition < 0 || p.BitPosition > 7 {
		return nil, &mcderr.SemanticError{NodeName: p.ShortName, Detail: fmt.Sprintf("bit_position %d out of [0,7]", p.BitPosition)}
	}
	switch p.ParameterType {
	case types.ParamValue, types.ParamReserved, types.ParamCodedConst, types.ParamPhysConst:
	default:
		return nil, &mcderr.SemanticError{NodeName: p.ShortName, Detail: fmt.Sprintf("unknown parameter_type %d", p.ParameterType)}
	}

	rawDOP, err := resolveRef(resolver, p.DOPRef)
	if err != nil {
		return nil, err
	}
	dopNode, dopErr := (&Builder{}).Build(rawDOP, resolver)
	nodeErr, recoverable := dopErr.(*mcderr.NodeError)
	if dopErr != nil && !recoverable {
		return nil, dopErr
	}

	out := &Parameter{
		ShortName:       p.ShortName,
		BitPosition:     p.BitPosition,
		HasBytePosition: p.HasBytePosition,
		BytePosition:    p.BytePosition,
		ParameterType:   p.ParameterType,
		DOP:             dopNode,
		LoadError:       nodeErr,
	}
	if p.HasDefault {
		out.HasDefault = true
		out.DefaultValue = p.Default.Value
	}
	return out, dopErr
}

func buildConstraint(c rawobj.Constraint, scales []rawobj.ScaleConstraint) *Constraint {
	if c.Range.Lower.Value == nil && c.Range.Upper.Value == nil && c.Range.Lower.Kind != types.LimitInfinite {
		return nil
	}
	out := &Constraint{
		Lower: rawLimit{Kind: c.Range.Lower.Kind, Value: c.Range.Lower.Value},
		Upper: rawLimit{Kind: c.Range.Upper.Kind, Value: c.Range.Upper.Value},
	}
	for _, sc := range scales {
		out.Scales = append(out.Scales, ScaleConstraint{
			Lower:    rawLimit{Kind: sc.Range.Lower.Kind, Value: sc.Range.Lower.Value},
			Upper:    rawLimit{Kind: sc.Range.Upper.Kind, Value: sc.Range.Upper.Value},
			Validity: sc.Validity,
			Label:    sc.Label,
		})
	}
	return out
}

func buildDOP(d *rawobj.DOPSimpleBase) (*DOP, error) {
	dct, err := normalizeDiagCodedType(d.DiagCodedType)
	if err != nil {
		return nil, err
	}

	cm, err := normalizeCompuMethod(d.CompuMethod, d.DiagCodedType.BaseDataType, d.PhysicalType.BaseDataType)
	if err != nil {
		return nil, err
	}

	out := &DOP{
		CodedBaseDataType:    d.DiagCodedType.BaseDataType,
		DiagCodedType:        dct,
		Encoding:             d.DiagCodedType.Encoding,
		Endianness:           d.DiagCodedType.Endianness,
		PhysicalBaseDataType: d.PhysicalType.BaseDataType,
		DisplayRadix:         d.PhysicalType.DisplayRadix,
		HasPrecision:         d.PhysicalType.HasPrecision,
		Precision:            d.PhysicalType.Precision,
		HasUnit:              d.HasUnitRef,
		CompuMethod:          cm,
	}
	// A STANDARD-LENGTH-TYPE bit_length outside the range the
	// base-data-type actually supports is recoverable in source (it
	// becomes a "#error" string on the node, not a load failure): keep
	// the otherwise-valid DOP but report it as a NodeError so a caller
	// collecting the tree can still walk past it (§4.G).
	if d.HasInternalConstraint {
		out.InternalConstraint = buildConstraint(d.InternalConstraint, d.ScaleConstraints)
	}
	if d.HasPhysicalConstraint {
		out.PhysicalConstraint = buildConstraint(d.PhysicalConstraint, d.ScaleConstraints)
	}
	if ne := checkBitLengthRange(d.DiagCodedType.BaseDataType, dct.Kind, dct.BitLength); ne != nil {
		return out, ne
	}
	return out, nil
}

// checkBitLengthRange validates a STANDARD-LENGTH-TYPE's bit_length
// against its base-data-type. Only STANDARD-LENGTH-TYPE carries a
// true per-value bit length here — LEADING-LENGTH-INFO-TYPE's
// bit_length sizes its length prefix, not the value, so it is exempt.
func checkBitLengthRange(baseType types.BaseDataType, kind types.DiagCodedTypeKind, bitLength int) *mcderr.NodeError {
	if kind != types.StandardLengthType {
		return nil
	}
	switch baseType {
	case types.AInt32, types.AUint32:
		if bitLength < 1 || bitLength > 32 {
			return &mcderr.NodeError{NodeName: "DB_DIAG_CODED_TYPE", Detail: fmt.Sprintf("bit_length for %s must be between 1 and 32, not %d", baseType, bitLength)}
		}
	case types.AUnicode2String:
		if bitLength%16 != 0 {
			return &mcderr.NodeError{NodeName: "DB_DIAG_CODED_TYPE", Detail: fmt.Sprintf("bit_length for A_UNICODE2STRING must be a multiple of 16, not %d", bitLength)}
		}
	}
	return nil
}

func normalizeDiagCodedType(dct rawobj.DiagCodedType) (DiagCodedType, error) {
	if dct.Kind == types.ParamLengthInfoType && dct.LengthKeyRef.ObjectID == "" {
		return DiagCodedType{}, &mcderr.SemanticError{NodeName: "DB_DIAG_CODED_TYPE", Detail: "PARAM-LENGTH-INFO-TYPE missing its length-key reference"}
	}
	return DiagCodedType{
		Kind:          dct.Kind,
		BitLength:     dct.BitLength,
		MinLength:     dct.MinLength,
		MaxLength:     dct.MaxLength,
		Termination:   dct.Termination,
		LengthKeyName: dct.LengthKeyRef.ObjectID,
		HasBitMask:    dct.HasBitMask,
		BitMask:       dct.BitMask,
	}, nil
}

func normalizeCompuMethod(cm rawobj.CompuMethod, codedType, physicalType types.BaseDataType) (CompuMethod, error) {
	switch cm.Category {
	case types.CompuIdentical:
		if len(cm.InternalToPhys) != 0 {
			return CompuMethod{}, &mcderr.SemanticError{NodeName: "COMPU-METHOD", Detail: "IDENTICAL must not carry compu_scales"}
		}
		if codedType != physicalType && !(codedType.IsString() && physicalType.IsString()) {
			return CompuMethod{}, &mcderr.SemanticError{NodeName: "COMPU-METHOD", Detail: "IDENTICAL requires matching coded/physical types"}
		}
		return CompuMethod{Category: cm.Category}, nil

	case types.CompuLinear:
		if len(cm.InternalToPhys) != 1 {
			return CompuMethod{}, &mcderr.SemanticError{NodeName: "COMPU-METHOD", Detail: "LINEAR requires exactly one COMPU-SCALE"}
		}
		lin, err := linearFromScale(cm.InternalToPhys[0])
		if err != nil {
			return CompuMethod{}, err
		}
		return CompuMethod{Category: cm.Category, Scales: []Scale{{Linear: &lin}}}, nil

	case types.CompuScaleLinear:
		scales := make([]Scale, len(cm.InternalToPhys))
		for i, sc := range cm.InternalToPhys {
			lin, err := linearFromScale(sc)
			if err != nil {
				return CompuMethod{}, err
			}
			scales[i] = Scale{LowerLimit: toRawLimit(sc.LowerLimit), UpperLimit: toRawLimit(sc.UpperLimit), Linear: &lin}
		}
		return withDefault(cm, CompuMethod{Category: cm.Category, Scales: scales}), nil

	case types.CompuScaleRatFunc:
		scales := make([]Scale, len(cm.InternalToPhys))
		for i, sc := range cm.InternalToPhys {
			if allZeroCoeffs(sc.Denominator.Coeffs) {
				return CompuMethod{}, &mcderr.SemanticError{NodeName: "COMPU-METHOD", Detail: "SCALE-RAT-FUNC scale has an identically-zero denominator"}
			}
			rat := Rational{Num: sc.Numerator.Coeffs, Den: sc.Denominator.Coeffs}
			scales[i] = Scale{LowerLimit: toRawLimit(sc.LowerLimit), UpperLimit: toRawLimit(sc.UpperLimit), Rational: &rat}
		}
		return withDefault(cm, CompuMethod{Category: cm.Category, Scales: scales}), nil

	case types.CompuTextTable:
		scales := make([]Scale, len(cm.InternalToPhys))
		for i, sc := range cm.InternalToPhys {
			text, _ := sc.CompuConst.(string)
			scales[i] = Scale{LowerLimit: toRawLimit(sc.LowerLimit), UpperLimit: toRawLimit(sc.UpperLimit), Text: text, IsText: true}
		}
		return withDefault(cm, CompuMethod{Category: cm.Category, Scales: scales}), nil

	case types.CompuTabIntp:
		if len(cm.InternalToPhys) < 2 {
			return CompuMethod{}, &mcderr.SemanticError{NodeName: "COMPU-METHOD", Detail: "TAB-INTP requires at least two COMPU-SCALEs"}
		}
		scales := make([]Scale, len(cm.InternalToPhys))
		for i, sc := range cm.InternalToPhys {
			scales[i] = Scale{LowerLimit: toRawLimit(sc.LowerLimit), UpperLimit: toRawLimit(sc.UpperLimit)}
		}
		return CompuMethod{Category: cm.Category, Scales: scales}, nil

	default:
		return CompuMethod{}, &mcderr.SemanticError{NodeName: "COMPU-METHOD", Detail: fmt.Sprintf("unknown compu_category %d", cm.Category)}
	}
}

func withDefault(src rawobj.CompuMethod, out CompuMethod) CompuMethod {
	if src.DefaultValueIsSet {
		out.HasDefault = true
		out.DefaultValue = src.DefaultValue
	}
	return out
}

func linearFromScale(sc rawobj.CompuScale) (Linear, error) {
	divisor := 1.0
	if len(sc.Denominator.Coeffs) > 0 {
		divisor = sc.Denominator.Coeffs[0]
	}
	if divisor == 0 {
		return Linear{}, &mcderr.SemanticError{NodeName: "COMPU-SCALE", Detail: "LINEAR divisor is zero"}
	}
	var offset, factor float64
	if len(sc.Numerator.Coeffs) > 0 {
		offset = sc.Numerator.Coeffs[0]
	}
	if len(sc.Numerator.Coeffs) > 1 {
		factor = sc.Numerator.Coeffs[1]
	}
	return Linear{Offset: offset, Factor: factor, Divisor: divisor}, nil
}

func allZeroCoeffs(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

func toRawLimit(l rawobj.Limit) rawLimit {
	return rawLimit{Kind: l.Kind, Value: l.Value}
}

func buildStructure(s *rawobj.Structure, resolver interfaces.ReferenceResolver) (*Structure, error) {
	out := &Structure{
		LongName:    s.LongName,
		Description: s.Description,
		HasByteSize: s.HasByteSize,
		ByteSize:    s.ByteSize,
	}
	for _, p := range s.Parameters {
		param, err := buildParameter(&p, resolver)
		if err != nil {
			// A recoverable node-level failure still leaves param
			// partially built with LoadError set; sibling parameters
			// and this one both survive into the tree (§4.G).
			if _, ok := err.(*mcderr.NodeError); !ok {
				return nil, err
			}
		}
		if param.ParameterType == types.ParamReserved {
			continue
		}
		out.Parameters = append(out.Parameters, *param)
	}
	return out, nil
}

func resolveStructure(ref rawobj.Reference, resolver interfaces.ReferenceResolver) (Structure, error) {
	raw, err := resolveRef(resolver, ref)
	if err != nil {
		return Structure{}, err
	}
	rs, ok := raw.(*rawobj.Structure)
	if !ok {
		return Structure{}, &mcderr.FormatError{Context: "field structure", Detail: fmt.Sprintf("reference resolved to %T, want *rawobj.Structure", raw)}
	}
	built, err := buildStructure(rs, resolver)
	if err != nil {
		return Structure{}, err
	}
	return *built, nil
}

func buildStaticField(f *rawobj.StaticField, resolver interfaces.ReferenceResolver) (*StaticField, error) {
	st, err := resolveStructure(f.StructureRef, resolver)
	if err != nil {
		return nil, err
	}
	return &StaticField{
		FieldBase:          FieldBase{BytePosition: f.BytePosition, Structure: st},
		FixedNumberOfItems: f.FixedNumberOfItems,
		ItemByteSize:       f.ItemByteSize,
	}, nil
}

func buildDynamicLengthField(f *rawobj.DynamicLengthField, resolver interfaces.ReferenceResolver) (*DynamicLengthField, error) {
	st, err := resolveStructure(f.StructureRef, resolver)
	if err != nil {
		return nil, err
	}
	rawDOP, err := resolveRef(resolver, f.DetermineNumberOfItemsRef)
	if err != nil {
		return nil, err
	}
	dopNode, err := (&Builder{}).Build(rawDOP, resolver)
	if err != nil {
		return nil, err
	}
	return &DynamicLengthField{
		FieldBase:              FieldBase{BytePosition: f.BytePosition, Structure: st},
		DetermineNumberOfItems: dopNode,
		Offset:                 f.Offset,
	}, nil
}

func buildDynamicEndmarkerField(f *rawobj.DynamicEndmarkerField, resolver interfaces.ReferenceResolver) (*DynamicEndmarkerField, error) {
	st, err := resolveStructure(f.StructureRef, resolver)
	if err != nil {
		return nil, err
	}
	rawDOP, err := resolveRef(resolver, f.TerminationDOPRef)
	if err != nil {
		return nil, err
	}
	dopNode, err := (&Builder{}).Build(rawDOP, resolver)
	if err != nil {
		return nil, err
	}
	return &DynamicEndmarkerField{
		FieldBase:        FieldBase{BytePosition: f.BytePosition, Structure: st},
		TerminationDOP:   dopNode,
		TerminationValue: f.TerminationValue,
	}, nil
}

func buildEndOfPduField(f *rawobj.EndOfPduField, resolver interfaces.ReferenceResolver) (*EndOfPduField, error) {
	st, err := resolveStructure(f.StructureRef, resolver)
	if err != nil {
		return nil, err
	}
	return &EndOfPduField{FieldBase: FieldBase{BytePosition: f.BytePosition, Structure: st}}, nil
}

func buildMux(m *rawobj.Multiplexer, resolver interfaces.ReferenceResolver) (*Mux, error) {
	rawSKDOP, err := resolveRef(resolver, m.SwitchKey.DOPRef)
	if err != nil {
		return nil, err
	}
	skDOPNode, err := (&Builder{}).Build(rawSKDOP, resolver)
	if err != nil {
		return nil, err
	}
	if dop, ok := skDOPNode.(*DOP); ok {
		if m.SwitchKey.BitPosition < 0 || m.SwitchKey.BitPosition > 7 {
			return nil, &mcderr.SemanticError{NodeName: "MCD_DB_PARAMETER_MULTIPLEXER", Detail: "switch_key bit_position out of [0,7]"}
		}
		if dop.DiagCodedType.Kind != types.StandardLengthType {
			return nil, &mcderr.SemanticError{NodeName: "MCD_DB_PARAMETER_MULTIPLEXER", Detail: "switch_key diag_coded_type must be STANDARD-LENGTH-TYPE"}
		}
	}

	out := &Mux{
		BytePosition: m.BytePosition,
		SwitchKey: SwitchKey{
			DOP:          skDOPNode,
			BytePosition: m.SwitchKey.BytePosition,
			BitPosition:  m.SwitchKey.BitPosition,
		},
	}

	for _, c := range m.Cases {
		st, err := resolveStructure(c.StructureRef, resolver)
		if err != nil {
			return nil, err
		}
		out.Cases = append(out.Cases, Case{
			ShortName:  c.ShortName,
			Structure:  st,
			LowerLimit: normalizeCaseLimit(c.LowerLimit),
			UpperLimit: normalizeCaseLimit(c.UpperLimit),
		})
	}

	if m.HasDefault {
		st, err := resolveStructure(m.Default.StructureRef, resolver)
		if err != nil {
			return nil, err
		}
		out.HasDefault = true
		out.Default = Case{ShortName: m.Default.ShortName, Structure: st}
	}

	return out, nil
}

// normalizeCaseLimit keeps a limit's value as a number when it already
// is one; non-numeric (swapped case-name) limits are retained as their
// original string rather than erroring (§9).
func normalizeCaseLimit(l rawobj.Limit) any {
	return l.Value
}

func buildDTC(d *rawobj.DOPDTC) (*DTC, error) {
	out := &DTC{}
	for _, def := range d.Definitions {
		out.Definitions = append(out.Definitions, DTCDefinition{
			TroubleCode: def.TroubleCode,
			DTCText:     def.DTCText,
			Level:       def.Level,
			Description: def.Description,
		})
	}
	return out, nil
}
