package rawobj

import (
	"fmt"

	"github.com/nexusauto/mcd2d/internal/interfaces"
	"github.com/nexusauto/mcd2d/internal/mcderr"
	"github.com/nexusauto/mcd2d/internal/types"
)

// NewRegistry builds the static tag->loader dispatch table (§9: a
// plain map literal, never reflection).
func NewRegistry() interfaces.Registry {
	return staticRegistry{loaders: map[uint16]interfaces.ObjectLoader{
		uint16(types.ObjDbLayerData):                      loadLayerData,
		uint16(types.ObjDbDopSimpleBase):                  loadDOPSimpleBase,
		uint16(types.ObjDbDiagCodedType):                  loadDiagCodedTypeObj,
		uint16(types.ObjDbCompuMethod):                    loadCompuMethod,
		uint16(types.ObjDbLimit):                          loadLimitObj,
		uint16(types.ObjDbPhysicalType):                   loadPhysicalType,
		uint16(types.ObjDbScaleConstraint):                loadScaleConstraintObj,
		uint16(types.ObjMcdDbParameterSimple):              loadParameterSimple,
		uint16(types.ObjMcdDbParameterStructure):           loadStructure,
		uint16(types.ObjMcdDbParameterStaticField):         loadStaticField,
		uint16(types.ObjMcdDbParameterDynamicLength):       loadDynamicLengthField,
		uint16(types.ObjMcdDbParameterDynamicEndmarker):    loadDynamicEndmarkerField,
		uint16(types.ObjMcdDbParameterEndOfPdu):            loadEndOfPduField,
		uint16(types.ObjDbSwitchKey):                       loadSwitchKey,
		uint16(types.ObjDbCase):                            loadCase,
		uint16(types.ObjMcdDbParameterMultiplexer):         loadMultiplexer,
		uint16(types.ObjDbDopDtc):                          loadDOPDTC,
		uint16(types.ObjMcdDbDiagTroubleCode):               loadDTCDefinition,
		uint16(types.ObjMcdInterval):                       loadIntervalObj,
		uint16(types.ObjMcdDbUnit):                         loadUnit,
		uint16(types.ObjMcdDbUnitGroup):                    loadUnitGroup,
		uint16(types.ObjMcdDbPhysicalDimension):            loadPhysicalDimension,
	}}
}

type staticRegistry struct {
	loaders map[uint16]interfaces.ObjectLoader
}

func (r staticRegistry) Loader(tag uint16) (interfaces.ObjectLoader, bool) {
	l, ok := r.loaders[tag]
	return l, ok
}

// --- shared field readers -------------------------------------------------

func readReference(s interfaces.ObjectStream) (Reference, error) {
	poolID, _, err := s.AsciiString()
	if err != nil {
		return Reference{}, err
	}
	objectID, _, err := s.AsciiString()
	if err != nil {
		return Reference{}, err
	}
	return Reference{PoolID: poolID, ObjectID: objectID}, nil
}

func readOptionalReference(s interfaces.ObjectStream, reg interfaces.Registry) (Reference, bool, error) {
	present, err := s.U8()
	if err != nil {
		return Reference{}, false, err
	}
	if present == 0 {
		return Reference{}, false, nil
	}
	ref, err := readReference(s)
	if err != nil {
		return Reference{}, false, err
	}
	return ref, true, nil
}

func readLimit(s interfaces.ObjectStream) (Limit, error) {
	kindByte, err := s.U8()
	if err != nil {
		return Limit{}, err
	}
	kind := types.LimitKind(kindByte)
	if kind == types.LimitInfinite {
		return Limit{Kind: kind}, nil
	}
	v, err := s.F64LE()
	if err != nil {
		return Limit{}, err
	}
	return Limit{Kind: kind, Value: v}, nil
}

func readInterval(s interfaces.ObjectStream) (Interval, error) {
	lower, err := readLimit(s)
	if err != nil {
		return Interval{}, err
	}
	upper, err := readLimit(s)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Lower: lower, Upper: upper}, nil
}

func readRationalCoeffs(s interfaces.ObjectStream) (RationalCoeffs, error) {
	n, err := s.U8()
	if err != nil {
		return RationalCoeffs{}, err
	}
	coeffs := make([]float64, n)
	for i := range coeffs {
		coeffs[i], err = s.F64LE()
		if err != nil {
			return RationalCoeffs{}, err
		}
	}
	return RationalCoeffs{Coeffs: coeffs}, nil
}

func readStringMap(s interfaces.ObjectStream) (map[string]Reference, error) {
	n, err := s.U16LE()
	if err != nil {
		return nil, err
	}
	out := make(map[string]Reference, n)
	for i := uint16(0); i < n; i++ {
		key, _, err := s.AsciiString()
		if err != nil {
			return nil, err
		}
		ref, err := readReference(s)
		if err != nil {
			return nil, err
		}
		out[key] = ref
	}
	return out, nil
}

// --- loaders ---------------------------------------------------------------

func loadLayerData(s interfaces.ObjectStream, reg interfaces.Registry) (any, error) {
	name, _, err := s.AsciiString()
	if err != nil {
		return nil, err
	}
	stack, _, err := s.AsciiString()
	if err != nil {
		return nil, err
	}
	loc, err := s.U16LE()
	if err != nil {
		return nil, err
	}

	parentCount, err := s.U16LE()
	if err != nil {
		return nil, err
	}
	parents := make([]string, parentCount)
	for i := range parents {
		parents[i], _, err = s.AsciiString()
		if err != nil {
			return nil, err
		}
	}

	dopRefs, err := readStringMap(s)
	if err != nil {
		return nil, err
	}
	comParamRefs, err := readStringMap(s)
	if err != nil {
		return nil, err
	}
	diagComObjRefs, err := readStringMap(s)
	if err != nil {
		return nil, err
	}
	ecuStateRefs, err := readStringMap(s)
	if err != nil {
		return nil, err
	}
	subComponent, err := readStringMap(s)
	if err != nil {
		return nil, err
	}
	additionalAud, err := readStringMap(s)
	if err != nil {
		return nil, err
	}
	specialDataRefs, err := readStringMap(s)
	if err != nil {
		return nil, err
	}

	// The source treats several of these maps as fatal if non-empty on
	// most layer kinds (ECU state chart, sub-component, additional
	// audience, diag-com-object, special-data-group refs); this rewrite
	// keeps them as ordinary loaded data instead of asserting layer-kind-
	// specific emptiness, and no other part of this module checks them
	// for emptiness either.

	return &LayerData{
		Name:            name,
		ProtocolStack:   stack,
		Location:        types.LocationType(loc),
		ParentLayers:    parents,
		DOPRefs:         dopRefs,
		ComParamRefs:    comParamRefs,
		DiagComObjRefs:  diagComObjRefs,
		EcuStateRefs:    ecuStateRefs,
		SubComponent:    subComponent,
		AdditionalAud:   additionalAud,
		SpecialDataRefs: specialDataRefs,
	}, nil
}

func loadDiagCodedTypeObj(s interfaces.ObjectStream, reg interfaces.Registry) (any, error) {
	dct, err := readDiagCodedType(s)
	if err != nil {
		return nil, err
	}
	return &dct, nil
}

func readDiagCodedType(s interfaces.ObjectStream) (DiagCodedType, error) {
	kindByte, err := s.U8()
	if err != nil {
		return DiagCodedType{}, err
	}
	baseByte, err := s.U8()
	if err != nil {
		return DiagCodedType{}, err
	}
	encByte, err := s.U8()
	if err != nil {
		return DiagCodedType{}, err
	}
	endByte, err := s.U8()
	if err != nil {
		return DiagCodedType{}, err
	}

	dct := DiagCodedType{
		Kind:         types.DiagCodedTypeKind(kindByte),
		BaseDataType: types.BaseDataType(baseByte),
		Encoding:     types.Encoding(encByte),
		Endianness:   types.Endianness(endByte),
	}

	switch dct.Kind {
	case types.StandardLengthType:
		bitLen, err := s.U16LE()
		if err != nil {
			return DiagCodedType{}, err
		}
		dct.BitLength = int(bitLen)

		hasMask, err := s.U8()
		if err != nil {
			return DiagCodedType{}, err
		}
		if hasMask != 0 {
			mask, err := s.U32LE()
			if err != nil {
				return DiagCodedType{}, err
			}
			dct.HasBitMask = true
			dct.BitMask = uint64(mask)
			condensed, err := s.U8()
			if err != nil {
				return DiagCodedType{}, err
			}
			dct.CondensedBitMask = condensed != 0
		}
	case types.LeadingLengthInfoType:
		bitLen, err := s.U16LE()
		if err != nil {
			return DiagCodedType{}, err
		}
		dct.BitLength = int(bitLen)
	case types.MinMaxLengthType:
		minLen, err := s.U32LE()
		if err != nil {
			return DiagCodedType{}, err
		}
		maxLen, err := s.U32LE()
		if err != nil {
			return DiagCodedType{}, err
		}
		termByte, err := s.U8()
		if err != nil {
			return DiagCodedType{}, err
		}
		dct.MinLength = int(minLen)
		dct.MaxLength = int(maxLen)
		dct.Termination = types.Termination(termByte)
	case types.ParamLengthInfoType:
		ref, err := readReference(s)
		if err != nil {
			return DiagCodedType{}, err
		}
		dct.LengthKeyRef = ref
	default:
		return DiagCodedType{}, &mcderr.FormatError{Context: "DB_DIAG_CODED_TYPE", Detail: fmt.Sprintf("unknown kind %d", kindByte)}
	}

	if !validEncodingForBaseType(dct.BaseDataType, dct.Encoding) {
		return DiagCodedType{}, &mcderr.SemanticError{
			NodeName: "DB_DIAG_CODED_TYPE",
			Detail:   fmt.Sprintf("encoding %s is not valid for base type %s", dct.Encoding, dct.BaseDataType),
		}
	}

	return dct, nil
}

// validEncodingForBaseType mirrors initEncoding's fatal-mismatch check:
// each base type admits only a fixed set of encodings.
func validEncodingForBaseType(b types.BaseDataType, e types.Encoding) bool {
	switch b {
	case types.AUint32:
		switch e {
		case types.EncodingNone, types.EncodingBCDP, types.EncodingBitfield:
			return true
		}
	case types.AInt32:
		switch e {
		case types.EncodingSM, types.EncodingOnesComplement, types.EncodingTwosComplement:
			return true
		}
	case types.AFloat32, types.AFloat64:
		return e == types.EncodingIEEE754
	case types.AAsciiString:
		return e == types.EncodingISO88591
	case types.AUtf8String:
		return e == types.EncodingUTF8
	case types.AUnicode2String:
		return e == types.EncodingUCS2
	case types.AByteField:
		return e == types.EncodingNone || e == types.EncodingConstruct
	}
	return false
}

func loadCompuMethod(s interfaces.ObjectStream, reg interfaces.Registry) (any, error) {
	catByte, err := s.U8()
	if err != nil {
		return nil, err
	}
	cm := CompuMethod{Category: types.CompuCategory(catByte)}

	hasI2P, err := s.U8()
	if err != nil {
		return nil, err
	}
	if hasI2P != 0 {
		scales, err := readCompuScales(s)
		if err != nil {
			return nil, err
		}
		cm.InternalToPhys = scales
	}

	hasP2I, err := s.U8()
	if err != nil {
		return nil, err
	}
	if hasP2I != 0 {
		scales, err := readCompuScales(s)
		if err != nil {
			return nil, err
		}
		cm.PhysToInternal = scales
	}

	hasDefault, err := s.U8()
	if err != nil {
		return nil, err
	}
	if hasDefault != 0 {
		v, err := s.F64LE()
		if err != nil {
			return nil, err
		}
		cm.DefaultValueIsSet = true
		cm.DefaultValue = v
	}

	switch cm.Category {
	case types.CompuLinear:
		if len(cm.InternalToPhys) != 1 {
			return nil, &mcderr.SemanticError{NodeName: "DB_COMPU_METHOD", Detail: "LINEAR requires exactly one COMPU-SCALE"}
		}
	case types.CompuScaleRatFunc:
		for _, sc := range cm.InternalToPhys {
			if allZero(sc.Denominator.Coeffs) {
				return nil, &mcderr.SemanticError{NodeName: "DB_COMPU_METHOD", Detail: "SCALE-RAT-FUNC denominator is identically zero"}
			}
		}
	case types.CompuTabIntp:
		if len(cm.InternalToPhys) < 2 {
			return nil, &mcderr.SemanticError{NodeName: "DB_COMPU_METHOD", Detail: "TAB-INTP requires at least two COMPU-SCALEs"}
		}
	}

	return &cm, nil
}

func allZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

func readCompuScales(s interfaces.ObjectStream) ([]CompuScale, error) {
	n, err := s.U16LE()
	if err != nil {
		return nil, err
	}
	out := make([]CompuScale, n)
	for i := range out {
		lower, err := readLimit(s)
		if err != nil {
			return nil, err
		}
		upper, err := readLimit(s)
		if err != nil {
			return nil, err
		}
		num, err := readRationalCoeffs(s)
		if err != nil {
			return nil, err
		}
		den, err := readRationalCoeffs(s)
		if err != nil {
			return nil, err
		}
		label, _, err := s.AsciiString()
		if err != nil {
			return nil, err
		}
		hasConst, err := s.U8()
		if err != nil {
			return nil, err
		}
		var compuConst any
		if hasConst != 0 {
			compuConst, _, err = s.UnicodeString()
			if err != nil {
				return nil, err
			}
		}
		out[i] = CompuScale{
			LowerLimit:  lower,
			UpperLimit:  upper,
			Numerator:   num,
			Denominator: den,
			Label:       label,
			CompuConst:  compuConst,
		}
	}
	return out, nil
}

func loadLimitObj(s interfaces.ObjectStream, reg interfaces.Registry) (any, error) {
	l, err := readLimit(s)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func loadIntervalObj(s interfaces.ObjectStream, reg interfaces.Registry) (any, error) {
	iv, err := readInterval(s)
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

func loadPhysicalType(s interfaces.ObjectStream, reg interfaces.Registry) (any, error) {
	baseByte, err := s.U8()
	if err != nil {
		return nil, err
	}
	radixByte, err := s.U8()
	if err != nil {
		return nil, err
	}
	hasPrecision, err := s.U8()
	if err != nil {
		return nil, err
	}
	pt := PhysicalType{BaseDataType: types.BaseDataType(baseByte), DisplayRadix: types.DisplayRadix(radixByte)}
	if hasPrecision != 0 {
		prec, err := s.U8()
		if err != nil {
			return nil, err
		}
		pt.HasPrecision = true
		pt.Precision = int(prec)
	}
	return &pt, nil
}

func loadScaleConstraintObj(s interfaces.ObjectStream, reg interfaces.Registry) (any, error) {
	rng, err := readInterval(s)
	if err != nil {
		return nil, err
	}
	dataType, err := s.U8()
	if err != nil {
		return nil, err
	}
	validity, err := s.U8()
	if err != nil {
		return nil, err
	}
	label, _, err := s.AsciiString()
	if err != nil {
		return nil, err
	}
	return &ScaleConstraint{
		Range:    rng,
		DataType: types.BaseDataType(dataType),
		Validity: types.Validity(validity),
		Label:    label,
	}, nil
}

func loadDOPSimpleBase(s interfaces.ObjectStream, reg interfaces.Registry) (any, error) {
	dctObj, present, err := s.Object(reg)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, &mcderr.SemanticError{NodeName: "DB_DOP_SIMPLE_BASE", Detail: "missing required diag_coded_type"}
	}
	dct, ok := dctObj.(*DiagCodedType)
	if !ok {
		return nil, &mcderr.FormatError{Context: "DB_DOP_SIMPLE_BASE", Detail: "diag_coded_type has the wrong object type"}
	}

	ptObj, present, err := s.Object(reg)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, &mcderr.SemanticError{NodeName: "DB_DOP_SIMPLE_BASE", Detail: "missing required physical_type"}
	}
	pt, ok := ptObj.(*PhysicalType)
	if !ok {
		return nil, &mcderr.FormatError{Context: "DB_DOP_SIMPLE_BASE", Detail: "physical_type has the wrong object type"}
	}

	cmObj, present, err := s.Object(reg)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, &mcderr.SemanticError{NodeName: "DB_DOP_SIMPLE_BASE", Detail: "missing required compu_method"}
	}
	cm, ok := cmObj.(*CompuMethod)
	if !ok {
		return nil, &mcderr.FormatError{Context: "DB_DOP_SIMPLE_BASE", Detail: "compu_method has the wrong object type"}
	}

	unitRef, hasUnit, err := readOptionalReference(s, reg)
	if err != nil {
		return nil, err
	}

	internal := Constraint{DataType: dct.BaseDataType}
	hasInternal, err := s.U8()
	if err != nil {
		return nil, err
	}
	if hasInternal != 0 {
		rng, err := readInterval(s)
		if err != nil {
			return nil, err
		}
		internal.Range = rng
	}

	physical := Constraint{DataType: pt.BaseDataType}
	hasPhysical, err := s.U8()
	if err != nil {
		return nil, err
	}
	if hasPhysical != 0 {
		rng, err := readInterval(s)
		if err != nil {
			return nil, err
		}
		physical.Range = rng
	}

	return &DOPSimpleBase{
		DiagCodedType:         *dct,
		PhysicalType:          *pt,
		CompuMethod:           *cm,
		UnitRef:               unitRef,
		HasUnitRef:             hasUnit,
		InternalConstraint:    internal,
		HasInternalConstraint: hasInternal != 0,
		PhysicalConstraint:    physical,
		HasPhysicalConstraint: hasPhysical != 0,
	}, nil
}

func readParameterDefault(s interfaces.ObjectStream) (ParameterDefault, error) {
	dtByte, err := s.U8()
	if err != nil {
		return ParameterDefault{}, err
	}
	dt := types.BaseDataType(dtByte)
	var v any
	switch {
	case dt.IsString():
		v, _, err = s.UnicodeString()
	case dt == types.AFloat32:
		v, err = s.F32LE()
	case dt == types.AFloat64:
		v, err = s.F64LE()
	default:
		v, err = s.U32LE()
	}
	if err != nil {
		return ParameterDefault{}, err
	}
	return ParameterDefault{DataType: dt, Value: v}, nil
}

func loadParameterSimple(s interfaces.ObjectStream, reg interfaces.Registry) (any, error) {
	name, _, err := s.AsciiString()
	if err != nil {
		return nil, err
	}
	bitPos, err := s.U8()
	if err != nil {
		return nil, err
	}
	if bitPos > 7 {
		return nil, &mcderr.SemanticError{NodeName: name, Detail: fmt.Sprintf("bit_position %d out of [0,7]", bitPos)}
	}

	hasBytePos, err := s.U8()
	if err != nil {
		return nil, err
	}
	var bytePos uint32
	if hasBytePos != 0 {
		bytePos, err = s.U32LE()
		if err != nil {
			return nil, err
		}
	}

	paramTypeByte, err := s.U8()
	if err != nil {
		return nil, err
	}
	dopRef, err := readReference(s)
	if err != nil {
		return nil, err
	}

	hasDefault, err := s.U8()
	if err != nil {
		return nil, err
	}
	var def ParameterDefault
	if hasDefault != 0 {
		def, err = readParameterDefault(s)
		if err != nil {
			return nil, err
		}
	}

	return &ParameterSimple{
		ShortName:       name,
		BitPosition:     int(bitPos),
		HasBytePosition: hasBytePos != 0,
		BytePosition:    int(bytePos),
		ParameterType:   types.ParameterType(paramTypeByte),
		DOPRef:          dopRef,
		HasDefault:      hasDefault != 0,
		Default:         def,
	}, nil
}

func loadStructure(s interfaces.ObjectStream, reg interfaces.Registry) (any, error) {
	longName, _, err := s.AsciiString()
	if err != nil {
		return nil, err
	}
	desc, err := s.NativeAsciiString()
	if err != nil {
		return nil, err
	}
	hasByteSize, err := s.U8()
	if err != nil {
		return nil, err
	}
	var byteSize int
	if hasByteSize != 0 {
		n, err := s.U16LE()
		if err != nil {
			return nil, err
		}
		byteSize = int(n)
	}

	count, err := s.U16LE()
	if err != nil {
		return nil, err
	}
	params := make([]ParameterSimple, count)
	for i := range params {
		obj, present, err := s.Object(reg)
		if err != nil {
			return nil, err
		}
		if !present {
			continue
		}
		p, ok := obj.(*ParameterSimple)
		if !ok {
			return nil, &mcderr.FormatError{Context: "MCD_DB_PARAMETER_STRUCTURE", Detail: "child has the wrong object type"}
		}
		params[i] = *p
	}

	return &Structure{
		LongName:    longName,
		Description: desc,
		HasByteSize: hasByteSize != 0,
		ByteSize:    byteSize,
		Parameters:  params,
	}, nil
}

func readFieldBase(s interfaces.ObjectStream) (FieldBase, error) {
	bytePos, err := s.U32LE()
	if err != nil {
		return FieldBase{}, err
	}
	ref, err := readReference(s)
	if err != nil {
		return FieldBase{}, err
	}
	return FieldBase{BytePosition: int(bytePos), StructureRef: ref}, nil
}

func loadStaticField(s interfaces.ObjectStream, reg interfaces.Registry) (any, error) {
	base, err := readFieldBase(s)
	if err != nil {
		return nil, err
	}
	n, err := s.U16LE()
	if err != nil {
		return nil, err
	}
	itemSize, err := s.U16LE()
	if err != nil {
		return nil, err
	}
	return &StaticField{FieldBase: base, FixedNumberOfItems: int(n), ItemByteSize: int(itemSize)}, nil
}

func loadDynamicLengthField(s interfaces.ObjectStream, reg interfaces.Registry) (any, error) {
	base, err := readFieldBase(s)
	if err != nil {
		return nil, err
	}
	ref, err := readReference(s)
	if err != nil {
		return nil, err
	}
	offset, err := s.U16LE()
	if err != nil {
		return nil, err
	}
	return &DynamicLengthField{FieldBase: base, DetermineNumberOfItemsRef: ref, Offset: int(offset)}, nil
}

func loadDynamicEndmarkerField(s interfaces.ObjectStream, reg interfaces.Registry) (any, error) {
	base, err := readFieldBase(s)
	if err != nil {
		return nil, err
	}
	ref, err := readReference(s)
	if err != nil {
		return nil, err
	}
	val, err := s.F64LE()
	if err != nil {
		return nil, err
	}
	return &DynamicEndmarkerField{FieldBase: base, TerminationDOPRef: ref, TerminationValue: val}, nil
}

func loadEndOfPduField(s interfaces.ObjectStream, reg interfaces.Registry) (any, error) {
	base, err := readFieldBase(s)
	if err != nil {
		return nil, err
	}
	return &EndOfPduField{FieldBase: base}, nil
}

func loadSwitchKey(s interfaces.ObjectStream, reg interfaces.Registry) (any, error) {
	ref, err := readReference(s)
	if err != nil {
		return nil, err
	}
	bytePos, err := s.U16LE()
	if err != nil {
		return nil, err
	}
	bitPos, err := s.U8()
	if err != nil {
		return nil, err
	}
	if bitPos > 7 {
		return nil, &mcderr.SemanticError{NodeName: "DB_SWITCH_KEY", Detail: fmt.Sprintf("bit_position %d out of [0,7]", bitPos)}
	}
	return &SwitchKey{DOPRef: ref, BytePosition: int(bytePos), BitPosition: int(bitPos)}, nil
}

func readCaseBase(s interfaces.ObjectStream) (CaseBase, error) {
	name, _, err := s.AsciiString()
	if err != nil {
		return CaseBase{}, err
	}
	ref, err := readReference(s)
	if err != nil {
		return CaseBase{}, err
	}
	return CaseBase{ShortName: name, StructureRef: ref}, nil
}

func loadCase(s interfaces.ObjectStream, reg interfaces.Registry) (any, error) {
	base, err := readCaseBase(s)
	if err != nil {
		return nil, err
	}
	lower, err := readLimit(s)
	if err != nil {
		return nil, err
	}
	upper, err := readLimit(s)
	if err != nil {
		return nil, err
	}
	if lower.Value == nil && upper.Value == nil {
		return nil, &mcderr.SemanticError{NodeName: base.ShortName, Detail: "case limits must not both be absent"}
	}
	return &Case{CaseBase: base, LowerLimit: lower, UpperLimit: upper}, nil
}

func loadMultiplexer(s interfaces.ObjectStream, reg interfaces.Registry) (any, error) {
	bytePos, err := s.U16LE()
	if err != nil {
		return nil, err
	}
	skObj, present, err := s.Object(reg)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, &mcderr.SemanticError{NodeName: "MCD_DB_PARAMETER_MULTIPLEXER", Detail: "missing required switch_key"}
	}
	sk, ok := skObj.(*SwitchKey)
	if !ok {
		return nil, &mcderr.FormatError{Context: "MCD_DB_PARAMETER_MULTIPLEXER", Detail: "switch_key has the wrong object type"}
	}

	count, err := s.U16LE()
	if err != nil {
		return nil, err
	}
	cases := make([]Case, count)
	for i := range cases {
		obj, present, err := s.Object(reg)
		if err != nil {
			return nil, err
		}
		if !present {
			continue
		}
		c, ok := obj.(*Case)
		if !ok {
			return nil, &mcderr.FormatError{Context: "MCD_DB_PARAMETER_MULTIPLEXER", Detail: "case has the wrong object type"}
		}
		cases[i] = *c
	}

	hasDefault, err := s.U8()
	if err != nil {
		return nil, err
	}
	var def CaseBase
	if hasDefault != 0 {
		def, err = readCaseBase(s)
		if err != nil {
			return nil, err
		}
	}

	return &Multiplexer{
		BytePosition: int(bytePos),
		SwitchKey:    *sk,
		Cases:        cases,
		HasDefault:   hasDefault != 0,
		Default:      def,
	}, nil
}

func loadDTCDefinition(s interfaces.ObjectStream, reg interfaces.Registry) (any, error) {
	code, err := s.U32LE()
	if err != nil {
		return nil, err
	}
	text, _, err := s.UnicodeString()
	if err != nil {
		return nil, err
	}
	level, err := s.U8()
	if err != nil {
		return nil, err
	}
	desc, err := s.NativeAsciiString()
	if err != nil {
		return nil, err
	}
	longNameID, err := s.U32LE()
	if err != nil {
		return nil, err
	}
	return &DTCDefinition{
		TroubleCode: int(code),
		DTCText:     text,
		Level:       int(level),
		Description: desc,
		LongNameID:  longNameID,
	}, nil
}

func loadDOPDTC(s interfaces.ObjectStream, reg interfaces.Registry) (any, error) {
	refCounter, err := s.U16LE()
	if err != nil {
		return nil, err
	}
	if refCounter != 0 {
		return nil, &mcderr.SemanticError{NodeName: "DB_DOP_DTC", Detail: fmt.Sprintf("ref_counter %d != 0", refCounter)}
	}

	count, err := s.U16LE()
	if err != nil {
		return nil, err
	}
	defs := make([]DTCDefinition, count)
	for i := range defs {
		obj, present, err := s.Object(reg)
		if err != nil {
			return nil, err
		}
		if !present {
			continue
		}
		d, ok := obj.(*DTCDefinition)
		if !ok {
			return nil, &mcderr.FormatError{Context: "DB_DOP_DTC", Detail: "definition has the wrong object type"}
		}
		defs[i] = *d
	}
	return &DOPDTC{Definitions: defs}, nil
}

func loadUnit(s interfaces.ObjectStream, reg interfaces.Registry) (any, error) {
	shortName, _, err := s.AsciiString()
	if err != nil {
		return nil, err
	}
	displayName, err := s.NativeUnicodeString()
	if err != nil {
		return nil, err
	}
	groupRef, hasGroup, err := readOptionalReference(s, reg)
	if err != nil {
		return nil, err
	}
	dimRef, hasDim, err := readOptionalReference(s, reg)
	if err != nil {
		return nil, err
	}
	factor, err := s.F64LE()
	if err != nil {
		return nil, err
	}
	offset, err := s.F64LE()
	if err != nil {
		return nil, err
	}
	u := &Unit{ShortName: shortName, DisplayName: displayName, Factor: factor, Offset: offset}
	if hasGroup {
		u.GroupRef = groupRef
	}
	if hasDim {
		u.DimensionRef = dimRef
	}
	return u, nil
}

func loadUnitGroup(s interfaces.ObjectStream, reg interfaces.Registry) (any, error) {
	shortName, _, err := s.AsciiString()
	if err != nil {
		return nil, err
	}
	n, err := s.U16LE()
	if err != nil {
		return nil, err
	}
	refs := make([]Reference, n)
	for i := range refs {
		refs[i], err = readReference(s)
		if err != nil {
			return nil, err
		}
	}
	return &UnitGroup{ShortName: shortName, UnitRefs: refs}, nil
}

func loadPhysicalDimension(s interfaces.ObjectStream, reg interfaces.Registry) (any, error) {
	shortName, _, err := s.AsciiString()
	if err != nil {
		return nil, err
	}
	exps := make([]int, 7)
	for i := range exps {
		v, err := s.I16LE()
		if err != nil {
			return nil, err
		}
		exps[i] = int(v)
	}
	return &PhysicalDimension{
		ShortName: shortName,
		Length:    exps[0],
		Mass:      exps[1],
		Time:      exps[2],
		Current:   exps[3],
		Temp:      exps[4],
		Mole:      exps[5],
		Luminous:  exps[6],
	}, nil
}
