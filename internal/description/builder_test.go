package description

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nexusauto/mcd2d/internal/interfaces"
	"github.com/nexusauto/mcd2d/internal/mcderr"
	"github.com/nexusauto/mcd2d/internal/rawobj"
	"github.com/nexusauto/mcd2d/internal/types"
)

// stubResolver serves canned raw objects by object id.
type stubResolver struct {
	objects map[string]any
}

func (r *stubResolver) LoadByID(poolID, objectID string) (any, error) {
	return r.objects[objectID], nil
}

func (r *stubResolver) LoadByReference(ref interfaces.Reference) (any, error) {
	return r.objects[ref.ObjectID], nil
}

func (r *stubResolver) LoadDOPWithoutPool(layers []any, ref interfaces.Reference) (any, error) {
	return r.objects[ref.ObjectID], nil
}

func TestNormalizeCompuMethodLinearMatchesScenario3(t *testing.T) {
	raw := rawobj.CompuMethod{
		Category: types.CompuLinear,
		InternalToPhys: []rawobj.CompuScale{
			{Numerator: rawobj.RationalCoeffs{Coeffs: []float64{0, 0.75}}},
		},
	}
	cm, err := normalizeCompuMethod(raw, types.AUint32, types.AFloat32)
	require.NoError(t, err)
	require.Len(t, cm.Scales, 1)
	require.NotNil(t, cm.Scales[0].Linear)
	require.Equal(t, 0.0, cm.Scales[0].Linear.Offset)
	require.Equal(t, 0.75, cm.Scales[0].Linear.Factor)
	require.Equal(t, 1.0, cm.Scales[0].Linear.Divisor)
}

func TestNormalizeCompuMethodLinearRequiresExactlyOneScale(t *testing.T) {
	raw := rawobj.CompuMethod{Category: types.CompuLinear}
	_, err := normalizeCompuMethod(raw, types.AUint32, types.AFloat32)
	require.Error(t, err)

	var semErr *mcderr.SemanticError
	require.ErrorAs(t, err, &semErr)
}

func TestNormalizeCompuMethodIdenticalRejectsScales(t *testing.T) {
	raw := rawobj.CompuMethod{
		Category:       types.CompuIdentical,
		InternalToPhys: []rawobj.CompuScale{{}},
	}
	_, err := normalizeCompuMethod(raw, types.AUint32, types.AUint32)
	require.Error(t, err)
}

func TestNormalizeCompuMethodIdenticalRejectsTypeMismatch(t *testing.T) {
	raw := rawobj.CompuMethod{Category: types.CompuIdentical}
	_, err := normalizeCompuMethod(raw, types.AUint32, types.AFloat32)
	require.Error(t, err)
}

func TestNormalizeCompuMethodScaleRatFuncRejectsZeroDenominator(t *testing.T) {
	raw := rawobj.CompuMethod{
		Category: types.CompuScaleRatFunc,
		InternalToPhys: []rawobj.CompuScale{
			{Numerator: rawobj.RationalCoeffs{Coeffs: []float64{1}}, Denominator: rawobj.RationalCoeffs{Coeffs: []float64{0}}},
		},
	}
	_, err := normalizeCompuMethod(raw, types.AUint32, types.AFloat32)
	require.Error(t, err)
}

func TestNormalizeCompuMethodTabIntpRequiresTwoScales(t *testing.T) {
	raw := rawobj.CompuMethod{Category: types.CompuTabIntp, InternalToPhys: []rawobj.CompuScale{{}}}
	_, err := normalizeCompuMethod(raw, types.AUint32, types.AFloat32)
	require.Error(t, err)
}

func TestNormalizeDiagCodedTypeParamLengthInfoRequiresLengthKey(t *testing.T) {
	dct := rawobj.DiagCodedType{Kind: types.ParamLengthInfoType}
	_, err := normalizeDiagCodedType(dct)
	require.Error(t, err)
}

func TestBuildParameterRejectsBitPositionOutOfRange(t *testing.T) {
	p := &rawobj.ParameterSimple{ShortName: "x", BitPosition: 8, ParameterType: types.ParamValue}
	_, err := buildParameter(p, nil)
	require.Error(t, err)
}

func TestBuildStructureKeepsParameterWithRecoverableBitLengthError(t *testing.T) {
	resolver := &stubResolver{objects: map[string]any{
		"badLength": &rawobj.DOPSimpleBase{
			DiagCodedType: rawobj.DiagCodedType{Kind: types.StandardLengthType, BaseDataType: types.AUint32, BitLength: 40, Endianness: types.BigEndian},
			PhysicalType:  rawobj.PhysicalType{BaseDataType: types.AUint32},
			CompuMethod:   rawobj.CompuMethod{Category: types.CompuIdentical},
		},
		"dop8": &rawobj.DOPSimpleBase{
			DiagCodedType: rawobj.DiagCodedType{Kind: types.StandardLengthType, BaseDataType: types.AUint32, BitLength: 8, Endianness: types.BigEndian},
			PhysicalType:  rawobj.PhysicalType{BaseDataType: types.AUint32},
			CompuMethod:   rawobj.CompuMethod{Category: types.CompuIdentical},
		},
	}}

	raw := &rawobj.Structure{
		LongName: "WithBadParam",
		Parameters: []rawobj.ParameterSimple{
			{ShortName: "broken", ParameterType: types.ParamValue, DOPRef: rawobj.Reference{PoolID: "p", ObjectID: "badLength"}},
			{ShortName: "ok", ParameterType: types.ParamValue, DOPRef: rawobj.Reference{PoolID: "p", ObjectID: "dop8"}},
		},
	}

	node, err := (&Builder{}).Build(raw, resolver)
	require.NoError(t, err)

	s, ok := node.(*Structure)
	require.True(t, ok)
	require.Len(t, s.Parameters, 2)

	require.NotNil(t, s.Parameters[0].LoadError)
	require.NotNil(t, s.Parameters[0].DOP)

	require.Nil(t, s.Parameters[1].LoadError)
}
