package decode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nexusauto/mcd2d/internal/description"
	"github.com/nexusauto/mcd2d/internal/interfaces"
	"github.com/nexusauto/mcd2d/internal/rawobj"
	"github.com/nexusauto/mcd2d/internal/types"
)

// stubResolver serves canned raw objects by object id; good enough to
// drive description.Builder the way a real pool-backed resolver would.
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

func uint8DOP() *rawobj.DOPSimpleBase {
	return &rawobj.DOPSimpleBase{
		DiagCodedType: rawobj.DiagCodedType{Kind: types.StandardLengthType, BaseDataType: types.AUint32, BitLength: 8, Endianness: types.BigEndian},
		PhysicalType:  rawobj.PhysicalType{BaseDataType: types.AUint32},
		CompuMethod:   rawobj.CompuMethod{Category: types.CompuIdentical},
	}
}

func TestDecodeTwosComplementNegativeValue(t *testing.T) {
	raw := &rawobj.DOPSimpleBase{
		DiagCodedType: rawobj.DiagCodedType{
			Kind: types.StandardLengthType, BaseDataType: types.AInt32,
			BitLength: 16, Endianness: types.BigEndian, Encoding: types.EncodingTwosComplement,
		},
		PhysicalType: rawobj.PhysicalType{BaseDataType: types.AInt32},
		CompuMethod:  rawobj.CompuMethod{Category: types.CompuIdentical},
	}
	node, err := description.New().Build(raw, nil)
	require.NoError(t, err)

	d := New()
	out, err := d.Decode(node, []byte{0xFF, 0xFE}, 0)
	require.NoError(t, err)

	val, ok := out.(*Val)
	require.True(t, ok)
	require.Equal(t, int32(-2), val.Internal)
	require.Equal(t, int32(-2), val.Physical)
}

func TestDecodeTextTableMapsKnownValue(t *testing.T) {
	raw := &rawobj.DOPSimpleBase{
		DiagCodedType: rawobj.DiagCodedType{Kind: types.StandardLengthType, BaseDataType: types.AUint32, BitLength: 8, Endianness: types.BigEndian},
		PhysicalType:  rawobj.PhysicalType{BaseDataType: types.AUint32},
		CompuMethod: rawobj.CompuMethod{
			Category: types.CompuTextTable,
			InternalToPhys: []rawobj.CompuScale{
				{LowerLimit: rawobj.Limit{Kind: types.LimitClosed, Value: 0.0}, UpperLimit: rawobj.Limit{Kind: types.LimitClosed, Value: 0.0}, CompuConst: "Off"},
				{LowerLimit: rawobj.Limit{Kind: types.LimitClosed, Value: 1.0}, UpperLimit: rawobj.Limit{Kind: types.LimitClosed, Value: 1.0}, CompuConst: "On"},
				{LowerLimit: rawobj.Limit{Kind: types.LimitClosed, Value: 2.0}, UpperLimit: rawobj.Limit{Kind: types.LimitClosed, Value: 2.0}, CompuConst: "Error"},
			},
		},
	}
	node, err := description.New().Build(raw, nil)
	require.NoError(t, err)

	d := New()
	out, err := d.Decode(node, []byte{0x01}, 0)
	require.NoError(t, err)
	val := out.(*Val)
	require.Equal(t, "On", val.Physical)
}

func TestDecodeTextTableUnmatchedValueWithoutDefaultErrors(t *testing.T) {
	raw := &rawobj.DOPSimpleBase{
		DiagCodedType: rawobj.DiagCodedType{Kind: types.StandardLengthType, BaseDataType: types.AUint32, BitLength: 8, Endianness: types.BigEndian},
		PhysicalType:  rawobj.PhysicalType{BaseDataType: types.AUint32},
		CompuMethod: rawobj.CompuMethod{
			Category: types.CompuTextTable,
			InternalToPhys: []rawobj.CompuScale{
				{LowerLimit: rawobj.Limit{Kind: types.LimitClosed, Value: 0.0}, UpperLimit: rawobj.Limit{Kind: types.LimitClosed, Value: 0.0}, CompuConst: "Off"},
				{LowerLimit: rawobj.Limit{Kind: types.LimitClosed, Value: 1.0}, UpperLimit: rawobj.Limit{Kind: types.LimitClosed, Value: 1.0}, CompuConst: "On"},
			},
		},
	}
	node, err := description.New().Build(raw, nil)
	require.NoError(t, err)

	d := New()
	_, err = d.Decode(node, []byte{0x03}, 0)
	require.Error(t, err)
}

func TestDecodeLeadingLengthInfoTypeStringSkipsPrefix(t *testing.T) {
	raw := &rawobj.DOPSimpleBase{
		DiagCodedType: rawobj.DiagCodedType{
			Kind: types.LeadingLengthInfoType, BaseDataType: types.AAsciiString,
			BitLength: 8, Endianness: types.BigEndian,
		},
		PhysicalType: rawobj.PhysicalType{BaseDataType: types.AAsciiString},
		CompuMethod:  rawobj.CompuMethod{Category: types.CompuIdentical},
	}
	node, err := description.New().Build(raw, nil)
	require.NoError(t, err)

	d := New()
	// 0x03 leading-length byte, then "hi!" — the decoded string must be
	// "hi!", not "\x03hi!".
	out, err := d.Decode(node, []byte{0x03, 'h', 'i', '!'}, 0)
	require.NoError(t, err)

	val, ok := out.(*Val)
	require.True(t, ok)
	require.Equal(t, "hi!", val.Internal)
}

func TestDecodeStaticFieldThreeFixedItems(t *testing.T) {
	resolver := &stubResolver{objects: map[string]any{
		"dop16": &rawobj.DOPSimpleBase{
			DiagCodedType: rawobj.DiagCodedType{Kind: types.StandardLengthType, BaseDataType: types.AUint32, BitLength: 16, Endianness: types.BigEndian},
			PhysicalType:  rawobj.PhysicalType{BaseDataType: types.AUint32},
			CompuMethod:   rawobj.CompuMethod{Category: types.CompuIdentical},
		},
		"item": &rawobj.Structure{
			LongName: "Item",
			Parameters: []rawobj.ParameterSimple{
				{ShortName: "v", BitPosition: 0, ParameterType: types.ParamValue, DOPRef: rawobj.Reference{PoolID: "p", ObjectID: "dop16"}},
			},
		},
	}}

	raw := &rawobj.StaticField{
		FieldBase:          rawobj.FieldBase{BytePosition: 0, StructureRef: rawobj.Reference{PoolID: "p", ObjectID: "item"}},
		FixedNumberOfItems: 3,
		ItemByteSize:       2,
	}
	node, err := description.New().Build(raw, resolver)
	require.NoError(t, err)

	d := New()
	out, err := d.Decode(node, []byte{0x00, 0x01, 0x00, 0x02, 0x00, 0x03}, 0)
	require.NoError(t, err)

	fld := out.(*Fld)
	require.Len(t, fld.Children, 3)

	want := []uint32{1, 2, 3}
	for i, child := range fld.Children {
		str := child.(*Str)
		require.Len(t, str.Children, 1)
		par := str.Children[0].(*Par)
		require.Equal(t, want[i], par.Value.Internal)
	}
}

func TestDecodeStructureHonorsExplicitBytePosition(t *testing.T) {
	resolver := &stubResolver{objects: map[string]any{
		"dop8": uint8DOP(),
	}}

	// "second" is pinned to byte 3, skipping over bytes 1 and 2; without
	// honoring byte_position it would decode at byte 1 (right after
	// "first") and read the wrong value.
	raw := &rawobj.Structure{
		LongName: "Gapped",
		Parameters: []rawobj.ParameterSimple{
			{ShortName: "first", ParameterType: types.ParamValue, DOPRef: rawobj.Reference{PoolID: "p", ObjectID: "dop8"}},
			{ShortName: "second", ParameterType: types.ParamValue, DOPRef: rawobj.Reference{PoolID: "p", ObjectID: "dop8"}, HasBytePosition: true, BytePosition: 3},
		},
	}
	node, err := description.New().Build(raw, resolver)
	require.NoError(t, err)

	d := New()
	out, err := d.Decode(node, []byte{0x10, 0xFF, 0xFF, 0x20}, 0)
	require.NoError(t, err)

	str := out.(*Str)
	require.Len(t, str.Children, 2)
	require.Equal(t, uint32(0x10), str.Children[0].(*Par).Value.Internal)
	require.Equal(t, uint32(0x20), str.Children[1].(*Par).Value.Internal)
}

func TestDecodeMuxDispatchesNamedCase(t *testing.T) {
	resolver := &stubResolver{objects: map[string]any{
		"swkey": uint8DOP(),
		"dop8":  uint8DOP(),
		"structA": &rawobj.Structure{
			LongName: "CaseA",
			Parameters: []rawobj.ParameterSimple{
				{ShortName: "val", BitPosition: 0, ParameterType: types.ParamValue, DOPRef: rawobj.Reference{PoolID: "p", ObjectID: "dop8"}},
			},
		},
	}}

	raw := &rawobj.Multiplexer{
		BytePosition: 1,
		SwitchKey:    rawobj.SwitchKey{DOPRef: rawobj.Reference{PoolID: "p", ObjectID: "swkey"}, BytePosition: 0, BitPosition: 0},
		Cases: []rawobj.Case{
			{
				CaseBase:   rawobj.CaseBase{ShortName: "caseA", StructureRef: rawobj.Reference{PoolID: "p", ObjectID: "structA"}},
				LowerLimit: rawobj.Limit{Kind: types.LimitClosed, Value: 1.0},
				UpperLimit: rawobj.Limit{Kind: types.LimitClosed, Value: 1.0},
			},
		},
		HasDefault: true,
		Default:    rawobj.CaseBase{ShortName: "def", StructureRef: rawobj.Reference{PoolID: "p", ObjectID: "structA"}},
	}
	node, err := description.New().Build(raw, resolver)
	require.NoError(t, err)

	d := New()

	out, err := d.Decode(node, []byte{0x01, 0x2A}, 0)
	require.NoError(t, err)
	mux := out.(*MuxOut)
	require.Equal(t, "caseA", mux.CaseName)
	str := mux.Value.(*Str)
	par := str.Children[0].(*Par)
	require.Equal(t, uint32(42), par.Value.Internal)

	out, err = d.Decode(node, []byte{0xFF, 0x00}, 0)
	require.NoError(t, err)
	mux = out.(*MuxOut)
	require.Equal(t, "def", mux.CaseName)
	str = mux.Value.(*Str)
	par = str.Children[0].(*Par)
	require.Equal(t, uint32(0), par.Value.Internal)
}

func TestByteLengthOfFixedWidthDOP(t *testing.T) {
	raw := uint8DOP()
	node, err := description.New().Build(raw, nil)
	require.NoError(t, err)

	d := New()
	n, err := d.ByteLength(node)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestCommercialRoundingHalfAwayFromZero(t *testing.T) {
	require.Equal(t, 3.0, commercialRound(2.5))
	require.Equal(t, -3.0, commercialRound(-2.5))
	require.Equal(t, 2.0, commercialRound(2.4))
}
