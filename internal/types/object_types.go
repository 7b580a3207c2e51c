// Package types holds the closed enumerations that the on-disk format
// draws from: object-type tags, location kinds, pool kinds, and the MCD
// value/data-type vocabulary used by the diagnostic coded types and
// compu-methods.
package types

import "fmt"

// ObjectType is the 16-bit tag read from the first two bytes of every
// object blob and every nested reference site.
type ObjectType uint16

// Object-type tags this module refers to by name; the ones registered in
// rawobj.NewRegistry have a dedicated loader. The full recognized
// vocabulary (271 entries) is in objectTypeNames below.
const (
	ObjDbUnknown                       ObjectType = 0x0000
	ObjDbCase                          ObjectType = 0x0003
	ObjDbCompuBase                     ObjectType = 0x0005
	ObjDbCompuInternalToPhys           ObjectType = 0x0006
	ObjDbCompuMethod                   ObjectType = 0x000A
	ObjDbCompuPhysToInternal           ObjectType = 0x000F
	ObjDbCompuRationalCoeffs           ObjectType = 0x0014
	ObjDbCompuScale                    ObjectType = 0x0019
	ObjDbDefaultCase                   ObjectType = 0x0020
	ObjDbDiagCodedType                 ObjectType = 0x0023
	ObjDbDopDtc                        ObjectType = 0x0028
	ObjDbDopSimpleBase                 ObjectType = 0x002C
	ObjDbLayerData                     ObjectType = 0x0031
	ObjDbInternalConstraint            ObjectType = 0x0032
	ObjDbLimit                         ObjectType = 0x0037
	ObjDbPhysicalType                  ObjectType = 0x003C
	ObjDbScaleConstraint               ObjectType = 0x0048
	ObjDbSwitchKey                     ObjectType = 0x004C
	ObjMcdDbDiagTroubleCode            ObjectType = 0x0057
	ObjMcdDbParameterDynamicEndmarker  ObjectType = 0x0093
	ObjMcdDbParameterDynamicLength     ObjectType = 0x0094
	ObjMcdDbParameterEndOfPdu          ObjectType = 0x0095
	ObjMcdDbParameterMultiplexer       ObjectType = 0x00A0
	ObjMcdDbParameterSimple            ObjectType = 0x00A5
	ObjMcdDbParameterStaticField       ObjectType = 0x00A6
	ObjMcdDbParameterStructure         ObjectType = 0x00AA
	ObjMcdDbUnit                       ObjectType = 0x0102
	ObjMcdDbUnitGroup                  ObjectType = 0x0104
	ObjMcdDbPhysicalDimension          ObjectType = 0x010C
	ObjMcdDbMatchingPatterns           ObjectType = 0x019B
	ObjMcdInterval                     ObjectType = 0x00FB
	ObjMcdInternalConstraint           ObjectType = 0x0200
	ObjMcdScaleConstraint              ObjectType = 0x0202
	ObjMcdConstraint                   ObjectType = 0x0203
)

// String returns the symbolic name of t, or an "unknown (0xNNNN)" fallback.
func (t ObjectType) String() string {
	if n, ok := objectTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("unknown (0x%04X)", uint16(t))
}

// Known reports whether t is in the closed, recognized vocabulary.
// Per the wire format (§6 / §3), an unrecognized tag is a FormatError at
// load time regardless of whether this module implements a loader for it.
func (t ObjectType) Known() bool {
	_, ok := objectTypeNames[t]
	return ok
}

// objectTypeNames is the full recognized tag vocabulary, transcribed
// from the original database dumper's object_types table. Only the
// tags registered in rawobj.NewRegistry have a loader;
// the remainder is carried here so Known()/String() behave correctly
// against any project file, and so a future loader can be added without
// touching this table.
var objectTypeNames = map[ObjectType]string{
	0x0000: "DB_UNKNOWN",
	0x0002: "DB_KEY_VECTOR",
	0x0003: "DB_CASE",
	0x0004: "DB_CASES",
	0x0005: "DB_COMPU_BASE",
	0x0006: "DB_COMPU_INTERNAL_TO_PHYS",
	0x0007: "DB_PROT_PARAM_DATA",
	0x000A: "DB_COMPU_METHOD",
	0x000F: "DB_COMPU_PHYS_TO_INTERNAL",
	0x0014: "DB_COMPU_RATIONAL_COEFFS",
	0x0019: "DB_COMPU_SCALE",
	0x001E: "DB_COMPU_SCALES",
	0x0020: "DB_DEFAULT_CASE",
	0x0021: "DB_ECU_CONFIG_INFO",
	0x0023: "DB_DIAG_CODED_TYPE",
	0x0027: "DB_DOP_BASE",
	0x0028: "DB_DOP_DTC",
	0x0029: "DB_DOP_STRUCT",
	0x002C: "DB_DOP_SIMPLE_BASE",
	0x002D: "DB_ECU_VARIANT_PATTERN",
	0x002E: "DB_ECU_VARIANT_PATTERNS",
	0x002F: "DB_ENV_DATA",
	0x0030: "DB_ENV_DATA_REF_SET",
	0x0031: "DB_LAYER_DATA",
	0x0032: "DB_INTERNAL_CONSTRAINT",
	0x0033: "DB_PROJECT_DATA",
	0x0034: "DB_VEHICLE_INFO_DATA",
	0x0037: "DB_LIMIT",
	0x0038: "DB_MATCHING_PARAMETER",
	0x0039: "DB_MATCHING_PARAMETERS",
	0x003C: "DB_PHYSICAL_TYPE",
	0x0041: "MCD_DB_CODE_INFORMATION",
	0x0042: "MCD_DB_CODE_INFORMATIONS",
	0x0046: "DB_RELATED_SERVICES",
	0x0048: "DB_SCALE_CONSTRAINT",
	0x0049: "DB_SCALE_CONSTRAINTS",
	0x004A: "DB_SERVICE_PROTOCOL_PARAMETER",
	0x004B: "DB_SERVICE_PROTOCOL_PARAMETERS",
	0x004C: "DB_SWITCH_KEY",
	0x004D: "MCD_ACCESS_KEY",
	0x004E: "MCD_DB_ACCESS_LEVEL",
	0x004F: "MCD_DB_CONTROL_PRIMITIVES",
	0x0050: "MCD_DB_CONTROL_PRIMITIVE_REFERENCES",
	0x0051: "MCD_DB_DATA_PRIMITIVES",
	0x0052: "MCD_DB_DATA_PRIMITIVE_REFERENCES",
	0x0053: "MCD_DB_DIAG_COM_PRIMITIVES",
	0x0054: "MCD_DB_DIAG_COM_PRIMITIVE_REFERENCES",
	0x0055: "MCD_DB_DIAG_SERVICES",
	0x0056: "MCD_DB_DIAG_SERVICE_REFERENCES",
	0x0057: "MCD_DB_DIAG_TROUBLE_CODE",
	0x0058: "MCD_DB_DIAG_TROUBLE_CODES",
	0x0059: "MCD_DB_DIAG_TROUBLE_CODE_REFERENCES",
	0x005A: "MCD_DB_ECU_BASE_VARIANT",
	0x005B: "MCD_DB_ECU_BASE_VARIANTS",
	0x005C: "MCD_DB_ECU_VARIANT",
	0x005D: "MCD_DB_ECU_VARIANTS",
	0x005E: "MCD_DB_FUNCTIONAL_CLASS",
	0x005F: "MCD_DB_FUNCTIONAL_CLASSES",
	0x0060: "MCD_DB_FUNCTIONAL_CLASS_REFERENCES",
	0x0061: "MCD_DB_FUNCTIONAL_GROUPS",
	0x0062: "MCD_DB_HELP_SERVICE_REFERENCES",
	0x0063: "MCD_DB_INPUT_PARAM",
	0x0064: "MCD_DB_JOB",
	0x0065: "MCD_DB_JOB_REFERENCES",
	0x0066: "MCD_DB_JOBS",
	0x0067: "MCD_DB_LOCATION",
	0x0068: "MCD_DB_LOCATION_REFERENCES",
	0x0069: "MCD_DB_LOCATIONS",
	0x006A: "MCD_DB_LOGICAL_LINK",
	0x006B: "MCD_DB_LOGICAL_LINKS",
	0x006C: "MCD_DB_LOGICAL_LINK_REFERENCES",
	0x006D: "MCD_DB_PARAMETERS",
	0x006E: "MCD_DB_PHYSICAL_VEHICLE_LINK_OR_INTERFACE",
	0x006F: "MCD_DB_PHYSICAL_VEHICLE_LINK_OR_INTERFACES",
	0x0071: "MCD_DB_PROJECT",
	0x0072: "MCD_DB_PROTOCOL_PARAMETER",
	0x0073: "MCD_DB_PROTOCOL_PARAMETER_SET",
	0x0078: "MCD_DB_REQUEST",
	0x0079: "MCD_DB_REQUEST_PARAMETERS",
	0x0091: "MCD_DB_RESPONSE",
	0x0092: "MCD_DB_RESPONSE_PARAMETERS",
	0x0093: "MCD_DB_PARAMETER_DYNAMIC_ENDMARKER_FIELD",
	0x0094: "MCD_DB_PARAMETER_DYNAMIC_LENGTH_FIELD",
	0x0095: "MCD_DB_PARAMETER_END_OF_PDU_FIELD",
	0x0096: "MCD_DB_PARAMETER_ENV_DATA_DESC",
	0x0097: "MCD_DB_PARAMETER_ENV_DATA",
	0x00A0: "MCD_DB_PARAMETER_MULTIPLEXER",
	0x00A1: "MCD_DB_PARAMETER_REFERENCES",
	0x00A4: "MCD_DB_PARAMETER",
	0x00A5: "MCD_DB_PARAMETER_SIMPLE",
	0x00A6: "MCD_DB_PARAMETER_STATIC_FIELD",
	0x00A7: "MCD_DB_MATCHING_REQUEST_PARAMETER",
	0x00A8: "MCD_DB_PARAMETER_STRUCT_FIELD",
	0x00AA: "MCD_DB_PARAMETER_STRUCTURE",
	0x00AB: "MCD_DB_TABLE",
	0x00AC: "MCD_DB_TABLE_PARAMETER",
	0x00AD: "MCD_DB_TABLE_PARAMETERS",
	0x00B0: "MCD_DB_PARAMETER_TABLESTRUCT",
	0x00B1: "MCD_DB_PARAMETER_TABLE_ENTRY",
	0x00B2: "MCD_DB_PARAMETER_TABLE_KEY",
	0x00B9: "MCD_DB_RESPONSES",
	0x00BE: "MCD_DB_SERVICE",
	0x00BF: "MCD_DB_SINGLE_ECU_JOB",
	0x00C3: "MCD_DB_SERVICES",
	0x00C8: "MCD_DB_SERVICE_REFERENCES",
	0x00C9: "MCD_DB_VEHICLE_CONNECTOR",
	0x00D0: "MCD_DB_VEHICLE_CONNECTORS",
	0x00D1: "MCD_DB_VEHICLE_CONNECTOR_PIN",
	0x00D2: "MCD_DB_VEHICLE_CONNECTOR_PINS",
	0x00D3: "MCD_DB_VEHICLE_CONNECTOR_PIN_REFERENCES",
	0x00D4: "MCD_DB_VEHICLE_INFORMATION",
	0x00D5: "MCD_DB_VEHICLE_INFORMATIONS",
	0x00D6: "MCD_DB_ECU_VARIANT_REFERENCES",
	0x00D7: "MCD_DB_ECU_BASE_VARIANT_REFERENCES",
	0x00D8: "MCD_DB_VEHICLE_INFORMATION_REFERENCES",
	0x00E0: "MCD_DB_ECU_MEM",
	0x00E1: "MCD_DB_ECU_MEMS",
	0x00E2: "MCD_DB_FLASH_CHECKSUM",
	0x00E3: "MCD_DB_FLASH_CHECKSUMS",
	0x00E4: "MCD_DB_FLASH_DATA_BLOCK",
	0x00E5: "MCD_DB_FLASH_DATA_BLOCKS",
	0x00E6: "MCD_DB_FLASH_DATA",
	0x00E7: "MCD_DB_FLASH_FILTER",
	0x00E8: "MCD_DB_FLASH_FILTERS",
	0x00E9: "MCD_DB_FLASH_IDENT",
	0x00EA: "MCD_DB_FLASH_IDENTS",
	0x00EB: "MCD_DB_FLASH_SECURITY",
	0x00EC: "MCD_DB_FLASH_SECURITIES",
	0x00ED: "MCD_DB_FLASH_SEGMENT",
	0x00EE: "MCD_DB_FLASH_SEGMENTS",
	0x00EF: "MCD_DB_FLASH_SESSION_CLASS",
	0x00F0: "MCD_DB_FLASH_SESSION_CLASSES",
	0x00F1: "MCD_DB_FLASH_SESSION",
	0x00F2: "MCD_DB_FLASH_SESSIONS",
	0x00F3: "MCD_DB_PHYSICAL_SEGMENT",
	0x00F4: "MCD_DB_PHYSICAL_SEGMENTS",
	0x00F5: "MCD_DB_PHYSICAL_MEMORY",
	0x00F6: "MCD_DB_PHYSICAL_MEMORIES",
	0x00F8: "MCD_DB_FLASH_JOB",
	0x00F9: "MCD_DB_IDENT_DESCRIPTION",
	0x00FA: "MCD_VALUES",
	0x00FB: "MCD_INTERVAL",
	0x00FC: "MCD_ACCESS_KEYS",
	0x00FD: "MCD_DB_FUNCTIONAL_GROUP",
	0x00FE: "MCD_TEXT_TABLE_ELEMENT",
	0x00FF: "MCD_TEXT_TABLE_ELEMENTS",
	0x0100: "MCD_DB_DIAG_VARIABLE",
	0x0101: "MCD_DB_DIAG_VARIABLES",
	0x0102: "MCD_DB_UNIT",
	0x0103: "MCD_DB_UNITS",
	0x0104: "MCD_DB_UNIT_GROUP",
	0x0105: "MCD_DB_UNIT_GROUPS",
	0x0106: "MCD_DB_DATA_PRIMITIVE",
	0x0107: "MCD_DB_STARTCOMMUNICATION",
	0x0108: "MCD_DB_STOPCOMMUNICATION",
	0x0109: "MCD_DB_VARIANTIDENTIFICATION",
	0x010A: "MCD_DB_VARIANTIDENTIFICATIONANDSELECTION",
	0x010B: "MCD_DB_PROTOCOLPARAMETERSET",
	0x010C: "MCD_DB_PHYSICAL_DIMENSION",
	0x010D: "MCD_DB_ECU",
	0x010E: "MCD_DB_FUNCTIONAL_GROUP_REFERENCES",
	0x010F: "MCD_DB_SPECIAL_DATA_GROUPS",
	0x0110: "MCD_DB_SPECIAL_DATA_GROUP",
	0x0111: "MCD_DB_SPECIAL_DATA_ELEMENT",
	0x0112: "MCD_DB_DYN_ID_DEFINE_COM_PRIMITIVE",
	0x0113: "MCD_DB_DYN_ID_READ_COM_PRIMITIVE",
	0x0114: "MCD_DB_DYN_ID_CLEAR_COM_PRIMITIVE",
	0x0115: "MCD_AUDIENCE",
	0x0116: "MCD_DB_MULTIPLE_ECU_JOB",
	0x0119: "MCD_DB_TABLES",
	0x011D: "MCD_DB_TABLE_REFERENCES",
	0x0120: "MCD_DB_ECU_MEM_REFERENCES",
	0x0121: "MCD_DB_UNIT_REFERENCES",
	0x0122: "MCD_DB_FLASH_SESSION_CLASS_REFERENCES",
	0x0123: "MCD_DB_FLASH_SESSION_REFERENCES",
	0x0124: "MCD_DB_HEX_SERVICE",
	0x0126: "MCD_DB_TABLE_PARAMETER_REFERENCES",
	0x0127: "MCD_DB_PHYSICAL_MEMORY_REFERENCES",
	0x0128: "MCD_DB_UNIT_GROUP_REFERENCES",
	0x0180: "MCD_DB_CONFIGURATION_DATA",
	0x0181: "MCD_DB_CONFIGURATION_DATAS",
	0x0182: "MCD_DB_CONFIGURATION_DATA_REFERENCES",
	0x0183: "MCD_DB_CONFIGURATION_ID_ITEM",
	0x0184: "MCD_DB_CONFIGURATION_RECORD",
	0x0185: "MCD_DB_CONFIGURATION_RECORDS",
	0x0186: "MCD_DB_CONFIGURATION_RECORD_REFERENCES",
	0x0187: "MCD_DB_CODING_DATA",
	0x0188: "MCD_DB_CONFIGURATION_ITEM",
	0x0189: "MCD_DB_DATA_ID_ITEM",
	0x018A: "MCD_DB_DATA_RECORD",
	0x018B: "MCD_DB_DATA_RECORDS",
	0x018C: "MCD_DB_DATA_RECORD_REFERENCES",
	0x018D: "MCD_DB_ITEM_VALUE",
	0x018E: "MCD_DB_ITEM_VALUES",
	0x018F: "MCD_DB_OPTION_ITEM",
	0x0190: "MCD_DB_OPTION_ITEMS",
	0x0191: "MCD_DB_SYSTEM_ITEM",
	0x0192: "MCD_DB_SYSTEM_ITEMS",
	0x0193: "DB_DIAG_COM_DATA_CONNECTOR",
	0x0194: "DB_DIAG_COM_DATA_CONNECTORS",
	0x0195: "MCD_DB_MATCHING_PARAMETER",
	0x0196: "MCD_DB_MATCHING_PARAMETERS",
	0x0197: "MCD_DB_SUB_COMPONENT",
	0x0198: "MCD_DB_SUB_COMPONENTS",
	0x0199: "MCD_DB_SUB_COMPONENT_REFERENCES",
	0x019A: "MCD_DB_MATCHING_PATTERN",
	0x019B: "MCD_DB_MATCHING_PATTERNS",
	0x019C: "MCD_DB_SUB_COMPONENT_PARAM_CONNECTOR",
	0x019D: "MCD_DB_SUB_COMPONENT_PARAM_CONNECTORS",
	0x01A0: "MCD_DB_ECU_STATE",
	0x01A3: "MCD_DB_ECU_STATE_CHART",
	0x01A6: "MCD_DB_ECU_STATE_CHARTS",
	0x01A9: "MCD_DB_ECU_STATES",
	0x01AC: "MCD_DB_ECU_STATE_TRANSITION",
	0x01AF: "MCD_DB_ECU_STATE_TRANSITIONS",
	0x01B2: "MCD_DB_EXTERNAL_ACCESS_METHOD",
	0x01B5: "MCD_DB_PRECONDITION_DEFINITION",
	0x01B8: "MCD_DB_PRECONDITION_DEFINITIONS",
	0x01BB: "MCD_DB_STATE_TRANSITION_ACTION",
	0x01BE: "MCD_DB_STATE_TRANSITION_ACTIONS",
	0x01C1: "MCD_DB_ECU_STATE_REFERENCES",
	0x01C4: "MCD_DB_ECU_STATE_CHART_REFERENCES",
	0x01C7: "MCD_DB_ECU_STATE_TRANSITION_REFERENCES",
	0x01CA: "MCD_DB_STATE_TRANSITION_ACTION_REFERENCES",
	0x01CD: "MCD_DB_PRE_CONDITION_DEFINITION_REFERENCES",
	0x0200: "MCD_INTERNAL_CONSTRAINT",
	0x0201: "MCD_SCALE_CONSTRAINTS",
	0x0202: "MCD_SCALE_CONSTRAINT",
	0x0203: "MCD_CONSTRAINT",
	0x0204: "MCD_INTERVALS",
	0x0210: "MCD_DB_SPECIAL_DATA_GROUP_CAPTION",
	0x0211: "MCD_DB_SPECIAL_DATA_GROUP_REFERENCES",
	0x0220: "MCD_DB_RESPONSE_REFERENCES",
	0x0230: "MCD_DB_PARAMETER_REFERENCE",
	0x0240: "MCD_DB_ADDITIONAL_AUDIENCES",
	0x0241: "MCD_DB_ADDITIONAL_AUDIENCE",
	0x0250: "DB_ODX_LINK",
	0x0251: "DB_ODX_LINKS",
	0x0255: "DB_LIBRARY",
	0x0300: "MCD_DB_BASE_FUNCTION_NODE",
	0x0301: "MCD_DB_COMPONENT_CONNECTOR",
	0x0302: "MCD_DB_COMPONENT_CONNECTORS",
	0x0303: "MCD_DB_DIAG_OBJECT_CONNECTOR",
	0x0304: "MCD_DB_DIAG_TROUBLE_CODE_CONNECTOR",
	0x0305: "MCD_DB_DIAG_TROUBLE_CODE_CONNECTORS",
	0x0306: "MCD_DB_FAULT_MEMORY",
	0x0307: "MCD_DB_ENV_DATA_CONNECTOR",
	0x0308: "MCD_DB_ENV_DATA_CONNECTORS",
	0x0309: "MCD_DB_ENV_DATA_DESC",
	0x030A: "MCD_DB_FUNCTION_DIAG_COM_CONNECTOR",
	0x030B: "MCD_DB_FUNCTION_DIAG_COM_CONNECTORS",
	0x030C: "MCD_DB_FUNCTION_DICTIONARY",
	0x030D: "MCD_DB_FUNCTION_DICTIONARIES",
	0x030E: "MCD_DB_FUNCTION_IN_PARAMETER",
	0x030F: "MCD_DB_FUNCTION_IN_PARAMETERS",
	0x0310: "MCD_DB_FUNCTION_OUT_PARAMETER",
	0x0311: "MCD_DB_FUNCTION_OUT_PARAMETERS",
	0x0312: "MCD_DB_FUNCTION_NODE",
	0x0313: "MCD_DB_FUNCTION_NODES",
	0x0314: "MCD_DB_FUNCTION_NODE_GROUP",
	0x0315: "MCD_DB_FUNCTION_NODE_GROUPS",
	0x0316: "MCD_DB_TABLE_ROW_CONNECTOR",
	0x0317: "MCD_DB_TABLE_ROW_CONNECTORS",
	0x0318: "DB_FUNCTION_DICTIONARY_DATA",
	0x0319: "DB_COM_PARAM_SPEC",
	0x031A: "DB_COM_PARAM_SUB_SET",
	0x031B: "DB_FLASH_DATA",
	0x031C: "MCD_DB_ENV_DATA_DESCS",
	0x031D: "MCD_DB_FAULT_MEMORIES",
	0x031E: "DB_STATE_CHART_DATA",
	0x031F: "DB_INLINE_FLASH_DATA",
}

// LocationType identifies what kind of diagnostic layer a DB_LAYER_DATA
// object describes.
type LocationType uint16

const (
	LocationECUBaseVariant  LocationType = 0x0101
	LocationECUVariant      LocationType = 0x0102
	LocationFunctionalGroup LocationType = 0x0103
	LocationMultipleECUJob  LocationType = 0x0104
	LocationProtocol        LocationType = 0x0105
)

var locationTypeNames = map[LocationType]string{
	LocationECUBaseVariant:  "ECU_BASE_VARIANT",
	LocationECUVariant:      "ECU_VARIANT",
	LocationFunctionalGroup: "FUNCTIONAL_GROUP",
	LocationMultipleECUJob:  "MULTIPLE_ECU_JOB",
	LocationProtocol:        "PROTOCOL",
}

func (l LocationType) String() string {
	if n, ok := locationTypeNames[l]; ok {
		return n
	}
	return fmt.Sprintf("unknown location (0x%04X)", uint16(l))
}
