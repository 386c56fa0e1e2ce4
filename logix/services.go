package logix

// CIP common services
const (
	// Get Attributes All - read every attribute of an object instance in one shot
	SvcGetAttributesAll byte = 0x01

	// Get Attribute Single - read single attribute from object instance
	SvcGetAttributeSingle byte = 0x0E

	// Set Attribute Single - write single attribute on an object instance
	SvcSetAttributeSingle byte = 0x10

	// NOP (No Operation) - used for keepalive without state change
	SvcNop byte = 0x17
)

// Logix-specific CIP services (Allen-Bradley extensions to CIP).
// These are not part of the standard CIP specification.
const (
	// Read Tag Service - reads tag data by symbolic name
	SvcReadTag byte = 0x4C

	// Write Tag Service - writes tag data by symbolic name
	SvcWriteTag byte = 0x4D

	// Read Tag Fragmented - for large data transfers
	SvcReadTagFragmented byte = 0x52

	// Write Tag Fragmented - for large data transfers
	SvcWriteTagFragmented byte = 0x53

	// Read Modify Write Tag - atomic read-modify-write
	SvcReadModifyWriteTag byte = 0x4E

	// Multiple Service Packet - batch multiple requests
	SvcMultipleServicePacket byte = 0x0A

	// Get Instance Attribute List - used for tag browsing
	SvcGetInstanceAttributeList byte = 0x55
)

// CIP General Status codes (full table per the CIP specification's
// general status list, 0x00-0x2C). Codes without a dedicated constant
// are still handled by name in cipStatusName.
const (
	StatusSuccess              byte = 0x00
	StatusConnectionFailure    byte = 0x01
	StatusResourceUnavailable  byte = 0x02
	StatusInvalidParameterVal  byte = 0x03
	StatusPathSegmentError     byte = 0x04
	StatusPathUnknown          byte = 0x05
	StatusPartialTransfer      byte = 0x06 // More data available (pagination)
	StatusConnectionLost       byte = 0x07
	StatusServiceNotSupport    byte = 0x08
	StatusInvalidAttrValue     byte = 0x09
	StatusAlreadyInState       byte = 0x0A
	StatusAttrListError        byte = 0x0B
	StatusObjectStateConfl     byte = 0x0C
	StatusObjectAlreadyExists  byte = 0x0D
	StatusAttrNotSettable      byte = 0x0E
	StatusPrivilegeViolat      byte = 0x0F
	StatusDeviceStateConfl     byte = 0x10
	StatusReplyDataTooLarge    byte = 0x11
	StatusFragPrimitiveValue   byte = 0x12
	StatusNotEnoughData        byte = 0x13
	StatusAttrNotSupported     byte = 0x14
	StatusTooMuchData          byte = 0x15
	StatusObjectNotExist       byte = 0x16
	StatusFragNotSupported     byte = 0x17
	StatusNotSaved             byte = 0x18
	StatusAttrNotSavable       byte = 0x19
	StatusInvalidRequest       byte = 0x1A
	StatusRspPacketTooLarge    byte = 0x1B
	StatusMissingAttrListEntry byte = 0x1C
	StatusInvalidAttrValueList byte = 0x1D
	StatusEmbeddedServiceError byte = 0x1E
	StatusVendorSpecific       byte = 0x1F
	StatusInvalidParameter     byte = 0x20
	StatusWriteOnceAlready     byte = 0x21
	StatusInvalidReplyReceived byte = 0x22
	StatusBufferOverflow       byte = 0x23
	StatusInvalidMessageFormat byte = 0x24
	StatusKeyFailureInPath     byte = 0x25
	StatusPathSizeInvalid      byte = 0x26
	StatusUnexpectedAttrInList byte = 0x27
	StatusInvalidMemberID      byte = 0x28
	StatusMemberNotSettable    byte = 0x29
	StatusGroup2OnlyFailure    byte = 0x2A
	StatusUnknownModbusError   byte = 0x2B
	StatusAttrNotGettable      byte = 0x2C
	StatusGeneralError         byte = 0xFF
)

// Logix extended status codes (when general status is 0xFF)
const (
	ExtStatusSuccess      uint16 = 0x0000
	ExtStatusExtendedErr  uint16 = 0x00FF
	ExtStatusIllegalType  uint16 = 0x2101 // Wrong data type for tag
	ExtStatusTagNotFound  uint16 = 0x2104 // Tag does not exist
	ExtStatusTagReadOnly  uint16 = 0x2105 // Cannot write to tag
	ExtStatusSizeTooSmall uint16 = 0x2107 // Data too small
	ExtStatusSizeTooLarge uint16 = 0x2108 // Data too large
	ExtStatusOffsetError  uint16 = 0x2109 // Offset out of range
)
