// Package sftp implements the SFTP session-oriented authenticated
// file-transfer protocol used by DAM terminals. This is unrelated to
// SSH's SFTP; the name and a few wire-level ideas collide with the
// standard by coincidence, not by design (spec Non-goals).
package sftp

import "github.com/sirupsen/logrus"

var log = logrus.New()

// SetLogger overrides the package-level logger, matching the teacher's
// iec104.SetLogger hook.
func SetLogger(l *logrus.Logger) {
	log = l
}

// ApduType is the 16-bit type code carried by every APDU (spec 3.2).
type ApduType uint16

const (
	AConnect    ApduType = 0x0000
	AAccept     ApduType = 0x0001
	AReject     ApduType = 0x0002
	ARelease    ApduType = 0x0003
	ASync       ApduType = 0x0004
	AAuthent    ApduType = 0x0005
	AAuthentRsp ApduType = 0x0006

	FStart    ApduType = 0x0100
	FReady    ApduType = 0x0101
	FFinal    ApduType = 0x0102
	FEnd      ApduType = 0x0103
	FData     ApduType = 0x0104
	FCancel   ApduType = 0x0105
	FAlive    ApduType = 0x0106
	FPurge    ApduType = 0x0107
	FPurgeRsp ApduType = 0x0108
	FSkip     ApduType = 0x0109
	FSkipRsp  ApduType = 0x010A

	ApduTypeNone ApduType = 0xFFFF
)

var apduTypeNames = map[ApduType]string{
	AConnect: "A_CONNECT", AAccept: "A_ACCEPT", AReject: "A_REJECT",
	ARelease: "A_RELEASE", ASync: "A_SYNC", AAuthent: "A_AUTHENT",
	AAuthentRsp: "A_AUTHENT_RSP", FStart: "F_START", FReady: "F_READY",
	FFinal: "F_FINAL", FEnd: "F_END", FData: "F_DATA", FCancel: "F_CANCEL",
	FAlive: "F_ALIVE", FPurge: "F_PURGE", FPurgeRsp: "F_PURGE_RSP",
	FSkip: "F_SKIP", FSkipRsp: "F_SKIP_RSP", ApduTypeNone: "NONE",
}

func (t ApduType) String() string {
	if name, ok := apduTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// ApduItemType is the 16-bit type code of an APDU-Item (TLV) nested
// inside a Generic APDU. The peer's exact numeric values are not
// available (spec Open Question #1, DESIGN.md records the decision);
// these are internally consistent and only need to match what this
// client itself emits and parses.
type ApduItemType uint16

const (
	ItemSystemID        ApduItemType = 0x0001
	ItemProtocolID      ApduItemType = 0x0002
	ItemClientSide      ApduItemType = 0x0003
	ItemJobID           ApduItemType = 0x0004
	ItemAuthReq         ApduItemType = 0x0005
	ItemAuthRes         ApduItemType = 0x0006
	ItemFileOperation   ApduItemType = 0x0007
	ItemFileNumber      ApduItemType = 0x0008
	ItemExpectFileSize  ApduItemType = 0x0009
)

// FileOperationType is the FILE_OPERATION item's value (spec 3.2).
// Only Read and Replace are exercised by this client.
type FileOperationType uint16

const (
	FileOperationIdle    FileOperationType = 0x0000
	FileOperationRead    FileOperationType = 0x0001
	FileOperationReplace FileOperationType = 0x0002
	FileOperationAppend  FileOperationType = 0x0003
	FileOperationDelete  FileOperationType = 0x0004
)

// NetworkType selects whether the NSDU framing carries a trailing CRC
// (spec 3.2/4.5).
type NetworkType int

const (
	NetworkBB NetworkType = iota // no CRC
	NetworkNB                    // CRC-16 (low 16 bits of CRC-32) between APDU and ETX
)

const (
	stx = 0x02
	etx = 0x03

	// dataChunkSize is the fixed F_DATA payload size used while
	// uploading (spec 4.6); the final chunk may be smaller.
	dataChunkSize = 0xFF8
)
