// Package ds2ftp implements the dual-channel, RTS/CTS flow-controlled
// file-transfer protocol used by DAM terminals as an alternative to the
// session-oriented SFTP protocol in the sibling sftp package.
package ds2ftp

import "github.com/sirupsen/logrus"

var log = logrus.New()

// SetLogger overrides the package-level logger, matching the teacher's
// iec104.SetLogger hook and the sibling sftp.SetLogger.
func SetLogger(l *logrus.Logger) {
	log = l
}

// CmdType is the 32-bit opcode carried by every DS2FTP command (spec 4.7).
type CmdType int64

const (
	CmdNone     CmdType = -1
	CmdDS2Info  CmdType = 0
	CmdRTS      CmdType = 1
	CmdCTS      CmdType = 2
	CmdErrorCTS CmdType = 0x80000002
	CmdInvalid  CmdType = -2
)

var cmdTypeNames = map[CmdType]string{
	CmdNone: "NONE", CmdDS2Info: "DS2INFO", CmdRTS: "RTS", CmdCTS: "CTS",
	CmdErrorCTS: "ERRORCTS", CmdInvalid: "INVALID",
}

func (t CmdType) String() string {
	if name, ok := cmdTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// cmdLengths maps a CmdType to its fixed wire length; ERRORCTS has no
// fixed length (body is variable), so it is absent here and handled
// specially by the codec.
var cmdLengths = map[CmdType]int{
	CmdDS2Info: 0x4C,
	CmdRTS:     0x1C,
	CmdCTS:     0x18,
}

// FileMode tracks which direction a transfer in progress is running.
type FileMode int

const (
	FileModeNone FileMode = iota
	FileModeGet
	FileModePut
)

// ErrorCode names the ERRORCTS diagnostic codes. This client never sends
// an ERRORCTS, and a received ERRORCTS keeps its raw message text
// (ErrorCTS.Message); nothing maps a frame onto these values.
type ErrorCode int

const (
	ErrorFopen    ErrorCode = 1
	ErrorNetwork  ErrorCode = 2
	ErrorTimeout  ErrorCode = 3
	ErrorChecksum ErrorCode = 4
	ErrorUnknown  ErrorCode = 99
)

// ds2Header is the fixed 4-byte magic preceding every command (spec 4.7).
var ds2Header = [4]byte{'D', 'S', '2', 0x00}

const (
	// DefaultCtrlPort and DefaultDataPort are the fixed control/data TCP
	// ports used by DAM terminals (spec 6.1).
	DefaultCtrlPort = 23105 // 0x5A41
	DefaultDataPort = 23104 // 0x5A40

	// DefaultChunkSize is the default for ClientConfig.ChunkSize (spec
	// 6.1). The download and upload pumps do not read it: each block's
	// size is the BlockSize of the server's latest CTS.
	DefaultChunkSize = 0x3C8C0 // 248000 bytes
)
