package ds2ftp

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

/*
Command frame (spec 4.7):

  | "DS2\0" (4) | opcode (4, big-endian) | fixed body | checksum (4, big-endian) |

Following the sftp package's sum-type/flat-codec style, Command is a
closed interface implemented by RTS, CTS, ErrorCTS and DS2Info, with
free-standing EncodeRTS/EncodeCTS/EncodeErrorCTS and DecodeCommand
entry points rather than per-type Write
methods.
*/
type Command interface {
	isCommand()
}

// RTS (Request To Send) initiates a transfer (spec 4.7).
type RTS struct {
	Dir      uint32
	File     uint32
	FileSize uint32
	Serial   uint32
}

func (RTS) isCommand() {}

// CTS (Clear To Send) reports transfer progress and block size (spec 4.7).
type CTS struct {
	TotalSize uint32
	FileSize  uint32
	BlockSize uint32
}

func (CTS) isCommand() {}

// ErrorCTS carries the same three size fields as CTS plus a trailing
// newline-terminated diagnostic message (spec 4.7).
type ErrorCTS struct {
	TotalSize uint32
	FileSize  uint32
	BlockSize uint32
	Message   string
}

func (ErrorCTS) isCommand() {}

// DS2Info is the terminal's unsolicited status record (spec 3.3/4.7).
// Only its read path is implemented: this client never originates one
// (SPEC_FULL, DS2FTP module).
type DS2Info struct {
	DS2Addr      uint32
	MacAddr      [6]byte
	Serial       [8]byte
	Throughput   uint32
	TokenGroupNo uint32
	APEssid      [32]byte
	WlanType     uint32
}

func (DS2Info) isCommand() {}

// calculateChecksum computes the DS2FTP checksum over data: interpret
// data as big-endian 32-bit words, zero-pad a short trailing word, sum
// modulo 2^32, then bitwise-NOT the result (spec 4.7).
func calculateChecksum(data []byte) uint32 {
	var sum uint32
	full := len(data) / 4
	for i := 0; i < full; i++ {
		sum += binary.BigEndian.Uint32(data[i*4 : i*4+4])
	}
	if rem := len(data) % 4; rem != 0 {
		var last [4]byte
		copy(last[:], data[len(data)-rem:])
		sum += binary.BigEndian.Uint32(last[:])
	}
	return ^sum
}

// EncodeRTS serialises an RTS command, computing and appending its
// trailing checksum.
func EncodeRTS(r RTS) []byte {
	buf := make([]byte, cmdLengths[CmdRTS])
	copy(buf[0:4], ds2Header[:])
	binary.BigEndian.PutUint32(buf[4:8], uint32(CmdRTS))
	binary.BigEndian.PutUint32(buf[8:12], r.Dir)
	binary.BigEndian.PutUint32(buf[12:16], r.File)
	binary.BigEndian.PutUint32(buf[16:20], r.FileSize)
	binary.BigEndian.PutUint32(buf[20:24], r.Serial)
	binary.BigEndian.PutUint32(buf[24:28], calculateChecksum(buf[:24]))
	return buf
}

// EncodeCTS serialises a CTS command, computing and appending its
// trailing checksum.
func EncodeCTS(c CTS) []byte {
	buf := make([]byte, cmdLengths[CmdCTS])
	copy(buf[0:4], ds2Header[:])
	binary.BigEndian.PutUint32(buf[4:8], uint32(CmdCTS))
	binary.BigEndian.PutUint32(buf[8:12], c.TotalSize)
	binary.BigEndian.PutUint32(buf[12:16], c.FileSize)
	binary.BigEndian.PutUint32(buf[16:20], c.BlockSize)
	binary.BigEndian.PutUint32(buf[20:24], calculateChecksum(buf[:20]))
	return buf
}

// EncodeErrorCTS serialises an ERRORCTS command: the three size fields,
// an optional newline-terminated message, zero-padded to a 4-byte
// boundary, then the trailing checksum.
func EncodeErrorCTS(e ErrorCTS) []byte {
	var msgBytes []byte
	if e.Message != "" {
		msgBytes = append([]byte(e.Message), '\n')
	}
	length := cmdLengths[CmdCTS] + len(msgBytes)
	if rem := length % 4; rem != 0 {
		length += 4 - rem
	}

	buf := make([]byte, length)
	copy(buf[0:4], ds2Header[:])
	binary.BigEndian.PutUint32(buf[4:8], uint32(CmdErrorCTS))
	binary.BigEndian.PutUint32(buf[8:12], e.TotalSize)
	binary.BigEndian.PutUint32(buf[12:16], e.FileSize)
	binary.BigEndian.PutUint32(buf[16:20], e.BlockSize)
	copy(buf[20:20+len(msgBytes)], msgBytes)
	binary.BigEndian.PutUint32(buf[len(buf)-4:], calculateChecksum(buf[:len(buf)-4]))
	return buf
}

// DecodeCommand parses a complete command frame (header, opcode, body
// and trailing checksum already assembled by the caller's framing logic)
// and dispatches to the matching Command variant. Checksum verification
// is skipped for ERRORCTS, whose variable length makes the checksum's
// position ambiguous (spec 4.7); every other opcode's checksum is always
// verified.
func DecodeCommand(buf []byte) (Command, error) {
	if len(buf) < 8 {
		return nil, ErrShortHeader
	}
	if !bytes.Equal(buf[0:4], ds2Header[:]) {
		return nil, fmt.Errorf("%w: bad magic % X", ErrUnknownCmd, buf[0:4])
	}
	op := CmdType(int64(binary.BigEndian.Uint32(buf[4:8])))

	switch op {
	case CmdDS2Info, CmdRTS, CmdCTS:
		want := cmdLengths[op]
		if len(buf) != want {
			return nil, fmt.Errorf("%w: %s wants %d bytes, got %d", ErrWrongLength, op, want, len(buf))
		}
		if err := verifyChecksum(buf); err != nil {
			return nil, err
		}
		switch op {
		case CmdDS2Info:
			return parseDS2Info(buf), nil
		case CmdRTS:
			return parseRTS(buf), nil
		case CmdCTS:
			return parseCTS(buf), nil
		}
	case CmdErrorCTS:
		if len(buf) < cmdLengths[CmdCTS] {
			return nil, fmt.Errorf("%w: ERRORCTS wants at least %d bytes, got %d", ErrWrongLength, cmdLengths[CmdCTS], len(buf))
		}
		return parseErrorCTS(buf), nil
	}
	return nil, fmt.Errorf("%w: opcode 0x%X", ErrUnknownCmd, uint32(op))
}

func verifyChecksum(buf []byte) error {
	if len(buf) < 4 {
		return ErrChecksumInvalid
	}
	want := binary.BigEndian.Uint32(buf[len(buf)-4:])
	got := calculateChecksum(buf[:len(buf)-4])
	if want != got {
		return fmt.Errorf("%w: calculated 0x%08X, received 0x%08X", ErrChecksumInvalid, got, want)
	}
	return nil
}

// ParseDS2Info decodes the fixed DS2INFO layout end to end (SPEC_FULL,
// DS2FTP module): this client never originates one, but reads the
// format the original source fully specifies.
func ParseDS2Info(buf []byte) (DS2Info, error) {
	if len(buf) < cmdLengths[CmdDS2Info] {
		return DS2Info{}, ErrWrongLength
	}
	return parseDS2Info(buf), nil
}

func parseDS2Info(buf []byte) DS2Info {
	var info DS2Info
	info.DS2Addr = binary.BigEndian.Uint32(buf[8:12])
	copy(info.MacAddr[:], buf[12:18])
	copy(info.Serial[:], buf[20:28])
	info.Throughput = binary.BigEndian.Uint32(buf[28:32])
	info.TokenGroupNo = binary.BigEndian.Uint32(buf[32:36])
	copy(info.APEssid[:], buf[36:68])
	info.WlanType = binary.BigEndian.Uint32(buf[68:72])
	return info
}

func parseRTS(buf []byte) RTS {
	return RTS{
		Dir:      binary.BigEndian.Uint32(buf[8:12]),
		File:     binary.BigEndian.Uint32(buf[12:16]),
		FileSize: binary.BigEndian.Uint32(buf[16:20]),
		Serial:   binary.BigEndian.Uint32(buf[20:24]),
	}
}

func parseCTS(buf []byte) CTS {
	return CTS{
		TotalSize: binary.BigEndian.Uint32(buf[8:12]),
		FileSize:  binary.BigEndian.Uint32(buf[12:16]),
		BlockSize: binary.BigEndian.Uint32(buf[16:20]),
	}
}

func parseErrorCTS(buf []byte) ErrorCTS {
	e := ErrorCTS{
		TotalSize: binary.BigEndian.Uint32(buf[8:12]),
		FileSize:  binary.BigEndian.Uint32(buf[12:16]),
		BlockSize: binary.BigEndian.Uint32(buf[16:20]),
	}
	if len(buf) > 24 {
		rest := buf[20:]
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			e.Message = string(rest[:i])
		} else {
			e.Message = string(bytes.TrimRight(rest, "\x00"))
		}
	}
	return e
}
