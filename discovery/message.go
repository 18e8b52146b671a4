package discovery

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

/*
Message frame (spec 4.3): u16 type · u16 length · payload[length], all
integers big-endian. Following the sftp/ds2ftp packages' flat-codec
style, Message is a closed sum type with free-standing Encode/Decode
entry points.
*/
type Message interface {
	isMessage()
}

// GetTerminalTypeRequestMessage carries the requester's own serial
// (spec 3.1/4.3); blank is allowed.
type GetTerminalTypeRequestMessage struct {
	Serial [8]byte
}

func (GetTerminalTypeRequestMessage) isMessage() {}

// GetTerminalTypeResponseMessage is a terminal's self-description
// (spec 3.1/4.3).
type GetTerminalTypeResponseMessage struct {
	ProtocolVersion uint32
	ModelID         [2]byte
	ModelSubID      [2]byte
	Serial          [8]byte
	SoftwareVersion [8]byte
	BBIndex         uint16
	PrinterVersion  [4]byte
}

func (GetTerminalTypeResponseMessage) isMessage() {}

// GenericMessage is any message whose type this client does not
// interpret structurally (spec 3.1 Generic variant).
type GenericMessage struct {
	Type    MessageType
	Payload []byte
}

func (GenericMessage) isMessage() {}

// EncodeMessage writes m's wire frame to w.
func EncodeMessage(w io.Writer, m Message) error {
	var msgType MessageType
	var payload []byte

	switch v := m.(type) {
	case GetTerminalTypeRequestMessage:
		msgType = GetTerminalTypeRequest
		payload = v.Serial[:]
	case GetTerminalTypeResponseMessage:
		msgType = GetTerminalTypeResponse
		buf := &bytes.Buffer{}
		binary.Write(buf, binary.BigEndian, v.ProtocolVersion)
		buf.Write(v.ModelID[:])
		buf.Write(v.ModelSubID[:])
		buf.Write(v.Serial[:])
		buf.Write(v.SoftwareVersion[:])
		binary.Write(buf, binary.BigEndian, v.BBIndex)
		buf.Write(make([]byte, 2)) // reserved
		buf.Write(v.PrinterVersion[:])
		buf.Write(make([]byte, 4)) // reserved
		payload = buf.Bytes()
	case GenericMessage:
		msgType = v.Type
		payload = v.Payload
	default:
		return fmt.Errorf("discovery: unknown message variant %T", m)
	}

	var header [4]byte
	binary.BigEndian.PutUint16(header[0:2], uint16(msgType))
	binary.BigEndian.PutUint16(header[2:4], uint16(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// EncodeMessageBytes is a convenience wrapper returning the serialised
// bytes directly.
func EncodeMessageBytes(m Message) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := EncodeMessage(buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeMessage reads one message from r: a 4-byte header, then exactly
// length payload bytes. Fewer than 4 header bytes available is reported
// as end-of-stream, wrapping io.EOF (no bytes) or io.ErrUnexpectedEOF
// (1-3 bytes) (spec 4.3).
func DecodeMessage(r io.Reader) (Message, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("discovery: end of stream reading header: %w", err)
	}
	msgType := MessageType(binary.BigEndian.Uint16(header[0:2]))
	length := binary.BigEndian.Uint16(header[2:4])

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("discovery: short payload: %w", err)
	}

	switch msgType {
	case GetTerminalTypeRequest:
		if len(payload) < 8 {
			return nil, fmt.Errorf("discovery: GET_TERMINAL_TYPE_REQUEST payload too short")
		}
		var m GetTerminalTypeRequestMessage
		copy(m.Serial[:], payload[0:8])
		return m, nil
	case GetTerminalTypeResponse:
		if len(payload) < 36 {
			return nil, fmt.Errorf("discovery: GET_TERMINAL_TYPE_RESPONSE payload too short")
		}
		var m GetTerminalTypeResponseMessage
		m.ProtocolVersion = binary.BigEndian.Uint32(payload[0:4])
		copy(m.ModelID[:], payload[4:6])
		copy(m.ModelSubID[:], payload[6:8])
		copy(m.Serial[:], payload[8:16])
		copy(m.SoftwareVersion[:], payload[16:24])
		m.BBIndex = binary.BigEndian.Uint16(payload[24:26])
		// payload[26:28] reserved
		copy(m.PrinterVersion[:], payload[28:32])
		return m, nil
	default:
		return GenericMessage{Type: msgType, Payload: payload}, nil
	}
}
