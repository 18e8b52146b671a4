package sftp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

/*
Apdu (Application Protocol Data Unit) frame:

  | <- 16 bits -> | <- 16 bits -> |  <- length bytes ->  |
  |     Type      |    Length     |        Payload       |

If Type == F_DATA the payload is an opaque byte blob (FDataApdu).
Otherwise the payload is a sequence of APDU-Items running to the end of
the frame (GenericApdu); a Generic APDU's Type is never F_DATA.

Following the teacher's "dynamic dispatch -> flat codec" redesign note,
Apdu is a closed sum type and EncodeApdu/DecodeApdu are the only two
entry points; there is no per-variant Write method to override.
*/
type Apdu interface {
	isApdu()
}

// GenericApdu carries an APDU type plus an ordered sequence of items.
type GenericApdu struct {
	Type  ApduType
	Items []ApduItem
}

func (*GenericApdu) isApdu() {}

// GetItem returns the data of the first item of the given type, or nil
// if none is present.
func (a *GenericApdu) GetItem(t ApduItemType) []byte {
	for _, item := range a.Items {
		if item.Type == t {
			return item.Data
		}
	}
	return nil
}

// SetItem replaces the first item of the given type, or appends a new
// one if none is present.
func (a *GenericApdu) SetItem(t ApduItemType, data []byte) {
	for i := range a.Items {
		if a.Items[i].Type == t {
			a.Items[i].Data = data
			return
		}
	}
	a.Items = append(a.Items, ApduItem{Type: t, Data: data})
}

// FDataApdu carries an opaque file-transfer payload.
type FDataApdu struct {
	Data []byte
}

func (*FDataApdu) isApdu() {}

// ApduItem is a type-length-value entry nested in a GenericApdu's
// payload: u16 type, u16 length, length bytes of data.
type ApduItem struct {
	Type ApduItemType
	Data []byte
}

func readApduItem(r io.Reader) (ApduItem, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return ApduItem{}, fmt.Errorf("%w: %v", ErrShortHeader, err)
	}
	itemType := ApduItemType(binary.BigEndian.Uint16(header[0:2]))
	itemLen := binary.BigEndian.Uint16(header[2:4])

	data := make([]byte, itemLen)
	if _, err := io.ReadFull(r, data); err != nil {
		return ApduItem{}, fmt.Errorf("%w: %v", ErrShortItemData, err)
	}
	return ApduItem{Type: itemType, Data: data}, nil
}

func (item ApduItem) write(w io.Writer) error {
	var header [4]byte
	binary.BigEndian.PutUint16(header[0:2], uint16(item.Type))
	binary.BigEndian.PutUint16(header[2:4], uint16(len(item.Data)))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err := w.Write(item.Data)
	return err
}

// readApduCommon reads the u16 type + u16 length header and exactly
// length bytes of payload.
func readApduCommon(r io.Reader) (ApduType, []byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrShortHeader, err)
	}
	apduType := ApduType(binary.BigEndian.Uint16(header[0:2]))
	size := binary.BigEndian.Uint16(header[2:4])

	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrShortItemData, err)
	}
	return apduType, payload, nil
}

// DecodeApdu reads one APDU from r, dispatching to FDataApdu or
// GenericApdu based on the declared type.
func DecodeApdu(r io.Reader) (Apdu, error) {
	apduType, payload, err := readApduCommon(r)
	if err != nil {
		return nil, err
	}
	return decodeApduFromParts(apduType, payload)
}

func decodeApduFromParts(apduType ApduType, payload []byte) (Apdu, error) {
	if apduType == FData {
		return &FDataApdu{Data: payload}, nil
	}

	items, err := decodeApduItems(payload)
	if err != nil {
		return nil, fmt.Errorf("sftp: failed to read APDU items: %w", err)
	}
	return &GenericApdu{Type: apduType, Items: items}, nil
}

// DecodeGenericApdu reads one APDU from r and requires it not be F_DATA.
func DecodeGenericApdu(r io.Reader) (*GenericApdu, error) {
	apduType, payload, err := readApduCommon(r)
	if err != nil {
		return nil, err
	}
	if apduType == FData {
		return nil, ErrUnexpectedFData
	}
	items, err := decodeApduItems(payload)
	if err != nil {
		return nil, fmt.Errorf("sftp: failed to read APDU items: %w", err)
	}
	return &GenericApdu{Type: apduType, Items: items}, nil
}

// DecodeFDataApdu reads one APDU from r and requires it to be F_DATA.
func DecodeFDataApdu(r io.Reader) (*FDataApdu, error) {
	apduType, payload, err := readApduCommon(r)
	if err != nil {
		return nil, err
	}
	if apduType != FData {
		return nil, ErrExpectedFData
	}
	return &FDataApdu{Data: payload}, nil
}

func decodeApduItems(payload []byte) ([]ApduItem, error) {
	items := make([]ApduItem, 0)
	reader := bytes.NewReader(payload)
	for reader.Len() > 0 {
		item, err := readApduItem(reader)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// EncodeApdu writes a serialised Apdu to w: u16 type, u16 length,
// payload bytes.
func EncodeApdu(w io.Writer, a Apdu) error {
	var apduType ApduType
	var payload []byte

	switch v := a.(type) {
	case *FDataApdu:
		apduType = FData
		payload = v.Data
	case *GenericApdu:
		if v.Type == FData {
			return ErrUnexpectedFData
		}
		apduType = v.Type
		buf := &bytes.Buffer{}
		for _, item := range v.Items {
			if err := item.write(buf); err != nil {
				return err
			}
		}
		payload = buf.Bytes()
	default:
		return fmt.Errorf("sftp: unknown APDU variant %T", a)
	}

	var header [4]byte
	binary.BigEndian.PutUint16(header[0:2], uint16(apduType))
	binary.BigEndian.PutUint16(header[2:4], uint16(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// EncodeApduBytes is a convenience wrapper returning the serialised
// bytes directly, used when assembling an NSDU frame.
func EncodeApduBytes(a Apdu) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := EncodeApdu(buf, a); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
