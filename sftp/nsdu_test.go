package sftp

import (
	"bytes"
	"testing"
)

func TestNsdu_RoundTrip_BB(t *testing.T) {
	apdu := &GenericApdu{Type: AConnect, Items: []ApduItem{{Type: ItemSystemID, Data: []byte("DKNW10")}}}
	original := &Nsdu{Apdu: apdu, Network: NetworkBB}

	encoded, err := EncodeNsduBytes(original)
	if err != nil {
		t.Fatalf("EncodeNsduBytes: %v", err)
	}

	decoded, err := DecodeNsdu(bytes.NewReader(encoded), NetworkBB)
	if err != nil {
		t.Fatalf("DecodeNsdu: %v", err)
	}

	got, ok := decoded.Apdu.(*GenericApdu)
	if !ok || got.Type != AConnect || !bytes.Equal(got.GetItem(ItemSystemID), []byte("DKNW10")) {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestNsdu_RoundTrip_NB(t *testing.T) {
	apdu := &FDataApdu{Data: []byte("some file bytes")}
	original := &Nsdu{Apdu: apdu, Network: NetworkNB}

	encoded, err := EncodeNsduBytes(original)
	if err != nil {
		t.Fatalf("EncodeNsduBytes: %v", err)
	}

	decoded, err := DecodeNsdu(bytes.NewReader(encoded), NetworkNB)
	if err != nil {
		t.Fatalf("DecodeNsdu: %v", err)
	}

	got, ok := decoded.Apdu.(*FDataApdu)
	if !ok || !bytes.Equal(got.Data, []byte("some file bytes")) {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestNsdu_NB_SingleByteCorruptionRejected(t *testing.T) {
	apdu := &GenericApdu{Type: AConnect, Items: []ApduItem{{Type: ItemSystemID, Data: []byte("DKNW10")}}}
	encoded, err := EncodeNsduBytes(&Nsdu{Apdu: apdu, Network: NetworkNB})
	if err != nil {
		t.Fatalf("EncodeNsduBytes: %v", err)
	}

	// Flip a bit in the APDU body (well within the framing, before CRC/ETX).
	corrupted := append([]byte{}, encoded...)
	corrupted[5] ^= 0x01

	if _, err := DecodeNsdu(bytes.NewReader(corrupted), NetworkNB); err != ErrCRCMismatch {
		t.Errorf("DecodeNsdu(corrupted NB frame) error = %v, want ErrCRCMismatch", err)
	}
}

func TestNsdu_NB_KnownVector(t *testing.T) {
	// Spec worked example: Nsdu{Generic(A_CONNECT, [SYSTEM_ID="DKNW10"]), NB}.
	apdu := &GenericApdu{Type: AConnect, Items: []ApduItem{{Type: ItemSystemID, Data: []byte("DKNW10")}}}
	encoded, err := EncodeNsduBytes(&Nsdu{Apdu: apdu, Network: NetworkNB})
	if err != nil {
		t.Fatalf("EncodeNsduBytes: %v", err)
	}

	wantPrefix := []byte{
		0x02,       // STX
		0x00, 0x0E, // apdu_len = 14
		0x00, 0x00, // APDU type = A_CONNECT
		0x00, 0x0A, // item payload length = 10
		0x00, 0x01, // item type = SYSTEM_ID
		0x00, 0x06, // item length = 6
		0x44, 0x4B, 0x4E, 0x57, 0x31, 0x30, // "DKNW10"
	}
	if !bytes.Equal(encoded[:len(wantPrefix)], wantPrefix) {
		t.Fatalf("frame prefix = % X, want % X", encoded[:len(wantPrefix)], wantPrefix)
	}

	wantCRC := []byte{0x2B, 0xDA}
	if !bytes.Equal(encoded[len(wantPrefix):len(wantPrefix)+2], wantCRC) {
		t.Errorf("CRC = % X, want % X", encoded[len(wantPrefix):len(wantPrefix)+2], wantCRC)
	}
	if encoded[len(encoded)-1] != etx {
		t.Errorf("trailing byte = 0x%02X, want ETX 0x03", encoded[len(encoded)-1])
	}
}

func TestNsdu_InvalidSTX(t *testing.T) {
	if _, err := DecodeNsdu(bytes.NewReader([]byte{0x00, 0x00, 0x00}), NetworkBB); err != ErrInvalidSTX {
		t.Errorf("error = %v, want ErrInvalidSTX", err)
	}
}

func TestNsdu_InvalidETX(t *testing.T) {
	apdu := &GenericApdu{Type: ARelease}
	encoded, _ := EncodeNsduBytes(&Nsdu{Apdu: apdu, Network: NetworkBB})
	encoded[len(encoded)-1] = 0x00
	if _, err := DecodeNsdu(bytes.NewReader(encoded), NetworkBB); err != ErrInvalidETX {
		t.Errorf("error = %v, want ErrInvalidETX", err)
	}
}
