package unicrypt

import (
	"bytes"
	"testing"
)

func TestUnicrypt_EmptyInput(t *testing.T) {
	u := &Unicrypt{}
	got := u.Encrypt([]byte{})
	if len(got) != 0 {
		t.Errorf("Encrypt(empty) = % X, want empty", got)
	}
}

func TestUnicrypt_PreservesLength(t *testing.T) {
	for _, in := range [][]byte{{}, {0x00}, []byte("Hello, World!"), bytes.Repeat([]byte{0x42}, 1000)} {
		u := &Unicrypt{}
		got := u.Encrypt(in)
		if len(got) != len(in) {
			t.Errorf("Encrypt(%d bytes) produced %d bytes", len(in), len(got))
		}
	}
}

func TestUnicrypt_Deterministic(t *testing.T) {
	plaintext := []byte("Test message")

	a := (&Unicrypt{}).Encrypt(plaintext)
	b := (&Unicrypt{}).Encrypt(plaintext)
	if !bytes.Equal(a, b) {
		t.Errorf("two fresh instances disagree on Encrypt(%q): % X != % X", plaintext, a, b)
	}
}

func TestUnicrypt_ChangesInput(t *testing.T) {
	plaintext := []byte("Test message")
	got := (&Unicrypt{}).Encrypt(plaintext)
	if bytes.Equal(got, plaintext) {
		t.Errorf("Encrypt(%q) returned the plaintext unchanged", plaintext)
	}
}

func TestUnicrypt_DifferentInputsDifferentOutputs(t *testing.T) {
	a := (&Unicrypt{}).Encrypt([]byte("Message 1"))
	b := (&Unicrypt{}).Encrypt([]byte("Message 2"))
	if bytes.Equal(a, b) {
		t.Errorf("distinct plaintexts produced the same ciphertext")
	}
}

func TestUnicrypt_SingleByteVector(t *testing.T) {
	// The zero byte's output is determined entirely by the bundled
	// S-box: it must be one byte and the same from two fresh instances.
	// The byte value itself is not pinned here.
	got := (&Unicrypt{}).Encrypt([]byte{0x00})
	if len(got) != 1 {
		t.Fatalf("Encrypt(0x00) returned %d bytes, want 1", len(got))
	}
	again := (&Unicrypt{}).Encrypt([]byte{0x00})
	if got[0] != again[0] {
		t.Errorf("Encrypt(0x00) is not stable across instances: 0x%02X != 0x%02X", got[0], again[0])
	}
}
