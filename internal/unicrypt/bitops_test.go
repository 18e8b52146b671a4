package unicrypt

import (
	"bytes"
	"testing"
)

func TestPopCount(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want int
	}{
		{"empty", []byte{}, 0},
		{"all zero", []byte{0x00, 0x00}, 0},
		{"all one byte", []byte{0xFF}, 8},
		{"mixed", []byte{0x0F, 0xAA}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PopCount(tt.data); got != tt.want {
				t.Errorf("PopCount(%v) = %d, want %d", tt.data, got, tt.want)
			}
		})
	}
}

func TestReverseBitsPerByte(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want []byte
	}{
		{"nibble", []byte{0x0F}, []byte{0xF0}},
		{"alternating", []byte{0xAA}, []byte{0x55}},
		{"empty", []byte{}, []byte{}},
		{"multi byte", []byte{0x01, 0x80}, []byte{0x80, 0x01}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReverseBitsPerByte(tt.data); !bytes.Equal(got, tt.want) {
				t.Errorf("ReverseBitsPerByte(% X) = % X, want % X", tt.data, got, tt.want)
			}
		})
	}
}

func TestReverseBitsPerByte_Involution(t *testing.T) {
	data := []byte("Hello, World!")
	once := ReverseBitsPerByte(data)
	twice := ReverseBitsPerByte(once)
	if !bytes.Equal(data, twice) {
		t.Errorf("reverse(reverse(x)) = % X, want % X", twice, data)
	}
}

func TestReverseBitsPerByte_PreservesPopCount(t *testing.T) {
	data := []byte("the quick brown fox")
	if PopCount(ReverseBitsPerByte(data)) != PopCount(data) {
		t.Errorf("popcount changed across bit reversal")
	}
}

func TestRotateBits_Zero(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56}
	if got := RotateBits(data, 0); !bytes.Equal(got, data) {
		t.Errorf("RotateBits(x, 0) = % X, want % X", got, data)
	}
}

func TestRotateBits_FullCircle(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56, 0x78}
	got := RotateBits(data, len(data)*8)
	if !bytes.Equal(got, data) {
		t.Errorf("RotateBits(x, 8*len(x)) = % X, want % X", got, data)
	}
}

func TestRotateBits_Empty(t *testing.T) {
	if got := RotateBits([]byte{}, 5); len(got) != 0 {
		t.Errorf("RotateBits(empty, 5) = % X, want empty", got)
	}
}

func TestRotateBits_ModuloWrap(t *testing.T) {
	data := []byte{0xF0, 0x0F}
	nBits := len(data) * 8
	a := RotateBits(data, 3)
	b := RotateBits(data, 3+nBits*4)
	if !bytes.Equal(a, b) {
		t.Errorf("rotation should be taken modulo bit length: % X != % X", a, b)
	}
}

func TestRotateBits_KnownVector(t *testing.T) {
	// 0000 0001 rotated left by 1 -> 0000 0010
	got := RotateBits([]byte{0x01}, 1)
	want := []byte{0x02}
	if !bytes.Equal(got, want) {
		t.Errorf("RotateBits(0x01, 1) = % X, want % X", got, want)
	}
}
