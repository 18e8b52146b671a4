package unicrypt

// sbox is the fixed 256-entry substitution table Unicrypt is
// parameterised on. Unicrypt is obfuscation, not cryptography (spec
// Non-goals), but the table is part of the authentication exchange: the
// terminal accepts an AUTH_RES only if it was computed with the same
// table.
var sbox = [256]byte{
	0x15, 0x19, 0xC3, 0xAB, 0x31, 0x07, 0x05, 0x0D, 0x29, 0x36, 0xDC, 0xD5, 0xD2, 0x7B, 0x33, 0xD4,
	0x09, 0xC4, 0xA2, 0x1F, 0x69, 0x8D, 0x0A, 0xD9, 0x17, 0x4A, 0x99, 0x2A, 0x0F, 0x62, 0x88, 0xAD,
	0x6D, 0x27, 0x23, 0x35, 0x84, 0x6B, 0x73, 0xEA, 0xC1, 0x26, 0x41, 0xD0, 0x3B, 0xBB, 0x76, 0x5F,
	0x9E, 0xF8, 0x06, 0x3E, 0x8B, 0x04, 0xD6, 0x4B, 0xEE, 0x6A, 0x12, 0x5B, 0x1B, 0x8E, 0x5D, 0x47,
	0x51, 0x89, 0x10, 0x45, 0x39, 0x66, 0xA1, 0x59, 0xB4, 0xBE, 0xB9, 0x97, 0xCF, 0xF6, 0xB6, 0x67,
	0xBD, 0x02, 0x2D, 0x6F, 0xE6, 0xB3, 0x65, 0xDE, 0x11, 0x63, 0x56, 0x2C, 0x0B, 0xD8, 0x13, 0xDD,
	0xE9, 0x1C, 0x75, 0x7F, 0x3F, 0x96, 0x4F, 0x79, 0x53, 0xA4, 0xA8, 0x83, 0x25, 0x7A, 0x49, 0xAF,
	0x8F, 0x2E, 0x7C, 0xEB, 0xA6, 0xB2, 0x42, 0x70, 0xBF, 0xC7, 0xF2, 0x9D, 0x24, 0x1E, 0xD1, 0x91,
	0x71, 0x0C, 0x2B, 0x14, 0x37, 0x82, 0xBC, 0xA5, 0x5E, 0xF9, 0xA0, 0x6C, 0x93, 0x5A, 0x32, 0xD3,
	0xFE, 0x9F, 0xF7, 0x9B, 0x92, 0x08, 0x0E, 0x60, 0x72, 0xB1, 0x85, 0xB5, 0xC2, 0x3C, 0x21, 0xA7,
	0x4D, 0x48, 0x1D, 0xCB, 0xA3, 0x30, 0xE2, 0x38, 0x43, 0x8A, 0x77, 0xCC, 0xA9, 0xE4, 0x95, 0xEF,
	0xF0, 0xE3, 0x22, 0xB7, 0xFC, 0x5C, 0x6E, 0x40, 0x3A, 0x7E, 0xC6, 0x20, 0x03, 0xC9, 0xC0, 0xF4,
	0xE5, 0x74, 0x81, 0xF5, 0x16, 0xAE, 0x01, 0xDA, 0x4E, 0x9C, 0xCE, 0xDB, 0xE8, 0xE0, 0xED, 0xF1,
	0x2F, 0xFD, 0xFB, 0x68, 0x7D, 0xFF, 0x34, 0xF3, 0x87, 0x44, 0xD7, 0x8C, 0x3D, 0x18, 0xCD, 0x58,
	0xE1, 0xE7, 0x80, 0x64, 0x9A, 0x90, 0x1A, 0x50, 0xDF, 0xAA, 0xFA, 0xEC, 0x54, 0x46, 0x86, 0x28,
	0xC5, 0xC8, 0xCA, 0xB0, 0x78, 0x4C, 0x57, 0x00, 0x61, 0x94, 0x52, 0x98, 0xBA, 0xAC, 0x55, 0xB8,
}
