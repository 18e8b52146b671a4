package ds2ftp

import "errors"

var (
	ErrShortHeader     = errors.New("ds2ftp: buffer shorter than header+opcode")
	ErrUnknownCmd      = errors.New("ds2ftp: unknown command opcode")
	ErrWrongLength     = errors.New("ds2ftp: command length does not match its opcode")
	ErrChecksumInvalid = errors.New("ds2ftp: checksum mismatch")
	ErrMagicNotFound   = errors.New("ds2ftp: DS2 magic not found before channel closed")

	ErrNotConnected      = errors.New("ds2ftp: not connected")
	ErrDataChannelFailed = errors.New("ds2ftp: data channel connect failed")
	ErrUnexpectedReply   = errors.New("ds2ftp: unexpected reply to RTS")
	ErrEmptyFile         = errors.New("ds2ftp: server reported empty file (tsize < 1)")
	ErrReceivedErrorCTS  = errors.New("ds2ftp: received ERRORCTS")
)
