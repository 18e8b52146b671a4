package sftp

import "errors"

// Parse errors for the APDU/NSDU codecs (spec 4.4/4.5). Each is a
// distinct sentinel so callers can distinguish failure kinds without
// string matching; there are no IsErr* predicate functions, callers
// check them with errors.Is.
var (
	ErrShortHeader     = errors.New("sftp: short APDU/item header")
	ErrShortItemData   = errors.New("sftp: item length beyond payload end")
	ErrUnexpectedFData = errors.New("sftp: unexpected F_DATA on structured read path")
	ErrExpectedFData   = errors.New("sftp: expected F_DATA APDU")

	ErrInvalidSTX  = errors.New("sftp: invalid STX")
	ErrShortLength = errors.New("sftp: short length field")
	ErrShortAPDU   = errors.New("sftp: short APDU body")
	ErrCRCMismatch = errors.New("sftp: CRC mismatch")
	ErrInvalidETX  = errors.New("sftp: invalid ETX")

	// Protocol-state errors raised by the client state machine (spec 4.6).
	ErrNotConnected         = errors.New("sftp: not connected")
	ErrAuthentNotOffered    = errors.New("sftp: A_AUTHENT not responded")
	ErrMissingAuthReq       = errors.New("sftp: A_AUTHENT missing AUTH_REQ item")
	ErrNotAccepted          = errors.New("sftp: A_ACCEPT not responded")
	ErrSyncNotReceived      = errors.New("sftp: A_SYNC not responded")
	ErrReadyNotReceived     = errors.New("sftp: F_READY not responded")
	ErrUnexpectedApdu       = errors.New("sftp: unexpected APDU received")
	ErrFileSizeMismatch     = errors.New("sftp: EXPECT_FILE_SIZE mismatch")
	ErrFinalNotAcknowledged = errors.New("sftp: F_END not responded")
)
