// Package discovery implements the terminal-discovery protocol: a fixed
// type+length+payload message framing plus a concurrent CIDR network
// sweep that asks every reachable host "what terminal are you".
package discovery

import (
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger overrides the package-level logger, matching the teacher's
// iec104.SetLogger hook and the sibling sftp/ds2ftp packages.
func SetLogger(l *logrus.Logger) {
	log = l
}

// MessageType is the 16-bit code in every message's header (spec 3.1).
type MessageType uint16

const (
	Undefined               MessageType = 0x0000
	GetTerminalTypeRequest  MessageType = 0x4032
	GetTerminalTypeResponse MessageType = 0x8032
)

var messageTypeNames = map[MessageType]string{
	Undefined:               "UNDEFINED",
	GetTerminalTypeRequest:  "GET_TERMINAL_TYPE_REQUEST",
	GetTerminalTypeResponse: "GET_TERMINAL_TYPE_RESPONSE",
}

func (t MessageType) String() string {
	if name, ok := messageTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

const (
	// DefaultPort is the fixed TCP port DAM terminals listen on for
	// discovery (spec 6.1).
	DefaultPort = 22960

	// DefaultBufferSize is the read buffer used per scanned address.
	DefaultBufferSize = 4096

	// DefaultMaxWorkers is the scan worker-pool size.
	DefaultMaxWorkers = 255
)

// DefaultTimeout is the per-connection dial+read timeout.
const DefaultTimeout = 5 * time.Second
