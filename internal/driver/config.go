// Package driver implements the protocol-agnostic dispatch logic behind
// the dknw-tools CLI: scan-terminals, search-dirs, download-file and
// upload-file (spec 6.2). It is deliberately decoupled from flag
// parsing so the cobra command layer stays a thin translation from
// flags to a Config/Run* call (spec §1, "a thin driver that calls into
// the core").
package driver

import (
	"fmt"
	"time"

	"github.com/dkkaraoke/dknw-tools/sftp"
)

// Protocol selects which file-transfer protocol a driver command talks.
type Protocol string

const (
	ProtocolSFTP   Protocol = "sftp"
	ProtocolDS2FTP Protocol = "ds2ftp"
)

// Config carries every flag the four driver commands accept (spec 6.2).
// Not every field applies to every command; each Run* function reads
// only the fields its command's table lists.
type Config struct {
	// Target is the scan-terminals CIDR.
	Target string

	// Host/Port identify the terminal for search-dirs, download-file,
	// upload-file. Port is the SFTP port, or the DS2FTP data port when
	// CtrlPort/DataPort are not overridden (spec 6.2 "Defaults when
	// protocol=ds2ftp").
	Host string
	Port int

	Protocol Protocol
	CtrlPort int
	DataPort int

	Dir  int
	File int

	Dest string // search_dirs/download_file destination
	Src  string // upload_file source

	Timeout time.Duration
	Workers int

	Network sftp.NetworkType
}

// Validate rejects a negative timeout and an unknown protocol (spec §7
// ConfigError). It does not check the CIDR, the ports or the worker
// count; discovery.Scan and the sftp/ds2ftp client constructors
// validate those.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("driver: timeout must not be negative")
	}
	if c.Protocol != "" && c.Protocol != ProtocolSFTP && c.Protocol != ProtocolDS2FTP {
		return fmt.Errorf("driver: unknown protocol %q", c.Protocol)
	}
	return nil
}

// withDefaults fills in the defaults spec 6.2 names: timeout=5.0,
// workers=255, protocol=sftp, and — when protocol=ds2ftp — data_port =
// port, ctrl_port = data_port + 1.
func (c Config) withDefaults() Config {
	out := c
	if out.Timeout == 0 {
		out.Timeout = 5 * time.Second
	}
	if out.Workers == 0 {
		out.Workers = 255
	}
	if out.Protocol == "" {
		out.Protocol = ProtocolSFTP
	}
	if out.Protocol == ProtocolDS2FTP {
		if out.DataPort == 0 {
			out.DataPort = out.Port
		}
		if out.CtrlPort == 0 {
			out.CtrlPort = out.DataPort + 1
		}
	}
	return out
}
