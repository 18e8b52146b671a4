package commands

import (
	"time"

	"github.com/dkkaraoke/dknw-tools/internal/driver"
	"github.com/spf13/cobra"
)

// transferFlags holds the flags common to search-dirs, download-file
// and upload-file: host/port identify the terminal, protocol selects
// sftp or ds2ftp, ctrl_port/data_port override the ds2ftp derived
// defaults (spec 6.2).
type transferFlags struct {
	host     string
	port     int
	protocol string
	ctrlPort int
	dataPort int
	timeout  time.Duration
}

func (f *transferFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.host, "host", "", "terminal host (required)")
	cmd.Flags().IntVar(&f.port, "port", 0, "terminal port (SFTP port, or DS2FTP data port)")
	cmd.Flags().StringVar(&f.protocol, "protocol", "sftp", "transfer protocol (sftp|ds2ftp)")
	cmd.Flags().IntVar(&f.ctrlPort, "ctrl-port", 0, "DS2FTP control port (default data_port + 1)")
	cmd.Flags().IntVar(&f.dataPort, "data-port", 0, "DS2FTP data port (default port)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 5*time.Second, "connect/read timeout")
	cmd.MarkFlagRequired("host")
}

func (f *transferFlags) config() driver.Config {
	return driver.Config{
		Host:     f.host,
		Port:     f.port,
		Protocol: driver.Protocol(f.protocol),
		CtrlPort: f.ctrlPort,
		DataPort: f.dataPort,
		Timeout:  f.timeout,
	}
}
