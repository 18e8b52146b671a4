// Package commands implements the dknw-tools CLI surface (spec 6.2).
package commands

import (
	"fmt"

	"github.com/dkkaraoke/dknw-tools/discovery"
	"github.com/dkkaraoke/dknw-tools/ds2ftp"
	"github.com/dkkaraoke/dknw-tools/internal/driver"
	"github.com/dkkaraoke/dknw-tools/sftp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logLevel string

// rootCmd is the base command when dknw-tools is called with no
// subcommand.
var rootCmd = &cobra.Command{
	Use:   "dknw-tools",
	Short: "Client toolkit for DAM karaoke-terminal discovery and file transfer",
	Long: `dknw-tools talks to DAM terminals over three protocols: a
per-address discovery probe, the session-oriented SFTP protocol, and the
dual-channel DS2FTP protocol.

Use "dknw-tools [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
		}
		logger := logrus.New()
		logger.SetLevel(level)
		discovery.SetLogger(logger)
		sftp.SetLogger(logger)
		ds2ftp.SetLogger(logger)
		driver.SetLogger(logger)
		return nil
	},
}

// Execute runs the root command. Called once from main.main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace|debug|info|warn|error)")

	rootCmd.AddCommand(scanTerminalsCmd)
	rootCmd.AddCommand(searchDirsCmd)
	rootCmd.AddCommand(downloadFileCmd)
	rootCmd.AddCommand(uploadFileCmd)
}
