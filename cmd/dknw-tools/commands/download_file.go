package commands

import (
	"fmt"

	"github.com/dkkaraoke/dknw-tools/internal/driver"
	"github.com/spf13/cobra"
)

var (
	downloadFileFlags transferFlags
	downloadFileDir   int
	downloadFileFile  int
	downloadFileDest  string
)

var downloadFileCmd = &cobra.Command{
	Use:   "download-file",
	Short: "Download one file from a DAM terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := downloadFileFlags.config()
		cfg.Dir = downloadFileDir
		cfg.File = downloadFileFile
		cfg.Dest = downloadFileDest

		n, err := driver.RunDownloadFile(cfg)
		if err != nil {
			return err
		}
		fmt.Printf("downloaded %d bytes to %s\n", n, downloadFileDest)
		return nil
	},
}

func init() {
	downloadFileFlags.register(downloadFileCmd)
	downloadFileCmd.Flags().IntVar(&downloadFileDir, "dir", 0, "directory number (required)")
	downloadFileCmd.Flags().IntVar(&downloadFileFile, "file", 0, "file number (required)")
	downloadFileCmd.Flags().StringVar(&downloadFileDest, "dest", "", "local destination path (required)")
	downloadFileCmd.MarkFlagRequired("dir")
	downloadFileCmd.MarkFlagRequired("file")
	downloadFileCmd.MarkFlagRequired("dest")
}
