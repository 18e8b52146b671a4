package commands

import (
	"fmt"

	"github.com/dkkaraoke/dknw-tools/internal/driver"
	"github.com/spf13/cobra"
)

var (
	uploadFileFlags transferFlags
	uploadFileSrc   string
	uploadFileDir   int
	uploadFileFile  int
)

var uploadFileCmd = &cobra.Command{
	Use:   "upload-file",
	Short: "Upload one file to a DAM terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := uploadFileFlags.config()
		cfg.Src = uploadFileSrc
		cfg.Dir = uploadFileDir
		cfg.File = uploadFileFile

		n, err := driver.RunUploadFile(cfg)
		if err != nil {
			return err
		}
		fmt.Printf("uploaded %d bytes from %s\n", n, uploadFileSrc)
		return nil
	},
}

func init() {
	uploadFileFlags.register(uploadFileCmd)
	uploadFileCmd.Flags().StringVar(&uploadFileSrc, "src", "", "local source path (required)")
	uploadFileCmd.Flags().IntVar(&uploadFileDir, "dir", 0, "directory number (required)")
	uploadFileCmd.Flags().IntVar(&uploadFileFile, "file", 0, "file number (required)")
	uploadFileCmd.MarkFlagRequired("src")
	uploadFileCmd.MarkFlagRequired("dir")
	uploadFileCmd.MarkFlagRequired("file")
}
