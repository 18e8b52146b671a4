package commands

import (
	"fmt"

	"github.com/dkkaraoke/dknw-tools/internal/driver"
	"github.com/spf13/cobra"
)

var (
	searchDirsFlags transferFlags
	searchDirsDest  string
)

var searchDirsCmd = &cobra.Command{
	Use:   "search-dirs",
	Short: "Probe every directory number for a file, reporting the first hit per directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := searchDirsFlags.config()
		cfg.Dest = searchDirsDest

		found, err := driver.RunSearchDirs(cfg)
		if err != nil {
			return err
		}
		for _, f := range found {
			if f.Downloaded {
				fmt.Printf("%d.%d: found, downloaded to %s\n", f.Dir, f.File, f.Path)
			} else {
				fmt.Printf("%d.%d: found\n", f.Dir, f.File)
			}
		}
		return nil
	},
}

func init() {
	searchDirsFlags.register(searchDirsCmd)
	searchDirsCmd.Flags().StringVar(&searchDirsDest, "dest", "", "directory to download found files into")
}
