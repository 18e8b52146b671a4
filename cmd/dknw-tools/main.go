// Command dknw-tools is a thin CLI driver over the discovery, sftp and
// ds2ftp protocol packages (spec 6.2): it parses flags and calls into
// internal/driver, nothing more.
package main

import (
	"fmt"
	"os"

	"github.com/dkkaraoke/dknw-tools/cmd/dknw-tools/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
