package commands

import (
	"os"
	"strconv"
	"time"

	"github.com/dkkaraoke/dknw-tools/internal/driver"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	scanTimeout time.Duration
	scanWorkers int
)

var scanTerminalsCmd = &cobra.Command{
	Use:   "scan-terminals <cidr>",
	Short: "Probe every address in a CIDR for a DAM terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := driver.RunScanTerminals(driver.Config{
			Target:  args[0],
			Timeout: scanTimeout,
			Workers: scanWorkers,
		})
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Address", "Protocol Version", "Model", "Serial", "Software Version"})
		table.SetAutoWrapText(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetBorder(false)

		for _, r := range results {
			if r.Response == nil {
				continue
			}
			resp := r.Response
			table.Append([]string{
				r.Address,
				strconv.Itoa(int(resp.ProtocolVersion)),
				string(resp.ModelID[:]) + "/" + string(resp.ModelSubID[:]),
				string(resp.Serial[:]),
				string(resp.SoftwareVersion[:]),
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	scanTerminalsCmd.Flags().DurationVar(&scanTimeout, "timeout", 5*time.Second, "per-address connect/read timeout")
	scanTerminalsCmd.Flags().IntVar(&scanWorkers, "workers", 255, "scan worker pool size")
}
