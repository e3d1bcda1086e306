//go:build linux

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bringup-go/power"
)

var railsCmd = &cobra.Command{
	Use:   "rails",
	Short: "Print the board's rail tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := selectedBoard()
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "TABLE\tRAIL\tREGULATOR\tuV\tNOTE\n")
		printRails(tw, "master", b.MasterRails)
		printRails(tw, "npu", b.NPURails)
		for _, s := range b.Skipped {
			id := s.Rail.ID
			if id == "" {
				id = "-"
			}
			fmt.Fprintf(tw, "master\t%s\t%s\t%d\tskipped: %s\n", id, s.Rail.Regulator, s.Rail.Microvolts, s.Reason)
		}
		return tw.Flush()
	},
}

func printRails(w io.Writer, table string, rails []power.Rail) {
	for _, r := range rails {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t\n", table, r.ID, r.Regulator, r.Microvolts)
	}
}

func init() {
	rootCmd.AddCommand(railsCmd)
}
