//go:build linux

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bringup-go/platform/halt"
	"bringup-go/services/bringup"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bring-up sequence",
	Long: `Run ClaimBus, ProgramVoltage, ProgramEnable, ReleaseBus, EnableClocks
and DeassertResets once. On a failed power step the bus is released and the
board is halted (or powered off with --poweroff) unless --no-halt is given.`,
	RunE: runBringup,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		c.Flags().BoolVar(&noHalt, "no-halt", false, "return an error instead of halting on failure")
		c.Flags().BoolVar(&powerOff, "poweroff", false, "power off instead of halting on failure")
	}
	rootCmd.AddCommand(runCmd)
}

func runBringup(cmd *cobra.Command, args []string) error {
	b, err := selectedBoard()
	if err != nil {
		return err
	}
	log, closer, err := newLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	be, err := openBackend(b)
	if err != nil {
		return err
	}
	defer be.close()

	bus, err := be.bus(b)
	if err != nil {
		return err
	}
	seq, err := bringup.New(bringup.Deps{
		Bus:   bus,
		Regs:  be.regs,
		Delay: be.delay,
		Log:   log,
	}, b)
	if err != nil {
		return err
	}

	if noHalt || dryRun {
		o := seq.Run()
		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "simulated: %d waits, %d us total, %d register writes, regulator writes %v\n",
				len(be.waits.Calls), be.waits.Total(), len(be.sim.Writes), be.target.Writes)
		}
		if o.State == bringup.Fatal {
			return fmt.Errorf("bring-up failed: %s", o.Reason())
		}
		return nil
	}

	action := halt.Halt
	if powerOff {
		action = halt.PowerOff
	}
	seq.Boot(halt.Halter{Action: action, Log: log})
	return nil
}
