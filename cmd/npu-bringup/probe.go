//go:build linux

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bringup-go/drivers/rk8602"
	"bringup-go/platform/smbus"
	"bringup-go/power"
)

var (
	probeSet       bool
	probeKernelBus int
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Read back the NPU regulator",
	Long: `Claim the bus, read the regulator's ID, voltage selector and enable bit,
then hand the pins back to the I2C controller. With --set the NPU rail table
is applied first. Reads are single attempts and never halt the board.

With --kernel-bus N the values are read a second time through /dev/i2c-N,
the hardware controller that owns the pins after release.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := selectedBoard()
		if err != nil {
			return err
		}
		be, err := openBackend(b)
		if err != nil {
			return err
		}
		defer be.close()
		bus, err := be.bus(b)
		if err != nil {
			return err
		}

		bus.Claim(b.Settle.ClaimUs)
		pins := &claimed{bus: bus}
		defer pins.release()

		dev := rk8602.New(bus, rk8602.Config{Address: uint16(b.Addr)})
		if probeSet {
			if err := power.ApplyAll(b.NPURails, dev); err != nil {
				return err
			}
		}
		id, err := dev.ChipID()
		if err != nil {
			return fmt.Errorf("regulator at %#x: %w", b.Addr, err)
		}
		uV, err := dev.Voltage()
		if err != nil {
			return err
		}
		on, err := dev.Enabled()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "address:  %#02x\n", b.Addr)
		fmt.Fprintf(out, "vendor:   %d  die: %d  rev: %d\n", id.Vendor, id.DieID, id.DieRev)
		fmt.Fprintf(out, "voltage:  %d uV\n", uV)
		fmt.Fprintf(out, "enabled:  %v\n", on)

		if probeKernelBus < 0 || dryRun {
			return nil
		}
		pins.release()
		kdev := rk8602.New(smbus.Adapter{Bus: probeKernelBus}, rk8602.Config{Address: uint16(b.Addr)})
		kuV, err := kdev.Voltage()
		if err != nil {
			return fmt.Errorf("i2c-%d: %w", probeKernelBus, err)
		}
		fmt.Fprintf(out, "i2c-%d:    %d uV\n", probeKernelBus, kuV)
		if kuV != uV {
			return fmt.Errorf("i2c-%d reads %d uV, emulated bus read %d uV", probeKernelBus, kuV, uV)
		}
		return nil
	},
}

// claimed hands the bus lines back to the I2C controller at most once.
// After the first release the pins belong to the controller.
type claimed struct {
	bus      interface{ Release() }
	released bool
}

func (c *claimed) release() {
	if c.released {
		return
	}
	c.released = true
	c.bus.Release()
}

func init() {
	probeCmd.Flags().BoolVar(&probeSet, "set", false, "apply the NPU rail table before reading")
	probeCmd.Flags().IntVar(&probeKernelBus, "kernel-bus", -1, "also read back through this i2c-dev adapter")
	rootCmd.AddCommand(probeCmd)
}
