//go:build linux

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tarm/serial"

	"bringup-go/board"
	"bringup-go/diag"
	"bringup-go/drivers/rk8602"
	"bringup-go/power"
)

var (
	freqKHz    uint32
	attempts   int
	microvolts uint32
	noHalt     bool
	powerOff   bool
	dryRun     bool
	console    string
	baud       int
	verbose    bool
	simNack    int
)

var rootCmd = &cobra.Command{
	Use:   "npu-bringup",
	Short: "NPU power, clock and reset bring-up",
	Long: `Bring the NPU of a LubanCat 4 into a known-good state: program the
RK8602 regulator over bit-banged GPIO, then open the NPU clock gates and
release its resets. A failed power step halts the board.

Examples:
  npu-bringup                          # run the bring-up (same as "run")
  npu-bringup run --no-halt -v         # report failure instead of halting
  npu-bringup probe                    # read back the regulator
  npu-bringup rails                    # print the rail tables
  npu-bringup --dry-run --attempts 3   # simulate`,
	SilenceUsage: true,
	RunE:         runBringup,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Uint32Var(&freqKHz, "freq-khz", board.LubanCat4.FrequencyKHz, "bus clock in kHz")
	pf.IntVar(&attempts, "attempts", board.LubanCat4.Attempts, "attempts per register write")
	pf.Uint32Var(&microvolts, "microvolts", board.LubanCat4.Microvolts, "NPU rail voltage in uV")
	pf.BoolVar(&dryRun, "dry-run", false, "run against simulated GPIO, registers and regulator")
	pf.IntVar(&simNack, "sim-nack", 0, "dry run: regulator ignores its first N address bytes (-1: always)")
	pf.StringVar(&console, "console", "", "also log to this serial device")
	pf.IntVar(&baud, "baud", 1500000, "console baud rate")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log register writes")
}

// selectedBoard applies flag overrides to the compiled-in board.
func selectedBoard() (board.Board, error) {
	b := board.LubanCat4
	b.FrequencyKHz = freqKHz
	b.Attempts = attempts
	b.Microvolts = microvolts
	b.NPURails = append([]power.Rail(nil), b.NPURails...)
	for i := range b.NPURails {
		if b.NPURails[i].ID == rk8602.RailName {
			b.NPURails[i].Microvolts = microvolts
		}
	}
	return b, b.Validate()
}

// newLogger builds the sink stack: stderr always, the kernel log on real
// hardware, and an optional serial console.
func newLogger() (*diag.Logger, io.Closer, error) {
	sinks := diag.Tee{diag.NewWriterSink(os.Stderr)}
	if !dryRun {
		sinks = append(sinks, diag.KmsgSink{})
	}
	var closer io.Closer = nopCloser{}
	if console != "" {
		port, err := serial.OpenPort(&serial.Config{Name: console, Baud: baud})
		if err != nil {
			return nil, nil, fmt.Errorf("open console %s: %w", console, err)
		}
		sinks = append(sinks, diag.NewWriterSink(port))
		closer = port
	}
	level := diag.Info
	if verbose {
		level = diag.Debug
	}
	return diag.New("bringup", level, sinks), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
