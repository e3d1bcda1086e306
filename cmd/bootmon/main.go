// bootmon watches a board's serial console for the bring-up markers and
// exits 0 on "bringup: done", 2 on "bringup: FATAL", 3 on timeout.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tarm/serial"

	"bringup-go/services/bootmon"
)

var (
	port    string
	baud    int
	timeout time.Duration
	quiet   bool

	exitCode = 1
)

var rootCmd = &cobra.Command{
	Use:   "bootmon",
	Short: "Wait for the NPU bring-up result on a serial console",
	Long: `Read a serial console until the bring-up reports success or failure.

Examples:
  bootmon --port /dev/ttyUSB0                  # echo console, exit on marker
  bootmon --port /dev/ttyUSB0 -q --timeout 2m  # silent, for CI`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := serial.OpenPort(&serial.Config{Name: port, Baud: baud})
		if err != nil {
			return fmt.Errorf("failed to open serial port %s: %w", port, err)
		}
		defer p.Close()

		var echo io.Writer = cmd.OutOrStdout()
		if quiet {
			echo = nil
		}
		res, code, err := watch(p, echo, timeout)
		exitCode = code
		if err != nil {
			return err
		}
		if res.Status == bootmon.Fatal {
			fmt.Fprintln(cmd.ErrOrStderr(), "bring-up failed:", res.Reason)
		}
		return nil
	},
}

type result struct {
	res bootmon.Result
	err error
}

// watch runs bootmon.Watch with a deadline. On timeout the reader is left
// blocked; the process exits right after.
func watch(r io.Reader, echo io.Writer, d time.Duration) (bootmon.Result, int, error) {
	ch := make(chan result, 1)
	go func() {
		res, err := bootmon.Watch(r, echo)
		ch <- result{res, err}
	}()
	select {
	case x := <-ch:
		if x.err != nil {
			return x.res, 1, x.err
		}
		return x.res, x.res.Status.ExitCode(), nil
	case <-time.After(d):
		return bootmon.Result{}, bootmon.ExitTimeout, fmt.Errorf("no bring-up marker within %s", d)
	}
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&port, "port", "p", "/dev/ttyUSB0", "serial device")
	f.IntVarP(&baud, "baud", "b", 1500000, "baud rate")
	f.DurationVarP(&timeout, "timeout", "t", time.Minute, "give up after")
	f.BoolVarP(&quiet, "quiet", "q", false, "do not echo the console")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode)
}
