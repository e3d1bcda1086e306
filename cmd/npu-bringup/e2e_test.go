//go:build linux

package main

import (
	"bytes"
	"strings"
	"testing"

	"bringup-go/board"
)

func resetFlags() {
	freqKHz = board.LubanCat4.FrequencyKHz
	attempts = board.LubanCat4.Attempts
	microvolts = board.LubanCat4.Microvolts
	noHalt, powerOff, dryRun, verbose, probeSet = false, false, false, false, false
	console, simNack, probeKernelBus = "", 0, -1
}

func TestCommandsE2E(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantErr     string
		wantContain []string
	}{
		{
			name:        "dry run",
			args:        []string{"--dry-run"},
			wantContain: []string{"simulated:", "6 register writes", "regulator writes [{6 48} {0 128}]"},
		},
		{
			name:        "dry run with retries",
			args:        []string{"run", "--dry-run", "--sim-nack", "2", "--attempts", "3"},
			wantContain: []string{"regulator writes [{6 48} {0 128}]"},
		},
		{
			name:    "dry run regulator absent",
			args:    []string{"run", "--dry-run", "--sim-nack=-1"},
			wantErr: "bring-up failed: ProgramVoltage",
		},
		{
			name:        "custom voltage",
			args:        []string{"--dry-run", "--microvolts", "850000"},
			wantContain: []string{"regulator writes [{6 56} {0 128}]"},
		},
		{
			name:    "voltage off grid",
			args:    []string{"--dry-run", "--microvolts", "851000"},
			wantErr: "out of range",
		},
		{
			name:        "probe",
			args:        []string{"probe", "--dry-run", "--set", "--microvolts", "850000"},
			wantContain: []string{"address:  0x42", "voltage:  850000 uV", "enabled:  false"},
		},
		{
			name:        "rails",
			args:        []string{"rails"},
			wantContain: []string{"vdd_npu_s0", "RK8602", "vdd2_ddr_s3", "skipped: not present in device tree"},
		},
		{
			name:    "bad attempts",
			args:    []string{"rails", "--attempts", "0"},
			wantErr: "attempts 0 < 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			var buf bytes.Buffer
			rootCmd.SetOut(&buf)
			rootCmd.SetErr(&buf)
			rootCmd.SetArgs(tt.args)

			err := rootCmd.Execute()
			output := buf.String()

			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v\noutput: %s", err, output)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q:\n%s", want, output)
				}
			}
		})
	}
}
