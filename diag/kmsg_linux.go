//go:build linux

package diag

import "github.com/platinasystems/log"

// KmsgSink writes lines to /dev/kmsg with the matching priority under the
// daemon facility, so they show in dmesg next to the kernel's own output.
type KmsgSink struct{}

func (KmsgSink) Line(l Level, s string) {
	log.Print(l.String(), "daemon", s)
}
