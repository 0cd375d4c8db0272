//go:build !windows

package debug

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// residentSetSize returns the peak resident set size in bytes. getrusage has
// no current-RSS field; the peak is enough to spot growth across scans.
func residentSetSize() (uint64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, err
	}
	rss := uint64(ru.Maxrss)
	if runtime.GOOS != "darwin" {
		// kilobytes everywhere but darwin
		rss *= 1024
	}
	return rss, nil
}
