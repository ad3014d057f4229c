//go:build linux

package parallel

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// hardwareThreads honours the affinity mask, so a process pinned with
// taskset or a cgroup cpuset gets the number of CPUs it can actually use.
func hardwareThreads() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return runtime.NumCPU()
	}
	return set.Count()
}
