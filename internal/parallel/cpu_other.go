//go:build !linux

package parallel

import "runtime"

func hardwareThreads() int {
	return runtime.NumCPU()
}
