package parallel

// FallbackThreads is the worker count used when the hardware parallelism
// cannot be determined.
const FallbackThreads = 4

// detectThreads is replaced in tests to simulate failed detection.
var detectThreads = hardwareThreads

// HardwareThreads returns the number of hardware threads this process may
// run on, or 0 if it cannot be determined.
func HardwareThreads() int {
	n := detectThreads()
	if n < 0 {
		return 0
	}
	return n
}
