package core

// Jobs returns the build parallelism: the explicit override when positive,
// otherwise the detected processor count, never less than one.
func Jobs(override int, numCPU func() int) int {
	if override > 0 {
		return override
	}
	detected := 1
	if numCPU != nil {
		detected = numCPU()
	}
	if detected < 1 {
		detected = 1
	}
	return detected
}
