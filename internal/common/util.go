package common

// WipeByteArray zeroes the buffer in place. Callers use it to scrub password
// material once it is no longer needed. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
