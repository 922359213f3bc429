package my

// Zeroize overwrites b in place. Used to wipe key material once it is
// no longer needed instead of relying on the garbage collector to
// reclaim it eventually.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
