package common

// WipeByteArray overwrites b with zeros. Password buffers read from the
// terminal are wiped once they have been sent.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
