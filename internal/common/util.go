// Package common contains small helpers shared across client layers.
package common

// WipeByteArray zeroes the buffer in place. Used to drop passwords from
// memory as soon as they have been submitted.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
