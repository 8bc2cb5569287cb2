package domain

import "runtime"

// Zero overwrites b with zeros. Call it on plaintext, password and key copies once they are no
// longer needed; nil and empty slices are a no-op.
func Zero(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}
