// Package shared holds small helpers used by the admin CLI.
package shared

// WipeByteArray overwrites b with zeros. Secrets read from the terminal
// are wiped once they have been copied into a request.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
