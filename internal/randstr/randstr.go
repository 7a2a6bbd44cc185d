// Package randstr generates fixed-length opaque alphanumeric strings.
// Authorization codes and access tokens issued by the mock are plain
// random strings, not structured tokens.
package randstr

import (
	"crypto/rand"
	"math/big"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// String returns a random string of exactly length characters drawn
// from [A-Za-z0-9].
func String(length int) string {
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand never fails on supported platforms
			panic(err)
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b)
}
