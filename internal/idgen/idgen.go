// Package idgen generates spoiler ids.
package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Length is the number of characters in a spoiler id
const Length = 48

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var alphabetSize = big.NewInt(int64(len(alphabet)))

// New returns a random alphanumeric id of Length characters
func New() string {
	return NewN(Length)
}

// NewN returns a random alphanumeric id of n characters using crypto/rand.
// It panics if the system random source fails.
func NewN(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			panic(fmt.Sprintf("error generating random id: %v", err))
		}
		buf[i] = alphabet[idx.Int64()]
	}
	return string(buf)
}
