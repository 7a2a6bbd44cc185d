package randstr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString_Length(t *testing.T) {
	for _, length := range []int{0, 1, 16, 64} {
		assert.Len(t, String(length), length)
	}
}

func TestString_Charset(t *testing.T) {
	s := String(256)
	for _, r := range s {
		assert.True(t, strings.ContainsRune(alphabet, r), "unexpected character %q", r)
	}
}

func TestString_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := String(16)
		assert.False(t, seen[s], "duplicate random string %q", s)
		seen[s] = true
	}
}
