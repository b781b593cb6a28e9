package common

import "fmt"

// Assert checks a condition and panics if it is false.
//
// Use it for invariants of the module's own data structures (e.g. a catalog
// index that disagrees with the catalog state). Conditions that depend on the
// input, such as a plan node kind that is not understood, are reported as
// errors instead.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

const (
	offset64 = 14695981039346656037
	prime64  = 1099511628211
)

// Hash computes the FNV-1a 64-bit hash of the provided byte slice without allocation.
// It is a non-cryptographic hash function optimized for speed and distribution; it is
// used to turn a signature into a compact fingerprint.
func Hash(data []byte) uint64 {
	var h uint64 = offset64
	for _, b := range data {
		h ^= uint64(b)
		h *= prime64
	}
	return h
}

// HashString is Hash over the bytes of s.
func HashString(s string) uint64 {
	var h uint64 = offset64
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime64
	}
	return h
}
