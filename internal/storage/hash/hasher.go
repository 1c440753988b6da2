package hash

import (
	"hash/maphash"

	"golang.org/x/exp/constraints"
)

// Hasher maps a key to a 64-bit hash value. The table indexes its directory
// with the low globalDepth bits, so those bits must be well distributed.
type Hasher[K comparable] func(K) uint64

// tableSeed is fixed once per process so hash values stay stable for the
// lifetime of every table. The structures are volatile; cross-process
// stability is not required.
var tableSeed = maphash.MakeSeed()

// ComparableHasher hashes any comparable key through the runtime memory hash.
// This is the default for tables that do not supply their own Hasher.
func ComparableHasher[K comparable]() Hasher[K] {
	return func(key K) uint64 {
		return maphash.Comparable(tableSeed, key)
	}
}

// IntegerHasher spreads integer keys with a Fibonacci multiplier, pushing
// entropy from the high bits into the low bits the directory indexes on.
func IntegerHasher[K constraints.Integer]() Hasher[K] {
	const multiplier = 0x9e3779b97f4a7c15
	return func(key K) uint64 {
		h := uint64(key) * multiplier
		return h ^ h>>32
	}
}

// IdentityHasher uses the key bits directly. Only suitable when the caller
// knows the low bits of its keys are already uniform.
func IdentityHasher[K constraints.Integer]() Hasher[K] {
	return func(key K) uint64 {
		return uint64(key)
	}
}
