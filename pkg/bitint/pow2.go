/*
Package bitint provides power-of-two helpers for FFT and buffer sizing.
All operations are O(1), allocation-free and real-time safe.

	size := bitint.NextPowerOfTwo(500) // 512
	ok := bitint.IsPowerOfTwo(size)    // true
*/
package bitint

import "math/bits"

// NextPowerOfTwo returns the smallest power of two >= size.
// Exact powers of two are preserved; that is why the bit length is
// taken of size-1, not size. Zero and negative inputs map to 1.
//
//	Input  Output
//	4      4
//	5      8
//	0      1
//	-1     1
func NextPowerOfTwo(size int) int {
	if size <= 0 {
		return 1
	}

	if ^uint(0)>>63 == 0 {
		return int(1 << (bits.Len64(uint64(size - 1))))
	}

	// 32-bit platforms
	return int(1 << (bits.Len32(uint32(size - 1))))
}

// IsPowerOfTwo reports whether n is a positive power of two.
// A power of two has exactly one bit set, so n & (n-1) clears it.
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}
