// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package bits has the bit-field and small integer helpers shared by the map code.
package bits

import (
	mathbits "math/bits"

	"golang.org/x/exp/constraints"
)

// mask returns n set bits. n may be the full width of T.
func mask[T constraints.Unsigned](n uint8) T {
	return T(1)<<n - 1
}

// GB fetches n bits of x starting at bit s, aligned to the LSB.
// GB(0xFF, 2, 1) returns 0x01, not 0x04.
func GB[T constraints.Unsigned](x T, s, n uint8) T {
	return (x >> s) & mask[T](n)
}

// SB returns x with the n bits starting at bit s replaced by d.
// Bits of d that don't fit in the window are discarded.
func SB[T constraints.Unsigned](x T, s, n uint8, d T) T {
	m := mask[T](n)
	return x&^(m<<s) | (d&m)<<s
}

// AB returns x with i added to the n bits starting at bit s.
// An overflow wraps inside the window and never touches the bits around it.
func AB[T constraints.Unsigned](x T, s, n uint8, i T) T {
	m := mask[T](n) << s
	return x&^m | (x+i<<s)&m
}

func HasBit[T constraints.Unsigned](x T, y uint8) bool {
	return x&(T(1)<<y) != 0
}

func SetBit[T constraints.Unsigned](x T, y uint8) T {
	return x | T(1)<<y
}

func ClrBit[T constraints.Unsigned](x T, y uint8) T {
	return x &^ (T(1) << y)
}

func ToggleBit[T constraints.Unsigned](x T, y uint8) T {
	return x ^ T(1)<<y
}

// ffb holds, for every 6-bit value, the position of its lowest set bit
// (0 for 0) followed by the same values with that bit cleared.
var ffb = func() (table [128]uint8) {
	for x := 0; x < 64; x++ {
		if x != 0 {
			table[x] = uint8(mathbits.TrailingZeros8(uint8(x)))
		}
		table[x+64] = uint8(x & (x - 1))
	}
	return
}()

// FindFirstBit returns the position of the lowest set bit of a 6-bit value.
// 0b110100 returns 2 and 0 returns 0.
func FindFirstBit(x uint8) uint8 {
	return ffb[x&63]
}

// KillFirstBit returns a 6-bit value with its lowest set bit cleared.
func KillFirstBit(x uint8) uint8 {
	return ffb[x&63+64]
}

// FindFirstBit2x64 finds the lowest set bit among the bits of 0x3F3F.
// The upper byte is only looked at when the lower byte is 0.
func FindFirstBit2x64(value int) int {
	if GB(uint(value), 0, 8) == 0 {
		return int(FindFirstBit(uint8(GB(uint(value), 8, 6)))) + 8
	}
	return int(FindFirstBit(uint8(GB(uint(value), 0, 6))))
}

// KillFirstBit2x64 clears the lowest set bit, checking the same bits as FindFirstBit2x64.
func KillFirstBit2x64(value int) int {
	if GB(uint(value), 0, 8) == 0 {
		return int(KillFirstBit(uint8(GB(uint(value), 8, 6)))) << 8
	}
	return value & (int(KillFirstBit(uint8(GB(uint(value), 0, 6)))) | 0x3F00)
}

// CountBits returns the number of set bits in value.
func CountBits[T constraints.Integer](value T) uint {
	var num uint
	// Each iteration clears the lowest set bit.
	for ; value != 0; num++ {
		value &= value - 1
	}
	return num
}

// Max returns the greater of a and b, or a if they are equal.
func Max[T constraints.Ordered](a, b T) T {
	if a >= b {
		return a
	}
	return b
}

// Min returns the smaller of a and b, or b if they are equal.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Clamp limits a to [min, max]. min must not be greater than max.
func Clamp[T constraints.Ordered](a, min, max T) T {
	if a <= min {
		return min
	}
	if a >= max {
		return max
	}
	return a
}

func ClampToI32(a int64) int32 {
	return int32(Clamp(a, int64(-1<<31), int64(1<<31-1)))
}

// BigMulSS multiplies two signed 32-bit values in 64 bits, then shifts right.
func BigMulSS(a, b int32, shift uint8) int32 {
	return int32((int64(a) * int64(b)) >> shift)
}

// BigMulUS multiplies two unsigned 32-bit values in 64 bits, then shifts right.
func BigMulUS(a, b uint32, shift uint8) uint32 {
	return uint32((uint64(a) * uint64(b)) >> shift)
}

// IsInside1D reports whether x is in [base, base+size).
func IsInside1D[T constraints.Integer](x, base, size T) bool {
	return x >= base && x-base < size
}

// Align rounds x up to a multiple of n, which must be a power of 2.
func Align[T constraints.Unsigned](x, n T) T {
	return (x + n - 1) &^ (n - 1)
}
