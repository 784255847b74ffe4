// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package fountain

import "math/bits"

// Bitmap tracks block membership as a packed bit set. Index 0 is the
// lowest bit of the first word.
type Bitmap []uint64

// NewBitmap returns a Bitmap with capacity for n bits.
func NewBitmap(n int) Bitmap {
	if n <= 0 {
		return nil
	}
	return make(Bitmap, (n+63)/64)
}

// Set sets bit index, growing the bitmap if needed.
func (b *Bitmap) Set(index int) {
	if index < 0 {
		return
	}
	word := index / 64
	for len(*b) <= word {
		*b = append(*b, 0)
	}
	(*b)[word] |= 1 << uint(index%64)
}

// IsSet reports whether bit index is set.
func (b Bitmap) IsSet(index int) bool {
	if index < 0 {
		return false
	}
	word := index / 64
	if word >= len(b) {
		return false
	}
	return b[word]&(1<<uint(index%64)) != 0
}

// Popcount returns the number of set bits.
func (b Bitmap) Popcount() int {
	count := 0
	for _, word := range b {
		count += bits.OnesCount64(word)
	}
	return count
}

// AllSet reports whether every bit below n is set.
func (b Bitmap) AllSet(n int) bool {
	for i := 0; i < n; i++ {
		if !b.IsSet(i) {
			return false
		}
	}
	return n > 0
}

// Clone returns an independent copy.
func (b Bitmap) Clone() Bitmap {
	if b == nil {
		return nil
	}
	return append(Bitmap(nil), b...)
}

// Indices returns the sorted set-bit indices.
func (b Bitmap) Indices() []int {
	var indices []int
	for word, value := range b {
		for value != 0 {
			bit := bits.TrailingZeros64(value)
			indices = append(indices, word*64+bit)
			value &= value - 1
		}
	}
	return indices
}

// bitmapFromIndices builds a Bitmap from block indices.
func bitmapFromIndices(indices []int) Bitmap {
	var b Bitmap
	for _, index := range indices {
		b.Set(index)
	}
	return b
}
