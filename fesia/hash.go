// Copyright 2025 setops Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fesia

import (
	"encoding/binary"

	"github.com/dchest/siphash"
)

// IntegerHash is the pluggable hash FESIA uses to assign elements to
// buckets. masked_hash(x, hashSize) = Hash(x) & (hashSize - 1), so any
// implementation only needs to mix bits well; the masking and
// power-of-two sizing are handled by the caller.
type IntegerHash interface {
	Hash(x int32) int32
}

// IdentityHash uses the element's own value, unmixed. Useful as a
// worst-case baseline: dense, low-entropy key spaces collapse into a
// handful of buckets.
type IdentityHash struct{}

func (IdentityHash) Hash(x int32) int32 { return x }

// MixHash is the authors' 32-bit integer avalanche mix (Thomas Wang's
// mix, as reproduced at https://gist.github.com/badboy/6267743 and
// carried over unchanged from original_source's MixHash). This is the
// default hash for new Fesia indexes.
type MixHash struct{}

func (MixHash) Hash(x int32) int32 {
	key := uint32(x)
	key = ^key + (key << 15)
	key = key ^ (key >> 12)
	key = key + (key << 2)
	key = key ^ (key >> 4)
	key = key * 2057
	key = key ^ (key >> 16)
	return int32(key)
}

// SipHash demonstrates that the hash is a genuine plugin point: it mixes
// the element through github.com/dchest/siphash with a fixed zero key and
// truncates the 64-bit digest to 32 bits. Not cryptographically meaningful
// here (the key is fixed and public); chosen only to exercise a
// SIMD-adjacent hashing library already present in the example pack.
type SipHash struct{}

func (SipHash) Hash(x int32) int32 {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(x))
	sum := siphash.Hash(0, 0, buf[:])
	return int32(uint32(sum))
}

// maskedHash applies h to item and masks the result into [0, hashSize),
// where hashSize must be a power of two.
func maskedHash(h IntegerHash, item int32, hashSize int) int {
	mask := int32(hashSize - 1)
	return int(h.Hash(item) & mask)
}
