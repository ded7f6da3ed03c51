// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringmesh

import (
	"unsafe"

	"code.hybscloud.com/atomix"
)

// pad is cache line padding, used to keep hot atomic fields from
// false-sharing a cache line with their neighbors.
type pad [64]byte

// lengthPrefixSize is the per-slot actual-length prefix. msgSize is the
// uniform *maximum* payload; the bytes a given send actually wrote are
// tracked alongside it so Recv/RecvFrom can report the real delivered
// length instead of always returning msgSize bytes.
const lengthPrefixSize = 4

// header is the process-wide region header. It is written once by Create
// and is read-only to every attached process thereafter.
type header struct {
	nodes        uint32
	rings        uint32
	capacityMask uint32
	msgSize      uint32
}

var headerSize = int(unsafe.Sizeof(header{}))

// ringDescriptor is the control block for one directed (from, to) pair.
// capacityMask, msgSize and offset are written once at Create and are
// read-only thereafter. head and tail are atomic words: head is R/W to the
// ring's consumer and read-only to its producer, tail is the reverse. Each
// gets its own cache line, and the descriptor as a whole occupies more than
// one cache line, so neither field false-shares with the other or with an
// adjacent ring's descriptor.
type ringDescriptor struct {
	capacityMask uint32
	msgSize      uint32
	offset       uint32
	_            uint32
	_            pad
	head         atomix.Uint32
	_            pad
	tail         atomix.Uint32
	_            pad
}

var ringDescriptorSize = int(unsafe.Sizeof(ringDescriptor{}))

// RingIndex maps an ordered pair (from, to), from != to, both in
// [0, nodes), to a distinct index in [0, nodes*(nodes-1)). It enumerates
// ordered pairs in lexicographic order of (from, to), skipping the
// diagonal.
func RingIndex(from, to, nodes int) int {
	if to > from {
		return from*(nodes-1) + to - 1
	}
	return from*(nodes-1) + to
}

// roundToPow2 rounds n up to the next power of 2. Callers ensure n >= 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// slotStride is the physical byte size of one ring slot: the actual-length
// prefix plus the maximum payload.
func slotStride(msgSize uint32) uint32 {
	return msgSize + lengthPrefixSize
}

// headerAt views the start of a mapped region as a *header.
func headerAt(data []byte) *header {
	return (*header)(unsafe.Pointer(&data[0]))
}

// ringDescriptorsAt views the n ring descriptors immediately following the
// header in a mapped region.
func ringDescriptorsAt(data []byte, n int) []ringDescriptor {
	return unsafe.Slice((*ringDescriptor)(unsafe.Pointer(&data[headerSize])), n)
}
