// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringmesh

import (
	"encoding/binary"

	"code.hybscloud.com/spin"
)

// Ring is one directed SPSC channel inside the mesh: exactly one producer
// process and one consumer process ever touch it. It is a Lamport ring
// buffer with one reserved slot and a cached view of the peer's index,
// operating on bytes living inside a memory-mapped region shared across
// processes rather than a Go heap slice.
type Ring struct {
	desc    *ringDescriptor
	slots   []byte // capacity * slotStride(msgSize) bytes
	msgSize uint32
	mask    uint32
	stride  uint32

	// Producer-local and consumer-local caches of the peer's index. These
	// live in this process's heap, not in the shared region: each
	// attached process gets its own Ring value wrapping the same
	// descriptor, so the producer-only and consumer-only caches never
	// cross a process boundary.
	cachedHead uint32
	cachedTail uint32
}

func newRing(desc *ringDescriptor, slots []byte) *Ring {
	return &Ring{
		desc:    desc,
		slots:   slots,
		msgSize: desc.msgSize,
		mask:    desc.capacityMask,
		stride:  slotStride(desc.msgSize),
	}
}

// Cap returns the number of usable slots: capacity_mask, one less than the
// physical slot count, since one slot is reserved to disambiguate empty
// from full without a separate counter.
func (r *Ring) Cap() int {
	return int(r.mask)
}

func (r *Ring) slot(i uint32) []byte {
	base := i * r.stride
	return r.slots[base : base+r.stride]
}

// TryEnqueue is the producer-only, non-blocking send of up to msgSize
// bytes. It returns ErrMessageTooLarge before touching the ring if the
// payload does not fit, and ErrFull without mutating any shared state if
// the ring has no free slot.
func (r *Ring) TryEnqueue(payload []byte) error {
	if uint32(len(payload)) > r.msgSize {
		return ErrMessageTooLarge
	}

	tail := r.desc.tail.LoadRelaxed()
	next := (tail + 1) & r.mask
	if next == r.cachedHead {
		r.cachedHead = r.desc.head.LoadAcquire()
		if next == r.cachedHead {
			return ErrFull
		}
	}

	s := r.slot(tail)
	binary.LittleEndian.PutUint32(s[:lengthPrefixSize], uint32(len(payload)))
	copy(s[lengthPrefixSize:], payload)

	r.desc.tail.StoreRelease(next)
	return nil
}

// Enqueue blocks, spinning with a CPU-relax hint, until payload can be
// enqueued.
func (r *Ring) Enqueue(payload []byte) error {
	sw := spin.Wait{}
	for {
		err := r.TryEnqueue(payload)
		if err == nil {
			return nil
		}
		if !IsFull(err) {
			return err
		}
		sw.Once()
	}
}

// TryDequeue is the consumer-only, non-blocking receive. It copies up to
// len(buf) bytes of the pending message into buf and returns the number of
// bytes delivered: the length the producer sent (which may be less than
// msgSize, including zero for a signal message), or len(buf) if buf is
// shorter than that, in which case the rest of the message is dropped and
// the slot is still consumed. Returns ErrEmpty
// without mutating any shared state if the ring has nothing pending.
func (r *Ring) TryDequeue(buf []byte) (int, error) {
	head := r.desc.head.LoadRelaxed()
	if head == r.cachedTail {
		r.cachedTail = r.desc.tail.LoadAcquire()
		if head == r.cachedTail {
			return 0, ErrEmpty
		}
	}

	s := r.slot(head)
	length := binary.LittleEndian.Uint32(s[:lengthPrefixSize])
	n := copy(buf, s[lengthPrefixSize:lengthPrefixSize+length])

	r.desc.head.StoreRelease((head + 1) & r.mask)
	return n, nil
}

// Dequeue blocks, spinning with a CPU-relax hint, until a message is
// available.
func (r *Ring) Dequeue(buf []byte) (int, error) {
	sw := spin.Wait{}
	for {
		n, err := r.TryDequeue(buf)
		if err == nil {
			return n, nil
		}
		if !IsEmpty(err) {
			return 0, err
		}
		sw.Once()
	}
}
