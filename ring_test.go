// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringmesh

import (
	"path/filepath"
	"testing"
)

func newTestRing(t *testing.T, capacity, msgSize int) *Ring {
	t.Helper()
	ctx, err := Create(filepath.Join(t.TempDir(), "mesh"), 2, capacity, msgSize)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { ctx.Close() })
	r, err := ctx.ring(0, 1)
	if err != nil {
		t.Fatalf("ring(0,1): %v", err)
	}
	return r
}

func TestRingFIFO(t *testing.T) {
	r := newTestRing(t, 8, 16)
	for i := 0; i < 5; i++ {
		if err := r.TryEnqueue([]byte{byte(i)}); err != nil {
			t.Fatalf("TryEnqueue(%d): %v", i, err)
		}
	}
	buf := make([]byte, 16)
	for i := 0; i < 5; i++ {
		n, err := r.TryDequeue(buf)
		if err != nil {
			t.Fatalf("TryDequeue(%d): %v", i, err)
		}
		if n != 1 || buf[0] != byte(i) {
			t.Fatalf("message %d: got %v, want [%d]", i, buf[:n], i)
		}
	}
}

// TestRingFullDoesNotMutate exercises a capacity-2 ring: rounded-up
// capacity of 2 leaves exactly one usable slot, per the reserved-slot
// invariant.
func TestRingFullDoesNotMutate(t *testing.T) {
	r := newTestRing(t, 2, 8)
	if r.Cap() != 1 {
		t.Fatalf("Cap() = %d, want 1", r.Cap())
	}
	if err := r.TryEnqueue([]byte("a")); err != nil {
		t.Fatalf("first TryEnqueue: %v", err)
	}
	if err := r.TryEnqueue([]byte("b")); !IsFull(err) {
		t.Fatalf("second TryEnqueue on full ring: got %v, want ErrFull", err)
	}
	buf := make([]byte, 8)
	n, err := r.TryDequeue(buf)
	if err != nil {
		t.Fatalf("TryDequeue: %v", err)
	}
	if n != 1 || buf[0] != 'a' {
		t.Fatalf("got %v, want [a]", buf[:n])
	}
	if _, err := r.TryDequeue(buf); !IsEmpty(err) {
		t.Fatalf("TryDequeue on drained ring: got %v, want ErrEmpty", err)
	}
	if err := r.TryEnqueue([]byte("c")); err != nil {
		t.Fatalf("TryEnqueue after drain: %v", err)
	}
}

func TestRingEmptyReturnsErrEmpty(t *testing.T) {
	r := newTestRing(t, 4, 8)
	if _, err := r.TryDequeue(make([]byte, 8)); !IsEmpty(err) {
		t.Fatalf("got %v, want ErrEmpty", err)
	}
}

func TestRingMessageTooLarge(t *testing.T) {
	r := newTestRing(t, 4, 4)
	if err := r.TryEnqueue([]byte("too long")); err != ErrMessageTooLarge {
		t.Fatalf("got %v, want ErrMessageTooLarge", err)
	}
}

// TestRingZeroLengthMessage verifies a zero-byte payload round-trips as a
// valid signal message, distinct from an empty ring.
func TestRingZeroLengthMessage(t *testing.T) {
	r := newTestRing(t, 4, 8)
	if err := r.TryEnqueue(nil); err != nil {
		t.Fatalf("TryEnqueue(nil): %v", err)
	}
	n, err := r.TryDequeue(make([]byte, 8))
	if err != nil {
		t.Fatalf("TryDequeue: %v", err)
	}
	if n != 0 {
		t.Fatalf("n = %d, want 0", n)
	}
}

// TestRingRoundTripByteIdentity sends a message and checks the consumer
// receives exactly those bytes, including when msgSize is larger than the
// payload.
func TestRingRoundTripByteIdentity(t *testing.T) {
	r := newTestRing(t, 4, 100)
	payload := []byte("hello, mesh")
	if err := r.TryEnqueue(payload); err != nil {
		t.Fatalf("TryEnqueue: %v", err)
	}
	buf := make([]byte, 100)
	n, err := r.TryDequeue(buf)
	if err != nil {
		t.Fatalf("TryDequeue: %v", err)
	}
	if n != len(payload) {
		t.Fatalf("n = %d, want %d", n, len(payload))
	}
	if string(buf[:n]) != string(payload) {
		t.Fatalf("got %q, want %q", buf[:n], payload)
	}
}

// TestRingBlockingRoundTrip exercises Enqueue/Dequeue concurrently across
// goroutines, one producer and one consumer, matching the ring's SPSC
// contract.
func TestRingBlockingRoundTrip(t *testing.T) {
	r := newTestRing(t, 8, 8)
	const count = 2000

	errs := make(chan error, 1)
	go func() {
		for i := 0; i < count; i++ {
			msg := []byte{byte(i), byte(i >> 8)}
			if err := r.Enqueue(msg); err != nil {
				errs <- err
				return
			}
		}
		errs <- nil
	}()

	buf := make([]byte, 8)
	for i := 0; i < count; i++ {
		n, err := r.Dequeue(buf)
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if n != 2 || buf[0] != byte(i) || buf[1] != byte(i>>8) {
			t.Fatalf("message %d: got %v, want [%d %d]", i, buf[:n], byte(i), byte(i>>8))
		}
	}
	if err := <-errs; err != nil {
		t.Fatalf("producer: %v", err)
	}
}
