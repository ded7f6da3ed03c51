// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ringmesh provides a fixed-topology, shared-memory message-passing
// fabric for a small, predeclared set of cooperating processes on one host.
//
// Each process attaches to a Context by mapping a backing file and
// identifies itself as one of N nodes. Nodes exchange fixed-size messages
// through lock-free single-producer/single-consumer (SPSC) ring buffers
// allocated pairwise between every ordered pair of nodes — N·(N−1) rings in
// total. There is no dynamic topology, no multi-producer or multi-consumer
// fan-in on a single ring, and no cross-host transport: the whole mesh lives
// in one memory-mapped file.
//
// # Quick Start
//
// The first process to run creates the mesh; every other process opens it:
//
//	// Process A
//	ctx, err := ringmesh.Create("/dev/shm/mesh", 4, 1024, 256)
//	node0 := ringmesh.NewNode(ctx, 0)
//
//	// Process B (or C, or D)
//	ctx, err := ringmesh.Open("/dev/shm/mesh", 4, 1024, 256)
//	node1 := ringmesh.NewNode(ctx, 1)
//
// Open falls back to Create if the path does not exist yet, so peers can
// bootstrap without coordinating who runs first. If the file already
// exists with different (nodes, capacity, msgSize), Open returns
// ErrParameterMismatch rather than silently trusting the header.
//
// # Sending and Receiving
//
//	err := node0.Send(1, []byte("hello"))     // blocks until there is room
//	err := node0.TrySend(1, []byte("hello"))  // ringmesh.IsFull(err) on backpressure
//
//	n, err := node1.RecvFrom(0, buf)          // blocks until a message arrives
//	n, err := node1.TryRecvFrom(0, buf)       // ringmesh.IsEmpty(err) if nothing pending
//
//	from, n, err := node1.Recv(buf)           // receive-any, round-robin fair
//	from, n, err := node1.TryRecv(buf)
//
// Recv and TryRecv poll every incoming ring starting just after the source
// served by the previous call, so a sustained producer on one ring cannot
// starve the others.
//
// # Error Handling
//
// Transport errors (ErrFull, ErrEmpty, ErrMessageTooLarge, ErrInvalidRoute)
// are reported, never retried inside a non-blocking call. ErrFull and
// ErrEmpty wrap code.hybscloud.com/iox's ErrWouldBlock, so
// ringmesh.IsWouldBlock and ringmesh.IsNonFailure compose with the rest of
// the code.hybscloud.com ecosystem:
//
//	for {
//	    err := node0.TrySend(1, msg)
//	    if err == nil {
//	        break
//	    }
//	    if !ringmesh.IsFull(err) {
//	        return err // ErrInvalidRoute, ErrMessageTooLarge: not transient
//	    }
//	    runtime.Gosched()
//	}
//
// Backing-region errors (ErrIO, ErrMapFailed, ErrParameterMismatch,
// ErrAlreadyExists, ErrInvalidParameter) are fatal to the Create/Open call;
// the Context is left unmodified on failure.
//
// # Memory Ordering
//
// Each ring is a Lamport SPSC queue with one reserved slot (occupancy ==
// capacity_mask means full, head == tail means empty). The producer does a
// release-store on tail after writing the slot; the consumer does an
// acquire-load of tail before reading it and a release-store on head after.
// This is expressed with code.hybscloud.com/atomix atomic words placed
// directly inside the memory-mapped region, so the ordering holds across
// process boundaries on weakly-ordered hardware, not just across goroutines.
//
// # Concurrency Model
//
// The only waiting primitive is a busy spin with a CPU-relax hint
// (code.hybscloud.com/spin for single-ring blocking sends/receives,
// code.hybscloud.com/iox's Backoff between full receive-any sweeps). There
// are no futexes, condition variables, or sleeps, and no cancellation in
// the core — a caller that needs a cancellable wait should layer it above
// the non-blocking variants.
//
// # What This Package Does Not Do
//
// No dynamic topology (node count is fixed at Create). No multi-producer or
// multi-consumer fan-in on a single ring — every ring has exactly one
// sender and one receiver. No variable-size messages: msgSize is uniform
// across the whole mesh and fixed at creation. No authentication, no
// delivery acknowledgement beyond the implicit "consumer advanced the head"
// signal, and no ordering guarantee across distinct (from, to) pairs.
package ringmesh
