// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringmesh

import "code.hybscloud.com/iox"

// Node binds a Context to one node identity. It is process-local and
// trivially constructed; several Node handles may share one Context within
// the same process (as in single-process tests that exercise every pair of
// a small mesh), or a process may hold exactly one.
type Node struct {
	ctx    *Context
	id     int
	cursor int // receive-any round-robin cursor, local to this Node
}

// NewNode binds context to node identity id.
func NewNode(ctx *Context, id int) *Node {
	return &Node{ctx: ctx, id: id}
}

// ID returns this node's identity within its Context.
func (n *Node) ID() int {
	return n.id
}

// Send blocks until buf can be enqueued on the (n, to) ring.
func (n *Node) Send(to int, buf []byte) error {
	r, err := n.ctx.ring(n.id, to)
	if err != nil {
		return err
	}
	return r.Enqueue(buf)
}

// TrySend is the non-blocking form of Send. Returns ErrFull if the ring
// has no free slot.
func (n *Node) TrySend(to int, buf []byte) error {
	r, err := n.ctx.ring(n.id, to)
	if err != nil {
		return err
	}
	return r.TryEnqueue(buf)
}

// RecvFrom blocks until a message is available on the (from, n) ring and
// returns the number of payload bytes delivered.
func (n *Node) RecvFrom(from int, buf []byte) (int, error) {
	r, err := n.ctx.ring(from, n.id)
	if err != nil {
		return 0, err
	}
	return r.Dequeue(buf)
}

// TryRecvFrom is the non-blocking form of RecvFrom. Returns ErrEmpty if
// nothing is pending.
func (n *Node) TryRecvFrom(from int, buf []byte) (int, error) {
	r, err := n.ctx.ring(from, n.id)
	if err != nil {
		return 0, err
	}
	return r.TryDequeue(buf)
}

// TryRecv polls every incoming ring once, in round-robin order starting
// just after the source served by the previous Recv/TryRecv call, and
// returns on the first non-empty ring. Returns ErrEmpty if every incoming
// ring is empty. Persisting the cursor across calls is what keeps a
// sustained producer on one ring from starving the others.
func (n *Node) TryRecv(buf []byte) (from int, size int, err error) {
	nodes := n.ctx.nodes
	for i := 0; i < nodes; i++ {
		src := (n.cursor + i) % nodes
		if src == n.id {
			continue
		}
		r, rerr := n.ctx.ring(src, n.id)
		if rerr != nil {
			continue
		}
		sz, derr := r.TryDequeue(buf)
		if derr == nil {
			n.cursor = (src + 1) % nodes
			return src, sz, nil
		}
		if !IsEmpty(derr) {
			return 0, 0, derr
		}
	}
	return 0, 0, ErrEmpty
}

// Recv blocks, backing off between full empty sweeps of every incoming
// ring, until some source has a message available.
func (n *Node) Recv(buf []byte) (from int, size int, err error) {
	backoff := iox.Backoff{}
	for {
		src, sz, err := n.TryRecv(buf)
		if err == nil {
			return src, sz, nil
		}
		if !IsEmpty(err) {
			return 0, 0, err
		}
		backoff.Wait()
	}
}
