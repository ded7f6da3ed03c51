// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringmesh

import (
	"errors"
	"fmt"
	"os"
)

// Context owns the backing region, the header, and the ring table for one
// attached process. Exactly one process creates a given backing file;
// every other process attaches by opening it. No component other than
// Context and the Ring it hands out ever touches ring internals.
type Context struct {
	reg   *region
	hdr   *header
	descs []ringDescriptor
	rings []*Ring

	nodes    int
	capacity int
	msgSize  int
	path     string
}

func validateParams(nodes, capacity, msgSize int) error {
	if nodes < 2 {
		return fmt.Errorf("%w: nodes must be >= 2, got %d", ErrInvalidParameter, nodes)
	}
	if msgSize <= 0 {
		return fmt.Errorf("%w: msg_size must be > 0, got %d", ErrInvalidParameter, msgSize)
	}
	if capacity < 2 {
		return fmt.Errorf("%w: capacity must be >= 2, got %d", ErrInvalidParameter, capacity)
	}
	return nil
}

// regionSize computes the total backing-file size: header, the ring
// descriptor table, and the data arena (rings * capacity slots each).
func regionSize(nodes, capacity, msgSize int) int {
	rings := nodes * (nodes - 1)
	arena := rings * capacity * int(slotStride(uint32(msgSize)))
	return headerSize + rings*ringDescriptorSize + arena
}

// Create creates a new backing file at path and initializes the mesh for
// the given topology. capacity is rounded up to the next power of two.
// Fails with ErrAlreadyExists if path already exists, ErrInvalidParameter
// for out-of-range arguments, ErrIO or ErrMapFailed for I/O failures.
func Create(path string, nodes, capacity, msgSize int) (*Context, error) {
	if err := validateParams(nodes, capacity, msgSize); err != nil {
		return nil, err
	}

	cap2 := roundToPow2(capacity)
	rings := nodes * (nodes - 1)
	size := regionSize(nodes, cap2, msgSize)

	reg, err := createRegion(path, size)
	if err != nil {
		return nil, err
	}

	hdr := headerAt(reg.data)
	hdr.nodes = uint32(nodes)
	hdr.rings = uint32(rings)
	hdr.capacityMask = uint32(cap2 - 1)
	hdr.msgSize = uint32(msgSize)

	descs := ringDescriptorsAt(reg.data, rings)
	stride := uint32(cap2) * slotStride(uint32(msgSize))
	for i := range descs {
		descs[i].capacityMask = uint32(cap2 - 1)
		descs[i].msgSize = uint32(msgSize)
		descs[i].offset = uint32(i) * stride
	}

	return newContext(reg, hdr, descs, path, nodes, cap2, msgSize), nil
}

// Open opens the existing backing file at path, or creates it with the
// given parameters if it does not yet exist yet — this is how peers
// bootstrap without coordinating who creates first. If the file exists but
// its header disagrees with (nodes, capacity, msgSize), returns
// ErrParameterMismatch rather than silently trusting the header.
func Open(path string, nodes, capacity, msgSize int) (*Context, error) {
	if err := validateParams(nodes, capacity, msgSize); err != nil {
		return nil, err
	}

	reg, err := openRegion(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Create(path, nodes, capacity, msgSize)
		}
		return nil, err
	}

	hdr := headerAt(reg.data)
	cap2 := roundToPow2(capacity)
	if int(hdr.nodes) != nodes || int(hdr.capacityMask)+1 != cap2 || int(hdr.msgSize) != msgSize {
		reg.close()
		return nil, ErrParameterMismatch
	}

	rings := int(hdr.rings)
	descs := ringDescriptorsAt(reg.data, rings)
	return newContext(reg, hdr, descs, path, nodes, cap2, msgSize), nil
}

func newContext(reg *region, hdr *header, descs []ringDescriptor, path string, nodes, capacity, msgSize int) *Context {
	arenaBase := headerSize + len(descs)*ringDescriptorSize
	stride := int(slotStride(uint32(msgSize)))

	rings := make([]*Ring, len(descs))
	for i := range descs {
		d := &descs[i]
		start := arenaBase + int(d.offset)
		end := start + capacity*stride
		rings[i] = newRing(d, reg.data[start:end])
	}

	return &Context{
		reg:      reg,
		hdr:      hdr,
		descs:    descs,
		rings:    rings,
		nodes:    nodes,
		capacity: capacity,
		msgSize:  msgSize,
		path:     path,
	}
}

// Describe returns the mesh's fixed parameters: node count, the rounded-up
// ring capacity, and the maximum message size.
func (c *Context) Describe() (nodes, capacity, msgSize int) {
	return c.nodes, c.capacity, c.msgSize
}

// Close releases the memory mapping and closes the backing file
// descriptor. Unlinking the backing file remains the caller's
// responsibility: the region persists until the file is unlinked.
func (c *Context) Close() error {
	return c.reg.close()
}

// ring resolves the directed ring for (from, to), validating both node ids
// and rejecting from == to with ErrInvalidRoute.
func (c *Context) ring(from, to int) (*Ring, error) {
	if from == to {
		return nil, fmt.Errorf("%w: from == to (%d)", ErrInvalidRoute, from)
	}
	if from < 0 || from >= c.nodes || to < 0 || to >= c.nodes {
		return nil, fmt.Errorf("%w: from=%d to=%d nodes=%d", ErrInvalidRoute, from, to, c.nodes)
	}
	return c.rings[RingIndex(from, to, c.nodes)], nil
}
