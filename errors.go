// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringmesh

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrInvalidParameter indicates a bad nodes/capacity/msg_size argument to
// Create or Open.
var ErrInvalidParameter = errors.New("ringmesh: invalid parameter")

// ErrParameterMismatch indicates Open's (nodes, capacity, msgSize)
// arguments disagree with the existing backing file's header.
var ErrParameterMismatch = errors.New("ringmesh: open parameters do not match existing header")

// ErrIO wraps failures in the underlying file operations (open, stat,
// truncate, read).
var ErrIO = errors.New("ringmesh: i/o error")

// ErrMapFailed indicates the backing file could not be memory-mapped.
var ErrMapFailed = errors.New("ringmesh: mmap failed")

// ErrAlreadyExists indicates Create was called on a path that already
// exists.
var ErrAlreadyExists = errors.New("ringmesh: backing file already exists")

// ErrInvalidRoute indicates from == to, or a node id outside [0, nodes).
var ErrInvalidRoute = errors.New("ringmesh: invalid route")

// ErrMessageTooLarge indicates a payload longer than the mesh's msg_size.
var ErrMessageTooLarge = errors.New("ringmesh: message exceeds msg_size")

// ErrFull indicates a non-blocking send found its ring full. It wraps
// iox.ErrWouldBlock for ecosystem consistency with code.hybscloud.com/lfq.
var ErrFull = fmt.Errorf("ringmesh: ring full: %w", iox.ErrWouldBlock)

// ErrEmpty indicates a non-blocking receive found its ring(s) empty. It
// wraps iox.ErrWouldBlock for ecosystem consistency with
// code.hybscloud.com/lfq.
var ErrEmpty = fmt.Errorf("ringmesh: ring empty: %w", iox.ErrWouldBlock)

// IsWouldBlock reports whether err is a control-flow signal meaning the
// caller should retry later (Full or Empty). Delegates to iox.IsWouldBlock
// for wrapped-error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsFull reports whether err is (or wraps) ErrFull.
func IsFull(err error) bool {
	return errors.Is(err, ErrFull)
}

// IsEmpty reports whether err is (or wraps) ErrEmpty.
func IsEmpty(err error) bool {
	return errors.Is(err, ErrEmpty)
}

// IsInvalidRoute reports whether err is (or wraps) ErrInvalidRoute.
func IsInvalidRoute(err error) bool {
	return errors.Is(err, ErrInvalidRoute)
}

// IsNonFailure reports whether err represents a non-failure condition
// (nil or a would-block signal). Delegates to iox.IsNonFailure.
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
