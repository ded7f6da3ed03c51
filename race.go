// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package ringmesh

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent mesh tests, which trigger false
// positives because the race detector cannot see synchronization carried
// by atomic memory ordering alone.
const RaceEnabled = true
