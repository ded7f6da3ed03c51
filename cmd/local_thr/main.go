// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command local_thr is the receiving side of the two-process throughput
// harness: it creates the mesh as node 0 and receives roundtrip-count
// messages from node 1, then exits. Run remote_thr against the same queue
// path to drive it and print the measured throughput.
//
// usage: local_thr <queue> <message-size> <roundtrip-count>
package main

import (
	"fmt"
	"os"
	"strconv"

	"code.hybscloud.com/ringmesh"
)

const harnessCapacity = 16

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: local_thr <queue> <message-size> <roundtrip-count>")
		os.Exit(1)
	}
	queue := os.Args[1]
	messageSize, err := strconv.Atoi(os.Args[2])
	if err != nil || messageSize <= 0 {
		fmt.Fprintf(os.Stderr, "invalid message-size: %s\n", os.Args[2])
		os.Exit(1)
	}
	roundtripCount, err := strconv.Atoi(os.Args[3])
	if err != nil || roundtripCount < 0 {
		fmt.Fprintf(os.Stderr, "invalid roundtrip-count: %s\n", os.Args[3])
		os.Exit(1)
	}

	ctx, err := ringmesh.Create(queue, 2, harnessCapacity, messageSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error in context create: %v\n", err)
		os.Exit(2)
	}
	defer ctx.Close()

	node := ringmesh.NewNode(ctx, 0)
	buf := make([]byte, messageSize)
	for i := 0; i < roundtripCount; i++ {
		if _, err := node.RecvFrom(1, buf); err != nil {
			fmt.Fprintf(os.Stderr, "error in recv at message %d: %v\n", i, err)
			os.Exit(1)
		}
	}
}
