// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command remote_thr is the sending side of the two-process throughput
// harness: it opens the mesh created by local_thr as node 1, sends
// roundtrip-count messages to node 0 as fast as the ring allows, and prints
// the measured throughput in messages per second.
//
// usage: remote_thr <queue> <message-size> <roundtrip-count>
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"code.hybscloud.com/ringmesh"
)

const harnessCapacity = 16

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: remote_thr <queue> <message-size> <roundtrip-count>")
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

	ctx, err := ringmesh.Open(queue, 2, harnessCapacity, messageSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error in context open: %v\n", err)
		os.Exit(2)
	}
	defer ctx.Close()

	node := ringmesh.NewNode(ctx, 1)
	msg := make([]byte, messageSize)

	start := time.Now()
	for i := 0; i < roundtripCount; i++ {
		if err := node.Send(0, msg); err != nil {
			fmt.Fprintf(os.Stderr, "error in send at message %d: %v\n", i, err)
			os.Exit(1)
		}
	}
	delta := time.Since(start)

	if delta <= 0 || roundtripCount == 0 {
		fmt.Println("0 msg/s")
		return
	}
	throughput := int64(roundtripCount) * int64(time.Second) / int64(delta)
	fmt.Printf("%d msg/s\n", throughput)
}
