// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - control of background processes
package background

import (
	"sync"
)

// Process - type signature for the shutdown callback
//
// the Run method must loop until the shutdown channel is closed
// and then terminate
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// T - handle for the set of stated processes
type T struct {
	sync.WaitGroup
	finalise chan struct{}
}

// Start - start up a set of background processes
// all with the same arg value
func Start(processes Processes, args interface{}) *T {

	register := &T{
		finalise: make(chan struct{}),
	}

	// start each background
	for _, p := range processes {
		register.Add(1)
		go func(p Process) {
			// pass the shutdown to the Run loop
			// to allow shutdown of the process
			p.Run(args, register.finalise)
			register.Done()
		}(p)
	}
	return register
}

// Stop - stop a set of background processes
// does not wait for them to terminate
func (t *T) Stop() {
	if nil == t {
		return
	}
	close(t.finalise)
}

// StopAndWait - stop a set of background processes
// and wait until they have all terminated
func (t *T) StopAndWait() {
	if nil == t {
		return
	}
	t.Stop()
	t.Wait()
}
