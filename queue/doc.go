// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package queue - the pending-transaction hand-off channel
//
// a single named queue carries transaction identifiers from submission
// to the background worker
//
// delivery is at-least-once: the worker re-enqueues on any processing
// failure, so an identifier may be delivered again and consumers must
// treat duplicate delivery as a no-op
//
// ordering is FIFO (a buffered Go channel); the pipeline only relies
// on this for fairness, never for correctness
package queue
