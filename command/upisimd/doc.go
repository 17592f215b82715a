// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command upisimd - the simulated payment collection gateway daemon
//
// accepts collection requests over a JSON HTTP API, persists each
// transaction, mirrors its status in a fast cache and drives a
// background worker that retries the simulated payment rail with
// exponential backoff until the transaction reaches a terminal state
package main
