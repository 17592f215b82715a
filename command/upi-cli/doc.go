// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command upi-cli - command line interface to the payment
// collection gateway HTTP API
//
// supported commands:
//
//   generate  obtain a fresh syntactically valid payment address
//   collect   submit a collection request, prints the transaction id
//   status    query the state of a previously submitted transaction
//   details   display gateway counters, mode and uptime
package main
