// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction - the collection transaction record
//
// contains the durable record of a single payment collection request
// and its lifecycle status, with methods to Pack and Unpack the
// record for storage
//
// status transitions are one way: Pending may become Success or
// Failed, and a terminal status never changes again
package transaction
