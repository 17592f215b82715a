// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cache maintains the memory data store
//
//  ***** Data Structure *****
//
//  Pool                     Key              Value                  ExpiresAfter
//  |___ TransactionStatus   tx id (string)   *transaction.Record    72h
//
//  ***** Purpose *****
//
//  TransactionStatus:
//    fast, possibly one-step-stale projection of the durable
//    transaction record; written on submission and after every
//    processing attempt, read by status queries and by the worker as
//    the low-latency source of the current attempt count
//
//  a cache miss is not repaired here: the next processing event
//  repopulates the entry and the durable store remains authoritative
package cache
