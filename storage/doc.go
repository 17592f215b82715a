// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
//
// maintain separate pools of a number of elements in key->value form
// all backed by a single LevelDB database
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the avaiable tables.
//
//
// Naming convention:
//
//   * each key is prefixed by a byte to separate the pools
//   * the transaction pool key is the UTF-8 bytes of the transaction id
//   * values are the JSON packed transaction records
package storage
